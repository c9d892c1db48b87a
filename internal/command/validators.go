// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator rejects --output=raw on commands that do not emit
// rows, since there is no raw document to dump.
func GlobalFlagsValidator(_ context.Context, c *cli.Command) error {
	if c.String("output") != "raw" {
		return nil
	}
	for _, f := range c.Flags {
		if f.Names()[0] == "attrs" {
			return nil
		}
	}
	return fmt.Errorf("--output=raw is not supported by %s", c.Name)
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	for _, v := range validOutputFlagValues {
		if v == value {
			return nil
		}
	}
	return fmt.Errorf("must be one of %v", validOutputFlagValues)
}

func PaddingValidator(value any) error {
	if n, ok := value.(int); !ok || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}

func ShellValidator(value any) error {
	switch value {
	case "bash", "zsh", "":
		return nil
	}
	return fmt.Errorf("unsupported shell %v, must be bash or zsh", value)
}
