// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/dropkit/dropcfg/internal/driller"
	"github.com/dropkit/dropcfg/internal/drop"
	"github.com/dropkit/dropcfg/internal/meta"
	"github.com/dropkit/dropcfg/internal/output"
)

// getCommandAction prints one resolved settings value. The first segment of
// KEY must be a recognized top-level key; the rest is drilled into its value.
func getCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "get") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(drop.Settings{})) {
		return nil
	}

	key := cmd.Args().First()
	if key == "" {
		return fmt.Errorf("usage: %s", cmd.UsageText)
	}

	c, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	head, rest, _ := strings.Cut(key, ".")
	v, err := c.Get(head)
	if err != nil {
		return err
	}
	if rest != "" {
		if v, err = driller.Value(v, rest); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	log.Debugf("get: key=%s value=%v", key, v)

	return output.Document(v, cmd.String("output"), writer(cmd))
}

// getCommandBuilder constructs the cli.Command for "get".
func getCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "get",
		Usage:     "print a resolved settings value",
		UsageText: "dropcfg get KEY[.PATH] [options]",
		Flags:     []cli.Flag{schemaFlag},
		Action:    getCommandAction,
		Meta:      meta,
	}).Build()
}
