// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dropkit/dropcfg/internal/drop"
	"github.com/dropkit/dropcfg/internal/meta"
)

// htmlCommandAction maps each script argument to its rendered report path.
func htmlCommandAction(ctx context.Context, cmd *cli.Command) error {
	fetch := func(_ context.Context, cmd *cli.Command) ([]Entry, error) {
		scripts := cmd.Args().Slice()
		if len(scripts) == 0 {
			return nil, fmt.Errorf("usage: %s", cmd.UsageText)
		}

		p, err := LoadSettings(cmd)
		if err != nil {
			return nil, err
		}
		c, err := drop.Normalize(p)
		if err != nil {
			return nil, err
		}

		entries := make([]Entry, 0, len(scripts))
		for _, s := range scripts {
			entries = append(entries, Entry{s, c.HTMLFromScript(s)})
		}
		return entries, nil
	}

	return NewTableActionRunner("html", entryDefaultAttrs, fetch).Run(ctx, cmd)
}

// htmlCommandBuilder constructs the cli.Command for "html".
func htmlCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "html",
		Usage:     "print the report path of pipeline scripts",
		UsageText: "dropcfg html SCRIPT... [options]",
		Table:     true,
		Action:    htmlCommandAction,
		Meta:      meta,
	}).Build()
}
