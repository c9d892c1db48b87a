// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/dropkit/dropcfg/internal/meta"
)

// CommandBuilder constructs a cli.Command for the settings subcommands using
// a consistent pattern. It wires metadata, adds the tldr, config and output
// flags (plus the row shaping flags when Table is set) and the validators.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Table     bool
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	prefs := cb.Meta.Config.Source

	flags := append([]cli.Flag{}, cb.Flags...)
	flags = append(flags, tldrFlag, NewConfigFlag(cb.Name, prefs))
	flags = append(flags, NewGlobalFlags(cb.Name, prefs)...)
	if cb.Table {
		flags = append(flags, NewTableFlags(cb.Name, prefs)...)
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}
