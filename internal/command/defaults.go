// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/dropkit/dropcfg/internal/differ"
	"github.com/dropkit/dropcfg/internal/drop"
	"github.com/dropkit/dropcfg/internal/meta"
	"github.com/dropkit/dropcfg/internal/settings"
)

// defaultsCommandAction shows what normalization added to or changed in the
// settings file.
func defaultsCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "defaults") {
		return nil
	}

	p, err := LoadSettings(cmd)
	if err != nil {
		return err
	}
	raw := settings.Clone(p.GetConfig())

	c, err := drop.New(p)
	if err != nil {
		return err
	}

	w := writer(cmd)
	color := differ.IsTerminal(w)
	if cmd.IsSet("color") {
		color = cmd.Bool("color")
	}
	opts := differ.Options{Ignore: cmd.StringSlice("ignore"), Color: &color}

	if cmd.Bool("no-pager") {
		changed, err := differ.Diff(w, raw, c.Raw(), opts)
		log.Debugf("defaults: changed=%t", changed)
		return err
	}

	var buf bytes.Buffer
	changed, err := differ.Diff(&buf, raw, c.Raw(), opts)
	if err != nil {
		return err
	}
	log.Debugf("defaults: changed=%t", changed)
	return differ.Page(w, "dropcfg defaults", buf.String())
}

// defaultsCommandBuilder constructs the cli.Command for "defaults".
func defaultsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "defaults",
		Usage:     "diff the settings file against the resolved settings",
		UsageText: "dropcfg defaults [options]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "top-level keys to leave out of the diff",
			},
			&cli.BoolFlag{
				Name:  "no-pager",
				Usage: "write the diff straight to stdout even on a terminal",
			},
		},
		Action: defaultsCommandAction,
		Meta:   meta,
	}).Build()
}
