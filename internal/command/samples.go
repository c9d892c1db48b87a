// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/dropkit/dropcfg/internal/meta"
	"github.com/dropkit/dropcfg/internal/sampleannotation"
)

// samplesCommandAction lists the rows of the sample annotation table.
func samplesCommandAction(ctx context.Context, cmd *cli.Command) error {
	fetch := func(_ context.Context, cmd *cli.Command) ([]sampleannotation.Row, error) {
		c, err := LoadConfig(cmd)
		if err != nil {
			return nil, err
		}
		return c.SampleAnnotation().Rows(), nil
	}

	runner := NewTableActionRunner("samples",
		[]string{sampleannotation.RNAID, sampleannotation.DNAID, sampleannotation.DropGroup}, fetch)
	runner.PostProcess = func(cmd *cli.Command, ds []map[string]interface{}) error {
		cmd.Metadata["footer"] = fmt.Sprintf("%s samples", humanize.Comma(int64(len(ds))))
		return nil
	}
	return runner.Run(ctx, cmd)
}

// samplesCommandBuilder constructs the cli.Command for "samples".
func samplesCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "samples",
		Usage:     "list the sample annotation",
		UsageText: "dropcfg samples [options]",
		Table:     true,
		Action:    samplesCommandAction,
		Meta:      meta,
	}).Build()
}
