// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/dropkit/dropcfg/internal/meta"
)

// pathsCommandAction lists the resolved directories of the run.
func pathsCommandAction(ctx context.Context, cmd *cli.Command) error {
	fetch := func(_ context.Context, cmd *cli.Command) ([]Entry, error) {
		c, err := LoadConfig(cmd)
		if err != nil {
			return nil, err
		}

		entries := []Entry{
			{"root", c.Root()},
			{"processedData", c.ProcessedDataDir()},
			{"processedResults", c.ProcessedResultsDir()},
			{"htmlOutput", c.HTMLOutputPath()},
			{"readme", c.ReadmePath()},
			{"sampleAnnotation", c.SampleAnnotation().Dir()},
			{"aberrantExpression", c.AE().ProcessedResultsDir()},
			{"aberrantSplicing", c.AS().ProcessedResultsDir()},
			{"mae", c.MAE().ProcessedResultsDir()},
		}
		for _, dir := range c.ExportCounts().ExportDirs() {
			entries = append(entries, Entry{"exportCounts", dir})
		}
		return entries, nil
	}

	return NewTableActionRunner("paths", entryDefaultAttrs, fetch).Run(ctx, cmd)
}

// pathsCommandBuilder constructs the cli.Command for "paths".
func pathsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "paths",
		Usage:     "list resolved directories",
		UsageText: "dropcfg paths [options]",
		Table:     true,
		Action:    pathsCommandAction,
		Meta:      meta,
	}).Build()
}
