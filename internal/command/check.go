// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/dropkit/dropcfg/internal/drop"
	"github.com/dropkit/dropcfg/internal/meta"
	"github.com/dropkit/dropcfg/internal/submodule"
)

// checkCommandAction validates the settings file, creates the working
// directories and summarizes the resolved run.
func checkCommandAction(ctx context.Context, cmd *cli.Command) error {
	var c *drop.Config

	fetch := func(_ context.Context, cmd *cli.Command) ([]Entry, error) {
		var err error
		if c, err = LoadConfig(cmd); err != nil {
			return nil, err
		}
		return checkEntries(c), nil
	}

	runner := NewTableActionRunner("check", entryDefaultAttrs, fetch)
	runner.PostProcess = func(cmd *cli.Command, _ []map[string]interface{}) error {
		cmd.Metadata["footer"] = checkFooter(c)
		return nil
	}
	return runner.Run(ctx, cmd)
}

func checkEntries(c *drop.Config) []Entry {
	sa := c.SampleAnnotation()

	entries := []Entry{
		{drop.KeyRoot, c.Root()},
		{"processedDataDir", c.ProcessedDataDir()},
		{"processedResultsDir", c.ProcessedResultsDir()},
		{drop.KeyHTMLOutputPath, c.HTMLOutputPath()},
		{drop.KeySampleAnnotation, fmt.Sprintf("%s (%s samples)", sa.File(), humanize.Comma(int64(sa.Len())))},
		{drop.KeyGenomeAssembly, c.GenomeAssembly()},
	}
	if readme := c.ReadmePath(); readme != "" {
		entries = append(entries, Entry{drop.KeyReadmePath, readme})
	}

	for _, v := range c.GeneVersions() {
		file, _ := c.GeneAnnotationFile(v)
		entries = append(entries, Entry{drop.KeyGeneAnnotation + "." + v, withSize(file)})
	}

	entries = append(entries,
		moduleEntry(drop.KeyAberrantExpression, c.AE().Submodule),
		moduleEntry(drop.KeyAberrantSplicing, c.AS().Submodule),
		moduleEntry(drop.KeyMAE, c.MAE().Submodule),
	)
	if qc := c.MAE().QCVcf; qc != "" {
		entries = append(entries, Entry{drop.KeyMAE + ".qcVcf", withSize(qc)})
	}

	ec := c.ExportCounts()
	entries = append(entries, Entry{
		drop.KeyExportCounts,
		fmt.Sprintf("groups=%s annotations=%s", joinOrDash(ec.Groups), joinOrDash(ec.GeneAnnotations)),
	})

	tools := c.Settings().Tools
	entries = append(entries,
		Entry{drop.KeyTools + ".samtoolsCmd", tools.SamtoolsCmd},
		Entry{drop.KeyTools + ".bcftoolsCmd", tools.BcftoolsCmd},
		Entry{drop.KeyTools + ".gatkCmd", tools.GatkCmd},
	)

	return entries
}

func moduleEntry(key string, s *submodule.Submodule) Entry {
	if !s.Run {
		return Entry{key, "disabled"}
	}
	return Entry{key, "groups=" + joinOrDash(s.Groups)}
}

func checkFooter(c *drop.Config) string {
	if c == nil {
		return ""
	}
	sa := c.SampleAnnotation()
	return fmt.Sprintf("settings OK: %s samples in %s groups",
		humanize.Comma(int64(sa.Len())), humanize.Comma(int64(len(sa.Groups()))))
}

// withSize appends the humanized size of file.
func withSize(file string) string {
	info, err := os.Stat(file)
	if err != nil {
		return file
	}
	return fmt.Sprintf("%s (%s)", file, humanize.Bytes(uint64(info.Size())))
}

func joinOrDash(list []string) string {
	if len(list) == 0 {
		return "-"
	}
	return strings.Join(list, ",")
}

// checkCommandBuilder constructs the cli.Command for "check".
func checkCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "check",
		Usage:     "validate settings and create the working directories",
		UsageText: "dropcfg check [options]",
		Table:     true,
		Action:    checkCommandAction,
		Meta:      meta,
	}).Build()
}
