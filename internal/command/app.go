// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/dropkit/dropcfg/internal/config"
	"github.com/dropkit/dropcfg/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the dropcfg
	// subcommand and also represents the namespace key to be used when
	// retrieving preference values. arg[1] could be -h/--help, so ignore it if
	// it appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	config.Config.Namespace = ns
	prefs, err := config.Load()
	if err != nil {
		log.Debugf("preferences not loaded: %v", err)
		prefs = config.Config
	}

	meta := meta.Meta{
		Args:        args,
		Config:      prefs,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "dropcfg",
		Usage: "DROP pipeline settings",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "dropcfg version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		checkCommandBuilder(meta),
		defaultsCommandBuilder(meta),
		getCommandBuilder(meta),
		htmlCommandBuilder(meta),
		pathsCommandBuilder(meta),
		samplesCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
