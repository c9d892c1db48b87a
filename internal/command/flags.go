// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// EnvConfig names the environment variable selecting the settings file.
const EnvConfig = "DROPCFG_CONFIG"

var (
	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the recognized settings keys",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

// NewConfigFlag constructs the --config flag naming the settings file. Its
// value comes from the command line, $DROPCFG_CONFIG, the preferences file
// (namespaced to ns first) or defaults to config.yaml.
func NewConfigFlag(ns string, prefs string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"C"},
		Usage:   "DROP settings file",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar(EnvConfig),
		),
		Value:     "config.yaml",
		TakesFile: true,
	}
	flag.Sources.Chain = append(flag.Sources.Chain, prefsSources(ns, flag.Name, prefs)...)
	return flag
}

// NewGlobalFlags constructs the output flags shared by every command. Values
// not given on the command line are looked up in the preferences file.
func NewGlobalFlags(ns string, prefs string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(prefsSources(ns, "color", prefs)...),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Sources: cli.NewValueSourceChain(prefsSources(ns, "output", prefs)...),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:    "padding",
			Usage:   "spaces between text columns",
			Value:   2,
			Sources: cli.NewValueSourceChain(prefsSources(ns, "padding", prefs)...),
			Validator: func(value int) error {
				return FlagValidators(value, PaddingValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(prefsSources(ns, "titles", prefs)...),
		},
	}
}

// NewTableFlags constructs the row shaping flags of commands that emit
// tables.
func NewTableFlags(ns string, prefs string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of columns to include in results",
			Sources: cli.NewValueSourceChain(prefsSources(ns, "attrs", prefs)...),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort the results by",
			Sources: cli.NewValueSourceChain(prefsSources(ns, "sort", prefs)...),
		},
	}
}

// prefsSources returns the namespaced and global preferences file sources
// for key. It returns nothing when there is no preferences file.
func prefsSources(ns string, key string, path string) []cli.ValueSource {
	if path == "" {
		return nil
	}

	var sources []cli.ValueSource
	if ns != "" {
		sources = append(sources, yaml.YAML(ns+"."+key, altsrc.StringSourcer(path)))
	}
	return append(sources, yaml.YAML(key, altsrc.StringSourcer(path)))
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
