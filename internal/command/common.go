// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/dropkit/dropcfg/internal/attrs"
	"github.com/dropkit/dropcfg/internal/drop"
	"github.com/dropkit/dropcfg/internal/meta"
	"github.com/dropkit/dropcfg/internal/output"
	"github.com/dropkit/dropcfg/internal/settings"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList, err error) {
	for _, d := range defaults {
		if err = al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err = al.Set(extras); err != nil {
			return nil, fmt.Errorf("--attrs: %w", err)
		}
	}
	err = al.SetGlobalTransformSpec()
	return
}

// DumpSchemaIfRequested writes the settings keys of t when --schema is set,
// and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if t != nil && cmd.Bool("schema") {
		output.DumpSchema("", t, writer(cmd))
		return true
	}
	return false
}

// EmitRows marshals rows to JSON and passes them to the common output
// routine.
func EmitRows(rows any, al attrs.AttrList, cmd *cli.Command, postProcess func([]map[string]interface{}) error) error {
	b, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	return output.SliceDiceSpit(*bytes.NewBuffer(b), al, cmd, "", writer(cmd), postProcess)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// LoadSettings reads the file named by --config.
func LoadSettings(cmd *cli.Command) (*settings.FileProvider, error) {
	path := cmd.String("config")
	log.Debugf("settings file: path=%s", path)
	p, err := settings.Load(path)
	if err != nil {
		return nil, fmt.Errorf("--config %s: %w", path, err)
	}
	return p, nil
}

// LoadConfig reads the file named by --config and normalizes it, creating
// the working directories.
func LoadConfig(cmd *cli.Command) (*drop.Config, error) {
	p, err := LoadSettings(cmd)
	if err != nil {
		return nil, err
	}
	return drop.New(p)
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr dropcfg <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "dropcfg", subcmd)
			c.Stdout = writer(cmd)
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// writer returns the root command's writer, which tests may replace.
func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
