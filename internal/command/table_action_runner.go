// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
)

// TableActionRunner[T] encapsulates the common action pattern of commands
// that emit rows: short-circuit checks, BuildAttrs, fetching the rows and
// emitting them through the output package.
type TableActionRunner[T any] struct {
	CommandName  string
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
	// PostProcess, when set, runs on the final dataset before text output.
	PostProcess func(*cli.Command, []map[string]interface{}) error
}

// Run executes the action with the provided context and command.
func (tar *TableActionRunner[T]) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action: command=%s args=%v", tar.CommandName, m.Args)

	if ShortCircuitTLDR(ctx, cmd, tar.CommandName) {
		return nil
	}

	attrs, err := BuildAttrs(cmd, tar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", attrs)

	rows, err := tar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	var post func([]map[string]interface{}) error
	if tar.PostProcess != nil {
		post = func(ds []map[string]interface{}) error { return tar.PostProcess(cmd, ds) }
	}
	return EmitRows(rows, attrs, cmd, post)
}

// NewTableActionRunner creates a TableActionRunner with the provided
// configuration.
func NewTableActionRunner[T any](
	commandName string,
	defaultAttrs []string,
	fetchFn func(context.Context, *cli.Command) ([]T, error),
) *TableActionRunner[T] {
	return &TableActionRunner[T]{
		CommandName:  commandName,
		DefaultAttrs: defaultAttrs,
		FetchFn:      fetchFn,
	}
}
