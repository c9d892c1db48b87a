// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

// Entry is one key/value row emitted by the check, paths and html commands.
type Entry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

var entryDefaultAttrs = []string{"key", "value"}
