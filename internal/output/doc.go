// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders command results as text tables, JSON or YAML. It
// also sorts row sets and lists the settings schema.
package output
