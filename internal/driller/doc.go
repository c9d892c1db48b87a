// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller walks dotted paths into JSON documents: settings values
// for `dropcfg get` and sample annotation rows for --attrs and --filter.
package driller
