// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ renders the difference between the settings as written and
// the settings after normalization, showing which defaults were applied.
package differ
