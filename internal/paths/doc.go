// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package paths provides the structured path type returned by the drop
// configuration accessors and the script-to-rule naming used for report
// paths.
package paths
