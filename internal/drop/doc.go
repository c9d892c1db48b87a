// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package drop normalizes the settings of a DROP pipeline run.
//
// Construction is a linear sequence:
//
//  1. Normalize validates mandatory keys and paths, applies defaults and
//     resolves root, processed_data, processed_results, htmlOutputPath and
//     readmePath. It does not touch the filesystem beyond stat calls.
//  2. MaterializeLayout creates the three working directories when they are
//     missing. It is idempotent.
//  3. Resolve parses the sample annotation, builds the AE, AS, MAE and
//     ExportCounts sub-configurations and writes their resolved mappings back
//     into the settings mapping for consumers that read it directly.
//
// New runs all three. The generic accessor Get is limited to ConfigKeys.
package drop
