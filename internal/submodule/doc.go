// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package submodule builds the per-module settings of a pipeline run:
// aberrant expression (AE), aberrant splicing (AS), mono-allelic expression
// (MAE) and count export.
//
// Each constructor receives only its own slice of the settings mapping plus
// the shared sample annotation and processed directories. The caller's slice
// is never modified; the resolved mapping is returned in Dict.
package submodule
