// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package sampleannotation parses the tab separated sample annotation that
// describes the sequencing samples of a pipeline run.
//
// Each row is one RNA (and optionally DNA) sample. DROP_GROUP assigns a row
// to one or more comma separated analysis groups. Assay columns (RNA_ID,
// DNA_ID) identify the sample within an assay; an empty cell means the sample
// has no data for that assay.
package sampleannotation
