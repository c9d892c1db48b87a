// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects sample annotation rows for `dropcfg samples`.
//
// Filters are KEY[OP[VALUE]] expressions joined by a delimiter (comma, or
// $DROPCFG_FILTER_DELIM since DROP_GROUP values contain commas). A row is
// kept when every filter matches.
//
// Operators, each negatable with a leading !:
//
//   - (none) : value is non-empty
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < > : ordering, numeric when the value is a number
//   - @ : member of a comma separated list, otherwise substring
//   - / : regular expression
//
// Examples:
//
//   - "DROP_GROUP@mae" : samples in the mae group
//   - "DNA_ID" : samples with a DNA assay
//   - "STRAND!=no" : stranded libraries
//
// Filter keys are matched against attr output keys first (see package
// attrs) and otherwise used as row keys directly.
package filters
