// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package settings holds the raw workflow settings mapping and the helpers
// used to validate and default it.
//
// A settings document is a YAML (or JSON) file decoded into a Map. Values
// keep the shape the decoder produced: strings, booleans, numbers, nested
// Maps and []any. Nested mappings are always normalized to Map so callers can
// type-assert a single type.
//
// Keys are addressed with dotted paths (e.g. "tools.samtoolsCmd").
package settings
