// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Identical is printed when the two documents do not differ.
const Identical = "The settings are identical."

// Options controls diff rendering.
type Options struct {
	// Color forces ANSI coloring on or off. Nil colors only when w is a
	// terminal.
	Color *bool
	// Ignore lists top-level keys dropped from both documents before
	// comparing.
	Ignore []string
}

// Diff compares two settings documents and writes an annotated rendering of
// after's changes relative to before to w. It reports whether they differ.
func Diff(w io.Writer, before, after any, opts Options) (bool, error) {
	left, err := toJSON(before, opts.Ignore)
	if err != nil {
		return false, err
	}
	right, err := toJSON(after, opts.Ignore)
	if err != nil {
		return false, err
	}
	log.Debugf("diff sizes: before=%d after=%d", len(left), len(right))

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return false, fmt.Errorf("failed to compare settings: %w", err)
	}

	if !delta.Modified() {
		_, err := fmt.Fprintln(w, Identical)
		return false, err
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return true, fmt.Errorf("failed to decode settings: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       useColor(w, opts.Color),
	}

	diffString, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return true, err
	}

	_, err = fmt.Fprint(w, diffString)
	return true, err
}

// toJSON encodes doc as a JSON object without the ignored keys.
func toJSON(doc any, ignore []string) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	if len(ignore) == 0 {
		return b, nil
	}

	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("settings are not a mapping: %w", err)
	}
	for _, key := range ignore {
		delete(m, key)
	}
	return json.Marshal(m)
}

func useColor(w io.Writer, force *bool) bool {
	if force != nil {
		return *force
	}
	return IsTerminal(w)
}
