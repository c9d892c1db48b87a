// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotMapping is returned when a key path crosses a value that is not a
// mapping.
var ErrNotMapping = errors.New("value is not a mapping")

// MissingKeyError names every mandatory key absent from a mapping.
type MissingKeyError struct {
	Keys []string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing mandatory key(s): %s", strings.Join(e.Keys, ", "))
}

// Violation is a single key whose value does not resolve to an existing path.
type Violation struct {
	Key  string
	Path string
}

// PathNotFoundError names every checked key whose path does not exist.
type PathNotFoundError struct {
	Violations []Violation
}

func (e *PathNotFoundError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s=%q", v.Key, v.Path))
	}
	return fmt.Sprintf("path(s) do not exist: %s", strings.Join(parts, ", "))
}

// Keys returns the offending keys in report order.
func (e *PathNotFoundError) Keys() []string {
	keys := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		keys = append(keys, v.Key)
	}
	return keys
}

// UnrecognizedKeyError is returned when a key outside the allow-list is
// requested.
type UnrecognizedKeyError struct {
	Key string
}

func (e *UnrecognizedKeyError) Error() string {
	return fmt.Sprintf("%s not defined for drop config", e.Key)
}

// MergeErrors folds every MissingKeyError and every PathNotFoundError found
// in errs (including inside joined errors) into a single error of each kind.
// Other errors are kept as they are. Nil inputs are ignored.
func MergeErrors(errs ...error) error {
	var (
		missing  MissingKeyError
		notFound PathNotFoundError
		others   []error
	)

	var walk func(err error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
			return
		}
		switch e := err.(type) {
		case *MissingKeyError:
			missing.Keys = append(missing.Keys, e.Keys...)
		case *PathNotFoundError:
			notFound.Violations = append(notFound.Violations, e.Violations...)
		default:
			others = append(others, err)
		}
	}
	for _, err := range errs {
		walk(err)
	}

	var out []error
	if len(missing.Keys) > 0 {
		out = append(out, &missing)
	}
	if len(notFound.Violations) > 0 {
		out = append(out, &notFound)
	}
	return errors.Join(append(out, others...)...)
}
