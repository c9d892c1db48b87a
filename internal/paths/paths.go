// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Path is a filesystem path held in structured form. The zero value is the
// empty path.
type Path string

// New cleans p into a Path. The empty string stays empty.
func New(p string) Path {
	if p == "" {
		return ""
	}
	return Path(filepath.Clean(p))
}

// Join appends elem to the path.
func (p Path) Join(elem ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, elem...)...))
}

func (p Path) String() string { return string(p) }

// Base returns the last element of the path.
func (p Path) Base() string { return filepath.Base(string(p)) }

// Exists reports whether anything exists at the path.
func (p Path) Exists() bool {
	if p == "" {
		return false
	}
	_, err := os.Stat(string(p))
	return err == nil
}

// IsDir reports whether the path is an existing directory.
func (p Path) IsDir() bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(string(p))
	return err == nil && info.IsDir()
}

// Abs returns the absolute form of the path, resolved against the current
// working directory when relative.
func (p Path) Abs() (Path, error) {
	abs, err := Resolve(string(p))
	return Path(abs), err
}

// Resolve expands a leading ~ and makes p absolute. It does not require p to
// exist.
func Resolve(p string) (string, error) {
	if p == "" {
		return "", os.ErrInvalid
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}

	// Relative paths are anchored at the current working directory.
	if !filepath.IsAbs(p) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		p = filepath.Join(cwd, p)
	}

	return filepath.Clean(p), nil
}

// RuleFromPath derives a rule name from a script path. The components from
// the last "Scripts" directory onward are joined with "_" after the extension
// of the final component is dropped. The "Scripts" component itself is kept
// only when prefix is true. Paths without a "Scripts" component use all of
// their relative components.
//
//	Scripts/AberrantExpression/pipeline/Summary.R -> Scripts_AberrantExpression_pipeline_Summary
func RuleFromPath(script string, prefix bool) string {
	clean := filepath.ToSlash(filepath.Clean(script))
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	idx := -1
	for i := len(parts) - 2; i >= 0; i-- {
		if parts[i] == "Scripts" {
			idx = i
			break
		}
	}
	if idx >= 0 {
		if prefix {
			parts = parts[idx:]
		} else {
			parts = parts[idx+1:]
		}
	}

	last := parts[len(parts)-1]
	parts[len(parts)-1] = strings.TrimSuffix(last, filepath.Ext(last))

	return strings.Join(parts, "_")
}
