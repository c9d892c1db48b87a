// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"

	"github.com/dropkit/dropcfg/internal/paths"
)

// SetKey sets key beneath the sub path of m to def when the key is absent or
// null, and returns the effective value. A value already present is never
// overwritten. Every element of sub must name an existing mapping.
func SetKey(m Map, sub []string, key string, def any) (any, error) {
	target := m
	for i, s := range sub {
		next, ok := target[s].(Map)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotMapping, strings.Join(sub[:i+1], "."))
		}
		target = next
	}

	if v, ok := target[key]; ok && v != nil {
		return v, nil
	}

	log.Debugf("%s not in config%v, using default", key, sub)
	target[key] = normalizeValue(def)
	return target[key], nil
}

// SubMap returns the mapping stored under key, creating an empty one when the
// key is absent or null. A non-mapping value is an error.
func SubMap(m Map, key string) (Map, error) {
	v, err := SetKey(m, nil, key, Map{})
	if err != nil {
		return nil, err
	}
	sub, ok := v.(Map)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotMapping, key)
	}
	return sub, nil
}

// CheckKeys verifies that every key in keys is present in m and, when
// checkFiles is set, that each value names an existing path. A nil keys
// checks every leaf of m recursively, reporting nested leaves by their dotted
// path.
//
// All problems are collected before returning. Missing keys are reported in a
// MissingKeyError, missing paths in a PathNotFoundError; when both occur the
// two are joined.
func CheckKeys(m Map, keys []string, checkFiles bool) error {
	var (
		missing    []string
		violations []Violation
		values     = map[string]any{}
		order      []string
	)

	if keys == nil {
		leaves := Leaves(m)
		for k := range leaves {
			order = append(order, k)
		}
		sort.Strings(order)
		values = leaves
	} else {
		for _, k := range keys {
			v, ok := m[k]
			if !ok || v == nil {
				missing = append(missing, k)
				continue
			}
			order = append(order, k)
			values[k] = v
		}
	}

	if checkFiles {
		for _, k := range order {
			p, ok := values[k].(string)
			if !ok {
				violations = append(violations, Violation{Key: k, Path: fmt.Sprintf("%v", values[k])})
				continue
			}
			if !exists(p) {
				log.Debugf("path check failed: key=%s path=%s", k, p)
				violations = append(violations, Violation{Key: k, Path: p})
			}
		}
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, &MissingKeyError{Keys: missing})
	}
	if len(violations) > 0 {
		errs = append(errs, &PathNotFoundError{Violations: violations})
	}
	return errors.Join(errs...)
}

// exists reports whether p, after ~ expansion, names an existing path.
func exists(p string) bool {
	abs, err := paths.Resolve(p)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

// Leaves flattens m into dotted-path keys for every non-mapping value.
func Leaves(m Map) map[string]any {
	out := map[string]any{}
	var walk func(prefix string, m Map)
	walk = func(prefix string, m Map) {
		for k, v := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if sub, ok := v.(Map); ok {
				walk(key, sub)
				continue
			}
			out[key] = v
		}
	}
	walk("", m)
	return out
}
