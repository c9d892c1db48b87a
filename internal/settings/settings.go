// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// Map is a decoded settings document.
type Map map[string]any

// Provider supplies the raw settings mapping for one pipeline run.
type Provider interface {
	// GetConfig returns the live mapping. Mutations are visible to Get.
	GetConfig() Map
	// Get returns the current top-level value for key.
	Get(key string) (any, bool)
}

// MapProvider serves an in-memory mapping.
type MapProvider struct {
	data Map
}

// NewProvider wraps m. A nil m is replaced with an empty Map.
func NewProvider(m Map) *MapProvider {
	if m == nil {
		m = Map{}
	}
	return &MapProvider{data: Normalize(m)}
}

func (p *MapProvider) GetConfig() Map { return p.data }

func (p *MapProvider) Get(key string) (any, bool) {
	v, ok := p.data[key]
	return v, ok
}

// FileProvider serves a mapping loaded from a settings file.
//
// Fields:
//   - Source: absolute path of the file loaded.
type FileProvider struct {
	MapProvider
	Source string
}

// Load reads and decodes the settings document at path. JSON documents are
// accepted since they are valid YAML. An empty document yields an empty Map.
func Load(path string) (*FileProvider, error) {
	if path == "" {
		return nil, os.ErrInvalid
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("settings file not found: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("settings file is a directory: %s", abs)
	}

	bytes, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	data, err := Decode(bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", abs, err)
	}
	log.Debugf("loaded settings: source=%s keys=%d", abs, len(data))

	return &FileProvider{
		MapProvider: MapProvider{data: data},
		Source:      abs,
	}, nil
}

// Decode unmarshals a YAML or JSON document into a normalized Map.
func Decode(b []byte) (Map, error) {
	var data map[string]any
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	if data == nil {
		return Map{}, nil
	}
	return Normalize(data), nil
}

// Normalize converts every nested map[string]any (and map[any]any produced by
// older decoders) into Map, in place where possible.
func Normalize(m map[string]any) Map {
	out := Map(m)
	for k, v := range out {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case Map:
		return Normalize(val)
	case map[string]any:
		return Normalize(val)
	case map[any]any:
		m := make(Map, len(val))
		for k, item := range val {
			m[fmt.Sprintf("%v", k)] = normalizeValue(item)
		}
		return m
	case []any:
		for i := range val {
			val[i] = normalizeValue(val[i])
		}
		return val
	default:
		return v
	}
}

// Lookup traverses m using a dotted key path (e.g. "tools.gatkCmd") and
// returns the raw value found there.
func Lookup(m Map, kspec string) (any, error) {
	var current any = m
	for _, key := range strings.Split(kspec, ".") {
		sub, ok := current.(Map)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotMapping, kspec)
		}
		current, ok = sub[key]
		if !ok {
			return nil, &MissingKeyError{Keys: []string{kspec}}
		}
	}
	return current, nil
}

// Clone returns a deep copy of m.
func Clone(m Map) Map {
	if m == nil {
		return nil
	}
	return cloneValue(m).(Map)
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Map:
		out := make(Map, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = cloneValue(val[i])
		}
		return out
	default:
		return v
	}
}
