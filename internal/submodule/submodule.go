// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package submodule

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dropkit/dropcfg/internal/log"
	"github.com/dropkit/dropcfg/internal/sampleannotation"
	"github.com/dropkit/dropcfg/internal/settings"
)

// kv is an ordered default. Order keeps debug logs stable.
type kv struct {
	Key   string
	Value any
}

// Submodule holds the resolved settings shared by every analysis module.
type Submodule struct {
	Name   string
	Dict   settings.Map
	Run    bool
	Groups []string

	sa                  *sampleannotation.Annotation
	processedDataDir    string
	processedResultsDir string
}

// newSubmodule copies cfg, applies defaults and resolves run and groups.
// When groups is not configured it defaults to every annotation group that
// has IDs in all assays.
func newSubmodule(
	name string,
	dir string,
	cfg settings.Map,
	defaults []kv,
	assays []string,
	sa *sampleannotation.Annotation,
	processedDataDir string,
	processedResultsDir string,
) (*Submodule, error) {
	dict := settings.Clone(cfg)
	if dict == nil {
		dict = settings.Map{}
	}

	for _, d := range defaults {
		if _, err := settings.SetKey(dict, nil, d.Key, d.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	run, ok := dict["run"].(bool)
	if !ok {
		return nil, fmt.Errorf("%s: run must be a boolean, got %v", name, dict["run"])
	}

	defGroups := toAny(sa.Groups(assays...))
	raw, err := settings.SetKey(dict, nil, "groups", defGroups)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	groups, err := toStrings(raw)
	if err != nil {
		return nil, fmt.Errorf("%s.groups: %w", name, err)
	}
	if err := checkGroups(sa, groups); err != nil {
		return nil, fmt.Errorf("%s.groups: %w", name, err)
	}

	if !run {
		log.Debugf("%s disabled, no groups scheduled", name)
		groups = nil
		dict["groups"] = []any{}
	} else {
		dict["groups"] = toAny(groups)
	}

	return &Submodule{
		Name:                name,
		Dict:                dict,
		Run:                 run,
		Groups:              groups,
		sa:                  sa,
		processedDataDir:    filepath.Join(processedDataDir, dir),
		processedResultsDir: filepath.Join(processedResultsDir, dir),
	}, nil
}

// ProcessedDataDir is the module's directory beneath processed_data.
func (s *Submodule) ProcessedDataDir() string { return s.processedDataDir }

// ProcessedResultsDir is the module's directory beneath processed_results.
func (s *Submodule) ProcessedResultsDir() string { return s.processedResultsDir }

// SampleAnnotation returns the shared annotation.
func (s *Submodule) SampleAnnotation() *sampleannotation.Annotation { return s.sa }

// Get returns a resolved key of the module, or nil when absent.
func (s *Submodule) Get(key string) any { return s.Dict[key] }

// GroupedIDs maps each scheduled group to its IDs in assay.
func (s *Submodule) GroupedIDs(assay string) map[string][]string {
	out := make(map[string][]string, len(s.Groups))
	for _, g := range s.Groups {
		out[g] = s.sa.IDsByGroup(g, assay)
	}
	return out
}

// Resolved returns the resolved mapping written back into the master
// settings.
func (s *Submodule) Resolved() settings.Map { return s.Dict }

func checkGroups(sa *sampleannotation.Annotation, groups []string) error {
	known := map[string]struct{}{}
	for _, g := range sa.Groups() {
		known[g] = struct{}{}
	}
	var unknown []string
	for _, g := range groups {
		if _, ok := known[g]; !ok {
			unknown = append(unknown, g)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown group(s) not in sample annotation: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// toStrings accepts a list of strings or a single comma separated string.
func toStrings(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		var out []string
		for _, s := range strings.Split(val, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	case []string:
		return val, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list element %v is not a string", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value %v is not a list", v)
	}
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
