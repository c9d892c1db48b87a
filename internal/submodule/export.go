// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package submodule

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dropkit/dropcfg/internal/sampleannotation"
	"github.com/dropkit/dropcfg/internal/settings"
)

// ExportCounts selects which count matrices are exported for sharing.
type ExportCounts struct {
	Dict            settings.Map
	GeneAnnotations []string
	ExcludeGroups   []string
	Groups          []string
	GenomeAssembly  string

	sa                  *sampleannotation.Annotation
	processedResultsDir string
}

// NewExportCounts resolves the exportCounts settings. geneAnnotations lists
// the known annotation labels; groups are taken from the AE and AS modules.
func NewExportCounts(
	cfg settings.Map,
	processedResultsDir string,
	sa *sampleannotation.Annotation,
	geneAnnotations []string,
	genomeAssembly string,
	ae *AberrantExpression,
	as *AberrantSplicing,
) (*ExportCounts, error) {
	dict := settings.Clone(cfg)
	if dict == nil {
		dict = settings.Map{}
	}

	raw, err := settings.SetKey(dict, nil, "geneAnnotations", toAny(geneAnnotations))
	if err != nil {
		return nil, fmt.Errorf("exportCounts: %w", err)
	}
	annotations, err := toStrings(raw)
	if err != nil {
		return nil, fmt.Errorf("exportCounts.geneAnnotations: %w", err)
	}
	var unknown []string
	for _, a := range annotations {
		if !oneOf(a, geneAnnotations) {
			unknown = append(unknown, a)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("exportCounts.geneAnnotations: unknown annotation(s): %s", strings.Join(unknown, ", "))
	}

	raw, err = settings.SetKey(dict, nil, "excludeGroups", []any{})
	if err != nil {
		return nil, fmt.Errorf("exportCounts: %w", err)
	}
	exclude, err := toStrings(raw)
	if err != nil {
		return nil, fmt.Errorf("exportCounts.excludeGroups: %w", err)
	}

	var modules []*Submodule
	if ae != nil {
		modules = append(modules, ae.Submodule)
	}
	if as != nil {
		modules = append(modules, as.Submodule)
	}

	set := map[string]struct{}{}
	for _, mod := range modules {
		for _, g := range mod.Groups {
			if !oneOf(g, exclude) {
				set[g] = struct{}{}
			}
		}
	}
	groups := make([]string, 0, len(set))
	for g := range set {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	dict["groups"] = toAny(groups)

	return &ExportCounts{
		Dict:                dict,
		GeneAnnotations:     annotations,
		ExcludeGroups:       exclude,
		Groups:              groups,
		GenomeAssembly:      genomeAssembly,
		sa:                  sa,
		processedResultsDir: processedResultsDir,
	}, nil
}

// ExportDir is the directory holding the exported counts of one group and
// annotation.
func (e *ExportCounts) ExportDir(group string, annotation string) string {
	name := fmt.Sprintf("%s--%s--%s", group, e.GenomeAssembly, annotation)
	return filepath.Join(e.processedResultsDir, "exported_counts", name)
}

// ExportDirs lists every export directory for the resolved groups and
// annotations.
func (e *ExportCounts) ExportDirs() []string {
	var dirs []string
	for _, g := range e.Groups {
		for _, a := range e.GeneAnnotations {
			dirs = append(dirs, e.ExportDir(g, a))
		}
	}
	return dirs
}

// Resolved returns the resolved mapping written back into the master
// settings.
func (e *ExportCounts) Resolved() settings.Map { return e.Dict }

// SampleAnnotation returns the shared annotation.
func (e *ExportCounts) SampleAnnotation() *sampleannotation.Annotation { return e.sa }
