// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package drop

import (
	"fmt"
	"sort"

	"github.com/dropkit/dropcfg/internal/paths"
	"github.com/dropkit/dropcfg/internal/sampleannotation"
	"github.com/dropkit/dropcfg/internal/settings"
	"github.com/dropkit/dropcfg/internal/submodule"
)

// Get returns the provider's current value for key. Keys outside ConfigKeys
// fail with *settings.UnrecognizedKeyError even when present in the mapping.
// A recognized key that is not set returns nil.
func (c *Config) Get(key string) (any, error) {
	if !IsConfigKey(key) {
		return nil, &settings.UnrecognizedKeyError{Key: key}
	}
	v, _ := c.provider.Get(key)
	return v, nil
}

// Root is the pipeline root directory.
func (c *Config) Root() string { return c.root.String() }

// RootPath is Root in structured form.
func (c *Config) RootPath() paths.Path { return c.root }

// ProcessedDataDir is <root>/processed_data.
func (c *Config) ProcessedDataDir() string { return c.processedDataDir.String() }

// ProcessedDataPath is ProcessedDataDir in structured form.
func (c *Config) ProcessedDataPath() paths.Path { return c.processedDataDir }

// ProcessedResultsDir is <root>/processed_results.
func (c *Config) ProcessedResultsDir() string { return c.processedResultsDir.String() }

// ProcessedResultsPath is ProcessedResultsDir in structured form.
func (c *Config) ProcessedResultsPath() paths.Path { return c.processedResultsDir }

// HTMLOutputPath is the directory receiving the HTML reports.
func (c *Config) HTMLOutputPath() string { return c.htmlOutputPath.String() }

// HTMLOutputDir is HTMLOutputPath in structured form.
func (c *Config) HTMLOutputDir() paths.Path { return c.htmlOutputPath }

// ReadmePath is the project readme, empty when not configured.
func (c *Config) ReadmePath() string { return c.readmePath.String() }

// HTMLFromScript returns the report path rendered for script.
func (c *Config) HTMLFromScript(script string) string {
	return c.htmlOutputPath.Join(paths.RuleFromPath(script, true)).String() + ".html"
}

// GeneAnnotations returns a copy of the annotation label to file table.
func (c *Config) GeneAnnotations() map[string]string {
	out := make(map[string]string, len(c.geneAnnotation))
	for k, v := range c.geneAnnotation {
		out[k] = v
	}
	return out
}

// GeneVersions returns the sorted annotation labels.
func (c *Config) GeneVersions() []string {
	versions := make([]string, 0, len(c.geneAnnotation))
	for k := range c.geneAnnotation {
		versions = append(versions, k)
	}
	sort.Strings(versions)
	return versions
}

// GeneAnnotationFile returns the file configured for version.
func (c *Config) GeneAnnotationFile(version string) (string, error) {
	f, ok := c.geneAnnotation[version]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAnnotation, version)
	}
	return f, nil
}

// GenomeAssembly is the reference assembly name.
func (c *Config) GenomeAssembly() string { return c.genomeAssembly }

// Settings is the typed view of the settings.
func (c *Config) Settings() Settings { return c.typed }

// Raw returns the live settings mapping, including written-back module
// mappings after Resolve.
func (c *Config) Raw() settings.Map { return c.dict }

// SampleAnnotation is nil until Resolve has run.
func (c *Config) SampleAnnotation() *sampleannotation.Annotation { return c.sampleAnnotation }

// AE is the aberrant expression module, nil until Resolve has run.
func (c *Config) AE() *submodule.AberrantExpression { return c.ae }

// AS is the aberrant splicing module, nil until Resolve has run.
func (c *Config) AS() *submodule.AberrantSplicing { return c.as }

// MAE is the mono-allelic expression module, nil until Resolve has run.
func (c *Config) MAE() *submodule.MAE { return c.mae }

// ExportCounts is the count export module, nil until Resolve has run.
func (c *Config) ExportCounts() *submodule.ExportCounts { return c.exportCounts }
