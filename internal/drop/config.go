// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package drop

import (
	"errors"
	"fmt"

	"github.com/dropkit/dropcfg/internal/layout"
	"github.com/dropkit/dropcfg/internal/log"
	"github.com/dropkit/dropcfg/internal/paths"
	"github.com/dropkit/dropcfg/internal/sampleannotation"
	"github.com/dropkit/dropcfg/internal/settings"
	"github.com/dropkit/dropcfg/internal/submodule"
)

// ErrUnknownAnnotation is returned for a gene annotation label that is not
// configured.
var ErrUnknownAnnotation = errors.New("unknown gene annotation")

// Config is the normalized settings of one pipeline run.
type Config struct {
	provider settings.Provider
	dict     settings.Map
	typed    Settings

	root                 paths.Path
	processedDataDir     paths.Path
	processedResultsDir  paths.Path
	htmlOutputPath       paths.Path
	readmePath           paths.Path
	sampleAnnotationFile paths.Path

	geneAnnotation map[string]string
	genomeAssembly string

	sampleAnnotation *sampleannotation.Annotation
	ae               *submodule.AberrantExpression
	as               *submodule.AberrantSplicing
	mae              *submodule.MAE
	exportCounts     *submodule.ExportCounts
}

// New normalizes the provider's settings, creates the working directories
// and builds the sub-configurations. Constructing twice against the same root
// is safe.
func New(p settings.Provider) (*Config, error) {
	c, err := Normalize(p)
	if err != nil {
		return nil, err
	}
	if err := c.MaterializeLayout(); err != nil {
		return nil, err
	}
	if err := c.Resolve(); err != nil {
		return nil, err
	}
	return c, nil
}

// Normalize validates and defaults the provider's mapping in place and
// resolves the configured paths. Nothing is created on disk.
func Normalize(p settings.Provider) (*Config, error) {
	dict := p.GetConfig()
	if dict == nil {
		dict = settings.Map{}
	}
	// Providers may hand back plain nested maps; convert them in place so the
	// provider keeps seeing the defaults.
	dict = settings.Normalize(dict)

	if _, err := SetDefaults(dict); err != nil {
		return nil, err
	}

	c := &Config{
		provider: p,
		dict:     dict,
	}

	root, err := resolvePath(dict, KeyRoot)
	if err != nil {
		return nil, err
	}
	c.root = root
	c.processedDataDir = root.Join(layout.ProcessedData)
	c.processedResultsDir = root.Join(layout.ProcessedResults)

	if c.htmlOutputPath, err = resolvePath(dict, KeyHTMLOutputPath); err != nil {
		return nil, err
	}
	if c.sampleAnnotationFile, err = resolvePath(dict, KeySampleAnnotation); err != nil {
		return nil, err
	}
	if v, ok := dict[KeyReadmePath]; ok && v != nil {
		if c.readmePath, err = resolvePath(dict, KeyReadmePath); err != nil {
			return nil, err
		}
	}

	c.geneAnnotation = map[string]string{}
	for label, v := range settings.Leaves(dict[KeyGeneAnnotation].(settings.Map)) {
		file, err := paths.Resolve(v.(string))
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", KeyGeneAnnotation, label, err)
		}
		c.geneAnnotation[label] = file
	}
	c.genomeAssembly = fmt.Sprintf("%v", dict[KeyGenomeAssembly])

	c.typed = decodeSettings(dict)

	log.Debugf("normalized settings: root=%s assembly=%s annotations=%d",
		c.root, c.genomeAssembly, len(c.geneAnnotation))
	return c, nil
}

// MaterializeLayout creates root, processed_data and processed_results when
// missing. Existing directories and their contents are left alone.
func (c *Config) MaterializeLayout() error {
	return layout.Ensure(
		c.root.String(),
		c.processedDataDir.String(),
		c.processedResultsDir.String(),
	)
}

// Resolve builds the sample annotation and the sub-configurations, then
// writes their resolved mappings back into the settings mapping. Errors from
// the annotation parser and the sub-configuration constructors are returned
// unchanged.
func (c *Config) Resolve() error {
	sa, err := sampleannotation.New(c.sampleAnnotationFile.String(), c.root.String())
	if err != nil {
		return err
	}

	pd := c.processedDataDir.String()
	pr := c.processedResultsDir.String()

	ae, err := submodule.NewAE(c.subMap(KeyAberrantExpression), sa, pd, pr)
	if err != nil {
		return err
	}
	as, err := submodule.NewAS(c.subMap(KeyAberrantSplicing), sa, pd, pr)
	if err != nil {
		return err
	}
	mae, err := submodule.NewMAE(c.subMap(KeyMAE), sa, pd, pr)
	if err != nil {
		return err
	}
	exportCounts, err := submodule.NewExportCounts(
		c.subMap(KeyExportCounts), pr, sa,
		c.GeneVersions(), c.genomeAssembly,
		ae, as,
	)
	if err != nil {
		return err
	}

	c.sampleAnnotation = sa
	c.ae, c.as, c.mae, c.exportCounts = ae, as, mae, exportCounts

	// Legacy consumers read the raw mapping, so they need resolved values.
	c.dict[KeyAberrantExpression] = ae.Resolved()
	c.dict[KeyAberrantSplicing] = as.Resolved()
	c.dict[KeyMAE] = mae.Resolved()
	c.dict[KeyExportCounts] = exportCounts.Resolved()

	c.typed = decodeSettings(c.dict)
	return nil
}

func (c *Config) subMap(key string) settings.Map {
	m, _ := c.dict[key].(settings.Map)
	return m
}

func resolvePath(dict settings.Map, key string) (paths.Path, error) {
	s, ok := dict[key].(string)
	if !ok {
		return "", fmt.Errorf("%s: value %v is not a path", key, dict[key])
	}
	abs, err := paths.Resolve(s)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return paths.Path(abs), nil
}
