// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package submodule

import (
	"fmt"
	"os"

	"github.com/dropkit/dropcfg/internal/paths"
	"github.com/dropkit/dropcfg/internal/sampleannotation"
	"github.com/dropkit/dropcfg/internal/settings"
)

var aeDefaults = []kv{
	{"run", true},
	{"fpkmCutoff", 1},
	{"implementation", "autoencoder"},
	{"padjCutoff", 0.05},
	{"zScoreCutoff", 0},
	{"maxTestedDimensionProportion", 3},
	{"yieldSize", 2000000},
}

var aeImplementations = []string{"autoencoder", "pca", "peer"}

// AberrantExpression is the expression outlier module.
type AberrantExpression struct {
	*Submodule
}

// NewAE resolves the aberrantExpression settings.
func NewAE(cfg settings.Map, sa *sampleannotation.Annotation, processedDataDir, processedResultsDir string) (*AberrantExpression, error) {
	s, err := newSubmodule("aberrantExpression", "aberrant_expression", cfg, aeDefaults,
		[]string{sampleannotation.RNAID}, sa, processedDataDir, processedResultsDir)
	if err != nil {
		return nil, err
	}
	impl, _ := s.Dict["implementation"].(string)
	if !oneOf(impl, aeImplementations) {
		return nil, fmt.Errorf("aberrantExpression.implementation: must be one of %v, got %q", aeImplementations, impl)
	}
	return &AberrantExpression{Submodule: s}, nil
}

var asDefaults = []kv{
	{"run", true},
	{"recount", false},
	{"longRead", false},
	{"keepNonStandardChrs", true},
	{"filter", true},
	{"minExpressionInOneSample", 20},
	{"quantileMinExpression", 10},
	{"quantileForFiltering", 0.95},
	{"minDeltaPsi", 0.05},
	{"implementation", "PCA"},
	{"padjCutoff", 0.1},
	{"maxTestedDimensionProportion", 6},
	{"deltaPsiCutoff", 0.1},
}

// AberrantSplicing is the splicing outlier module.
type AberrantSplicing struct {
	*Submodule
}

// NewAS resolves the aberrantSplicing settings.
func NewAS(cfg settings.Map, sa *sampleannotation.Annotation, processedDataDir, processedResultsDir string) (*AberrantSplicing, error) {
	s, err := newSubmodule("aberrantSplicing", "aberrant_splicing", cfg, asDefaults,
		[]string{sampleannotation.RNAID}, sa, processedDataDir, processedResultsDir)
	if err != nil {
		return nil, err
	}
	return &AberrantSplicing{Submodule: s}, nil
}

var maeDefaults = []kv{
	{"run", true},
	{"gatkIgnoreHeaderCheck", true},
	{"padjCutoff", 0.05},
	{"allelicRatioCutoff", 0.8},
	{"addAF", false},
	{"maxAF", 0.001},
	{"maxVarFreqCohort", 0.04},
	{"dnaRnaMatchCutoff", 0.85},
}

// MAE is the mono-allelic expression (variant effect) module.
type MAE struct {
	*Submodule
	QCVcf    string
	QCGroups []string
}

// NewMAE resolves the mae settings. Groups default to those with both RNA
// and DNA samples. qcVcf, when set, must exist.
func NewMAE(cfg settings.Map, sa *sampleannotation.Annotation, processedDataDir, processedResultsDir string) (*MAE, error) {
	s, err := newSubmodule("mae", "mae", cfg, maeDefaults,
		[]string{sampleannotation.RNAID, sampleannotation.DNAID}, sa, processedDataDir, processedResultsDir)
	if err != nil {
		return nil, err
	}

	m := &MAE{Submodule: s}

	if v, ok := s.Dict["qcVcf"]; ok && v != nil {
		qc, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("mae.qcVcf: value %v is not a path", v)
		}
		abs, err := paths.Resolve(qc)
		if err == nil {
			_, err = os.Stat(abs)
		}
		if err != nil {
			return nil, &settings.PathNotFoundError{Violations: []settings.Violation{{Key: "mae.qcVcf", Path: qc}}}
		}
		m.QCVcf = abs
	}

	raw, err := settings.SetKey(s.Dict, nil, "qcGroups", toAny(s.Groups))
	if err != nil {
		return nil, fmt.Errorf("mae: %w", err)
	}
	if m.QCGroups, err = toStrings(raw); err != nil {
		return nil, fmt.Errorf("mae.qcGroups: %w", err)
	}
	if err := checkGroups(sa, m.QCGroups); err != nil {
		return nil, fmt.Errorf("mae.qcGroups: %w", err)
	}

	return m, nil
}

func oneOf(s string, list []string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
