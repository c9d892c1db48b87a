// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package drop

import (
	"fmt"

	"github.com/dropkit/dropcfg/internal/log"
	"github.com/dropkit/dropcfg/internal/settings"
)

// Top-level settings keys.
const (
	KeyProjectTitle        = "projectTitle"
	KeyHTMLOutputPath      = "htmlOutputPath"
	KeyScriptsPath         = "scriptsPath"
	KeyIndexWithFolderName = "indexWithFolderName"
	KeyFileRegex           = "fileRegex"
	KeyReadmePath          = "readmePath"
	KeyRoot                = "root"
	KeySampleAnnotation    = "sampleAnnotation"
	KeyGeneAnnotation      = "geneAnnotation"
	KeyGenomeAssembly      = "genomeAssembly"
	KeyExportCounts        = "exportCounts"
	KeyTools               = "tools"
	KeyAberrantExpression  = "aberrantExpression"
	KeyAberrantSplicing    = "aberrantSplicing"
	KeyMAE                 = "mae"
)

// ConfigKeys is the closed set of keys served by Config.Get.
var ConfigKeys = []string{
	// report keys
	KeyProjectTitle, KeyHTMLOutputPath, KeyScriptsPath, KeyIndexWithFolderName, KeyFileRegex, KeyReadmePath,
	// global parameters
	KeyRoot, KeySampleAnnotation, KeyGeneAnnotation, KeyGenomeAssembly, KeyExportCounts, KeyTools,
	// modules
	KeyAberrantExpression, KeyAberrantSplicing, KeyMAE,
}

// MandatoryKeys must be present and name existing paths.
var MandatoryKeys = []string{KeyHTMLOutputPath, KeyRoot, KeySampleAnnotation}

// Default values.
const (
	DefaultFileRegex      = `.*\.R`
	DefaultGenomeAssembly = "hg19"
	DefaultSamtoolsCmd    = "samtools"
	DefaultBcftoolsCmd    = "bcftools"
	DefaultGatkCmd        = "gatk"
)

// IsConfigKey reports whether key is in ConfigKeys.
func IsConfigKey(key string) bool {
	for _, k := range ConfigKeys {
		if k == key {
			return true
		}
	}
	return false
}

// SetDefaults checks the mandatory keys and the gene annotation files, then
// fills in defaults for every optional key that is absent or null. It
// modifies m in place and returns it.
//
// indexWithFolderName and fileRegex are forced regardless of user input.
func SetDefaults(m settings.Map) (settings.Map, error) {
	mandatoryErr := settings.CheckKeys(m, MandatoryKeys, true)

	v, ok := m[KeyGeneAnnotation]
	genesAbsent := !ok || v == nil
	genes, err := settings.SubMap(m, KeyGeneAnnotation)
	if err != nil {
		return nil, settings.MergeErrors(mandatoryErr, err)
	}
	genesErr := settings.CheckKeys(settings.Map{KeyGeneAnnotation: genes}, nil, true)

	if err := settings.MergeErrors(mandatoryErr, genesErr); err != nil {
		return nil, err
	}
	if genesAbsent {
		log.Warnf("%s not set, no gene annotation files configured", KeyGeneAnnotation)
	}

	m[KeyIndexWithFolderName] = true
	m[KeyFileRegex] = DefaultFileRegex

	if _, err := settings.SetKey(m, nil, KeyGenomeAssembly, DefaultGenomeAssembly); err != nil {
		return nil, err
	}

	for _, key := range []string{KeyAberrantExpression, KeyAberrantSplicing, KeyMAE, KeyExportCounts, KeyTools} {
		if _, err := settings.SubMap(m, key); err != nil {
			return nil, err
		}
	}

	tools := []struct {
		key string
		def string
	}{
		{"samtoolsCmd", DefaultSamtoolsCmd},
		{"bcftoolsCmd", DefaultBcftoolsCmd},
		{"gatkCmd", DefaultGatkCmd},
	}
	for _, tool := range tools {
		if _, err := settings.SetKey(m, []string{KeyTools}, tool.key, tool.def); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", KeyTools, tool.key, err)
		}
	}

	return m, nil
}
