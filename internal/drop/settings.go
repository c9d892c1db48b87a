// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package drop

import (
	"errors"

	"gopkg.in/yaml.v3"

	"github.com/dropkit/dropcfg/internal/log"
	"github.com/dropkit/dropcfg/internal/settings"
)

// Tools are the command line tools invoked by the pipeline.
type Tools struct {
	SamtoolsCmd string `yaml:"samtoolsCmd" json:"samtoolsCmd"`
	BcftoolsCmd string `yaml:"bcftoolsCmd" json:"bcftoolsCmd"`
	GatkCmd     string `yaml:"gatkCmd" json:"gatkCmd"`
}

// Settings is the typed view of the recognized top-level keys. Module
// mappings stay untyped; their shape belongs to the submodule package.
type Settings struct {
	ProjectTitle        string         `yaml:"projectTitle" json:"projectTitle"`
	HTMLOutputPath      string         `yaml:"htmlOutputPath" json:"htmlOutputPath"`
	ScriptsPath         string         `yaml:"scriptsPath" json:"scriptsPath"`
	IndexWithFolderName bool           `yaml:"indexWithFolderName" json:"indexWithFolderName"`
	FileRegex           string         `yaml:"fileRegex" json:"fileRegex"`
	ReadmePath          string         `yaml:"readmePath" json:"readmePath"`
	Root                string         `yaml:"root" json:"root"`
	SampleAnnotation    string         `yaml:"sampleAnnotation" json:"sampleAnnotation"`
	GeneAnnotation      map[string]any `yaml:"geneAnnotation" json:"geneAnnotation"`
	GenomeAssembly      string         `yaml:"genomeAssembly" json:"genomeAssembly"`
	ExportCounts        map[string]any `yaml:"exportCounts" json:"exportCounts"`
	Tools               Tools          `yaml:"tools" json:"tools"`
	AberrantExpression  map[string]any `yaml:"aberrantExpression" json:"aberrantExpression"`
	AberrantSplicing    map[string]any `yaml:"aberrantSplicing" json:"aberrantSplicing"`
	MAE                 map[string]any `yaml:"mae" json:"mae"`
}

// decodeSettings projects the recognized keys of m onto Settings. Unknown
// keys are ignored. Values whose shape does not fit their field are logged
// and leave the field at its zero value; the mapping stays authoritative.
func decodeSettings(m settings.Map) Settings {
	var s Settings
	b, err := yaml.Marshal(map[string]any(m))
	if err != nil {
		log.Warnf("typed settings unavailable: %v", err)
		return s
	}

	var typeErr *yaml.TypeError
	if err := yaml.Unmarshal(b, &s); errors.As(err, &typeErr) {
		for _, e := range typeErr.Errors {
			log.Warnf("typed settings: %s", e)
		}
	} else if err != nil {
		log.Warnf("typed settings unavailable: %v", err)
		return Settings{}
	}
	return s
}
