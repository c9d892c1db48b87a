// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package drop

import (
	"bytes"
	"testing"

	apexlog "github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dlog "github.com/dropkit/dropcfg/internal/log"
	"github.com/dropkit/dropcfg/internal/settings"
)

// captureLog routes the global logger into a buffer for the test's duration.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := apexlog.Log
	apexlog.Log = &apexlog.Logger{Handler: &dlog.CustomHandler{Writer: &buf}, Level: apexlog.WarnLevel}
	t.Cleanup(func() { apexlog.Log = prev })
	return &buf
}

func TestSetDefaults(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(settings.Map)
		checkFunc func(*testing.T, settings.Map)
	}{
		{
			name:   "defaults applied",
			mutate: func(settings.Map) {},
			checkFunc: func(t *testing.T, m settings.Map) {
				assert.Equal(t, "hg19", m[KeyGenomeAssembly])
				assert.Equal(t, true, m[KeyIndexWithFolderName])
				assert.Equal(t, `.*\.R`, m[KeyFileRegex])
				for _, k := range []string{KeyAberrantExpression, KeyAberrantSplicing, KeyMAE, KeyExportCounts} {
					assert.Equal(t, settings.Map{}, m[k], k)
				}
				assert.Equal(t, settings.Map{
					"samtoolsCmd": "samtools",
					"bcftoolsCmd": "bcftools",
					"gatkCmd":     "gatk",
				}, m[KeyTools])
			},
		},
		{
			name: "user genome assembly wins",
			mutate: func(m settings.Map) {
				m[KeyGenomeAssembly] = "hg38"
			},
			checkFunc: func(t *testing.T, m settings.Map) {
				assert.Equal(t, "hg38", m[KeyGenomeAssembly])
			},
		},
		{
			name: "partial tools keep user values",
			mutate: func(m settings.Map) {
				m[KeyTools] = settings.Map{"gatkCmd": "/opt/gatk/gatk"}
			},
			checkFunc: func(t *testing.T, m settings.Map) {
				tools := m[KeyTools].(settings.Map)
				assert.Equal(t, "/opt/gatk/gatk", tools["gatkCmd"])
				assert.Equal(t, "samtools", tools["samtoolsCmd"])
				assert.Equal(t, "bcftools", tools["bcftoolsCmd"])
			},
		},
		{
			name: "forced keys overwrite user values",
			mutate: func(m settings.Map) {
				m[KeyIndexWithFolderName] = false
				m[KeyFileRegex] = `.*\.py`
			},
			checkFunc: func(t *testing.T, m settings.Map) {
				assert.Equal(t, true, m[KeyIndexWithFolderName])
				assert.Equal(t, `.*\.R`, m[KeyFileRegex])
			},
		},
		{
			name: "null module mapping becomes empty",
			mutate: func(m settings.Map) {
				m[KeyMAE] = nil
			},
			checkFunc: func(t *testing.T, m settings.Map) {
				assert.Equal(t, settings.Map{}, m[KeyMAE])
			},
		},
		{
			name: "absent gene annotation is empty",
			mutate: func(m settings.Map) {
				delete(m, KeyGeneAnnotation)
			},
			checkFunc: func(t *testing.T, m settings.Map) {
				assert.Equal(t, settings.Map{}, m[KeyGeneAnnotation])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m := fixture(t)
			tt.mutate(m)
			got, err := SetDefaults(m)
			require.NoError(t, err)
			tt.checkFunc(t, got)
		})
	}
}

func TestSetDefaults_TypeErrors(t *testing.T) {
	_, m := fixture(t)
	m[KeyTools] = "samtools"
	_, err := SetDefaults(m)
	assert.ErrorIs(t, err, settings.ErrNotMapping)

	_, m = fixture(t)
	m[KeyGeneAnnotation] = "/genes.gtf"
	_, err = SetDefaults(m)
	assert.ErrorIs(t, err, settings.ErrNotMapping)
}

func TestIsConfigKey(t *testing.T) {
	assert.True(t, IsConfigKey("tools"))
	assert.True(t, IsConfigKey("mae"))
	assert.False(t, IsConfigKey("notAKey"))
	assert.Len(t, ConfigKeys, 15)
}

func TestSetDefaults_GeneAnnotationWarning(t *testing.T) {
	t.Run("warns when unset", func(t *testing.T) {
		buf := captureLog(t)
		_, m := fixture(t)
		delete(m, KeyGeneAnnotation)

		_, err := SetDefaults(m)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), " W geneAnnotation not set")
	})

	t.Run("silent when mandatory keys fail", func(t *testing.T) {
		buf := captureLog(t)
		_, m := fixture(t)
		delete(m, KeyGeneAnnotation)
		delete(m, KeyRoot)

		_, err := SetDefaults(m)
		var missing *settings.MissingKeyError
		require.ErrorAs(t, err, &missing)
		assert.NotContains(t, buf.String(), "geneAnnotation not set")
	})
}
