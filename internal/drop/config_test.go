// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package drop

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropkit/dropcfg/internal/paths"
	"github.com/dropkit/dropcfg/internal/settings"
)

const annotation = "RNA_ID\tRNA_BAM_FILE\tDNA_VCF_FILE\tDNA_ID\tDROP_GROUP\tPAIRED_END\tCOUNT_MODE\tCOUNT_OVERLAPS\tSTRAND\n" +
	"S10R\t/data/S10R.bam\t/data/S10G.vcf.gz\tS10G\toutrider,mae\tTRUE\tIntersectionStrict\tTRUE\tno\n" +
	"S20R\t/data/S20R.bam\t\t\toutrider,fraser\tTRUE\tIntersectionStrict\tTRUE\tno\n"

// fixture lays out a run directory with every referenced path present and
// returns a settings mapping pointing at it.
func fixture(t *testing.T) (string, settings.Map) {
	t.Helper()

	dir := t.TempDir()
	root := filepath.Join(dir, "run1")
	html := filepath.Join(root, "html")
	require.NoError(t, os.MkdirAll(html, 0o755))

	sa := filepath.Join(root, "sa.tsv")
	require.NoError(t, os.WriteFile(sa, []byte(annotation), 0o600))
	genes := filepath.Join(root, "genes.gtf")
	require.NoError(t, os.WriteFile(genes, nil, 0o600))

	return root, settings.Map{
		KeyRoot:             root,
		KeyHTMLOutputPath:   html,
		KeySampleAnnotation: sa,
		KeyGeneAnnotation:   settings.Map{"v1": genes},
	}
}

func TestNew(t *testing.T) {
	root, m := fixture(t)

	c, err := New(settings.NewProvider(m))
	require.NoError(t, err)

	assert.Equal(t, root, c.Root())
	assert.Equal(t, paths.Path(root), c.RootPath())
	assert.DirExists(t, filepath.Join(root, "processed_data"))
	assert.DirExists(t, filepath.Join(root, "processed_results"))
	assert.Equal(t, filepath.Join(root, "processed_data"), c.ProcessedDataDir())
	assert.Equal(t, filepath.Join(root, "processed_results"), c.ProcessedResultsDir())
	assert.Equal(t, paths.Path(filepath.Join(root, "processed_results")), c.ProcessedResultsPath())
	assert.Equal(t, filepath.Join(root, "html"), c.HTMLOutputPath())
	assert.Empty(t, c.ReadmePath())

	v, err := c.Get(KeyGenomeAssembly)
	require.NoError(t, err)
	assert.Equal(t, "hg19", v)

	assert.Equal(t, 2, c.SampleAnnotation().Len())
	assert.Equal(t, []string{"fraser", "mae", "outrider"}, c.AE().Groups)
	assert.Equal(t, []string{"mae", "outrider"}, c.MAE().Groups)
	assert.Equal(t, []string{"v1"}, c.ExportCounts().GeneAnnotations)
}

func TestNew_MissingMandatoryKeys(t *testing.T) {
	tests := []struct {
		name    string
		drop    []string
		missing []string
	}{
		{"root", []string{KeyRoot}, []string{KeyRoot}},
		{"html", []string{KeyHTMLOutputPath}, []string{KeyHTMLOutputPath}},
		{"annotation", []string{KeySampleAnnotation}, []string{KeySampleAnnotation}},
		{"all", []string{KeyRoot, KeyHTMLOutputPath, KeySampleAnnotation}, []string{KeyHTMLOutputPath, KeyRoot, KeySampleAnnotation}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m := fixture(t)
			for _, k := range tt.drop {
				delete(m, k)
			}

			_, err := New(settings.NewProvider(m))
			var missing *settings.MissingKeyError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.missing, missing.Keys)
		})
	}
}

func TestNew_PathsMustExist(t *testing.T) {
	root, m := fixture(t)
	m[KeySampleAnnotation] = filepath.Join(root, "gone.tsv")
	m[KeyGeneAnnotation] = settings.Map{
		"v1": filepath.Join(root, "genes.gtf"),
		"v2": filepath.Join(root, "gone.gtf"),
	}

	_, err := New(settings.NewProvider(m))
	var notFound *settings.PathNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{KeySampleAnnotation, "geneAnnotation.v2"}, notFound.Keys())
	assert.NoDirExists(t, filepath.Join(root, "processed_data"))
}

func TestNew_Idempotent(t *testing.T) {
	root, m := fixture(t)

	_, err := New(settings.NewProvider(settings.Clone(m)))
	require.NoError(t, err)

	marker := filepath.Join(root, "processed_results", "keep.txt")
	require.NoError(t, os.WriteFile(marker, []byte("keep"), 0o600))

	_, err = New(settings.NewProvider(settings.Clone(m)))
	require.NoError(t, err)

	b, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(b))
}

func TestNew_SubmoduleErrorsPropagate(t *testing.T) {
	_, m := fixture(t)
	m[KeyAberrantExpression] = settings.Map{"groups": []any{"missing"}}

	_, err := New(settings.NewProvider(m))
	assert.ErrorContains(t, err, "unknown group(s) not in sample annotation: missing")
}

func TestNew_AnnotationErrorsPropagate(t *testing.T) {
	root, m := fixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "sa.tsv"), []byte("RNA_ID\nS1\n"), 0o600))

	_, err := New(settings.NewProvider(m))
	assert.ErrorContains(t, err, "missing column(s)")
}

func TestNew_WritesBackModules(t *testing.T) {
	_, m := fixture(t)
	m[KeyAberrantExpression] = settings.Map{"padjCutoff": 0.01}

	c, err := New(settings.NewProvider(m))
	require.NoError(t, err)

	raw := c.Raw()
	assert.Equal(t, c.AE().Dict, raw[KeyAberrantExpression])
	assert.Equal(t, c.AS().Dict, raw[KeyAberrantSplicing])
	assert.Equal(t, c.MAE().Dict, raw[KeyMAE])
	assert.Equal(t, c.ExportCounts().Dict, raw[KeyExportCounts])

	ae, err := c.Get(KeyAberrantExpression)
	require.NoError(t, err)
	assert.Equal(t, 0.01, ae.(settings.Map)["padjCutoff"])
	assert.Equal(t, "autoencoder", ae.(settings.Map)["implementation"])

	typed := c.Settings()
	assert.Equal(t, "autoencoder", typed.AberrantExpression["implementation"])
	assert.Equal(t, "samtools", typed.Tools.SamtoolsCmd)
	assert.True(t, typed.IndexWithFolderName)
}

func TestGet(t *testing.T) {
	_, m := fixture(t)
	m["wBuildPath"] = "/opt/wbuild"

	c, err := New(settings.NewProvider(m))
	require.NoError(t, err)

	for _, key := range ConfigKeys {
		_, err := c.Get(key)
		assert.NoError(t, err, key)
	}

	tools, err := c.Get(KeyTools)
	require.NoError(t, err)
	assert.Equal(t, "gatk", tools.(settings.Map)["gatkCmd"])

	v, err := c.Get(KeyProjectTitle)
	assert.NoError(t, err)
	assert.Nil(t, v)

	for _, key := range []string{"notAKey", "wBuildPath", "Root", ""} {
		_, err := c.Get(key)
		var unrecognized *settings.UnrecognizedKeyError
		require.ErrorAs(t, err, &unrecognized, key)
		assert.Equal(t, key, unrecognized.Key)
	}
}

func TestGeneAnnotations(t *testing.T) {
	root, m := fixture(t)
	genes := filepath.Join(root, "genes.gtf")
	m[KeyGeneAnnotation] = settings.Map{
		"v29":    genes,
		"grch38": settings.Map{"v33": genes},
	}

	c, err := New(settings.NewProvider(m))
	require.NoError(t, err)

	assert.Equal(t, []string{"grch38.v33", "v29"}, c.GeneVersions())
	assert.Equal(t, map[string]string{"v29": genes, "grch38.v33": genes}, c.GeneAnnotations())

	f, err := c.GeneAnnotationFile("v29")
	require.NoError(t, err)
	assert.Equal(t, genes, f)

	_, err = c.GeneAnnotationFile("v40")
	assert.True(t, errors.Is(err, ErrUnknownAnnotation))

	// Returned table is a copy.
	c.GeneAnnotations()["v29"] = "changed"
	f, _ = c.GeneAnnotationFile("v29")
	assert.Equal(t, genes, f)
}

func TestHTMLFromScript(t *testing.T) {
	root, m := fixture(t)
	c, err := New(settings.NewProvider(m))
	require.NoError(t, err)

	got := c.HTMLFromScript("Scripts/AberrantExpression/pipeline/Summary.R")
	assert.Equal(t, filepath.Join(root, "html", "Scripts_AberrantExpression_pipeline_Summary.html"), got)
	assert.Equal(t, got, c.HTMLFromScript("Scripts/AberrantExpression/pipeline/Summary.R"))
}

func TestNormalize_DoesNotCreateDirectories(t *testing.T) {
	root, m := fixture(t)

	c, err := Normalize(settings.NewProvider(m))
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(root, "processed_data"))
	assert.Nil(t, c.AE())

	require.NoError(t, c.MaterializeLayout())
	assert.DirExists(t, filepath.Join(root, "processed_data"))
	assert.DirExists(t, filepath.Join(root, "processed_results"))
}

func TestNormalize_ReadmePath(t *testing.T) {
	root, m := fixture(t)
	m[KeyReadmePath] = filepath.Join(root, "readme.md")

	c, err := Normalize(settings.NewProvider(m))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "readme.md"), c.ReadmePath())
}

func TestNew_EmptyAnnotationAndGenes(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "run1")
	html := filepath.Join(root, "html")
	require.NoError(t, os.MkdirAll(html, 0o755))
	sa := filepath.Join(root, "sa.tsv")
	require.NoError(t, os.WriteFile(sa, nil, 0o600))
	genes := filepath.Join(root, "genes.gtf")
	require.NoError(t, os.WriteFile(genes, nil, 0o600))

	c, err := New(settings.NewProvider(settings.Map{
		KeyRoot:             root,
		KeyHTMLOutputPath:   html,
		KeySampleAnnotation: sa,
		KeyGeneAnnotation:   settings.Map{"v1": genes},
	}))
	require.NoError(t, err)

	assert.Equal(t, root, c.Root())
	v, err := c.Get(KeyGenomeAssembly)
	require.NoError(t, err)
	assert.Equal(t, "hg19", v)
	assert.DirExists(t, filepath.Join(root, "processed_data"))
	assert.DirExists(t, filepath.Join(root, "processed_results"))

	assert.Equal(t, 0, c.SampleAnnotation().Len())
	assert.Empty(t, c.AE().Groups)
	assert.Empty(t, c.AS().Groups)
	assert.Empty(t, c.MAE().Groups)
}

func TestNew_UntypedScriptsPath(t *testing.T) {
	_, m := fixture(t)
	m[KeyScriptsPath] = []any{"a", "b"}

	c, err := New(settings.NewProvider(m))
	require.NoError(t, err)

	assert.Empty(t, c.Settings().ScriptsPath)
	assert.Equal(t, "hg19", c.Settings().GenomeAssembly)
	assert.Equal(t, "samtools", c.Settings().Tools.SamtoolsCmd)
	assert.Equal(t, []any{"a", "b"}, c.Raw()[KeyScriptsPath])

	v, err := c.Get(KeyScriptsPath)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, v)
}

// plainProvider hands out nested values as map[string]any.
type plainProvider struct {
	m map[string]any
}

func (p *plainProvider) GetConfig() settings.Map { return p.m }

func (p *plainProvider) Get(key string) (any, bool) {
	v, ok := p.m[key]
	return v, ok
}

func TestNew_PlainNestedMaps(t *testing.T) {
	root, m := fixture(t)
	genes := filepath.Join(root, "genes.gtf")
	p := &plainProvider{m: map[string]any{
		KeyRoot:             m[KeyRoot],
		KeyHTMLOutputPath:   m[KeyHTMLOutputPath],
		KeySampleAnnotation: m[KeySampleAnnotation],
		KeyGeneAnnotation:   map[string]any{"v1": genes},
		KeyTools:            map[string]any{"gatkCmd": "/opt/gatk"},
	}}

	c, err := New(p)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"v1": genes}, c.GeneAnnotations())

	tools, err := c.Get(KeyTools)
	require.NoError(t, err)
	assert.Equal(t, "/opt/gatk", tools.(settings.Map)["gatkCmd"])
	assert.Equal(t, "samtools", tools.(settings.Map)["samtoolsCmd"])

	live, ok := p.Get(KeyTools)
	require.True(t, ok)
	assert.Equal(t, "bcftools", live.(settings.Map)["bcftoolsCmd"])
}

func TestNew_HomeRelativeGeneAnnotation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	genes := filepath.Join(home, "genes.gtf")
	require.NoError(t, os.WriteFile(genes, nil, 0o600))

	_, m := fixture(t)
	m[KeyGeneAnnotation] = settings.Map{"v1": "~/genes.gtf"}

	c, err := New(settings.NewProvider(m))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"v1": genes}, c.GeneAnnotations())
}
