// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/dropkit/dropcfg/internal/attrs"
)

// withCommand runs fn inside the Action of a command carrying the output
// flags, parsed from args.
func withCommand(t *testing.T, args []string, fn func(cmd *cli.Command)) {
	t.Helper()

	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles"},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			fn(cmd)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

const rows = `[
	{"RNA_ID": "S20R", "DROP_GROUP": "outrider,fraser", "READS": 500},
	{"RNA_ID": "S10R", "DROP_GROUP": "outrider,mae", "READS": 2000},
	{"RNA_ID": "s30r", "DROP_GROUP": "mae, fraser", "READS": 1000}
]`

func sampleAttrs(t *testing.T, spec string) attrs.AttrList {
	t.Helper()
	a := attrs.AttrList{}
	require.NoError(t, a.Set(spec))
	return a
}

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"RNA_ID": "S30R", "READS": 3.0},
		{"RNA_ID": "s10r", "READS": 1.5},
		{"RNA_ID": "S20R", "READS": 1.25},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{"ascending", "RNA_ID", []string{"s10r", "S20R", "S30R"}},
		{"descending", "-RNA_ID", []string{"S30R", "S20R", "s10r"}},
		{"numeric ascending", "READS", []string{"S20R", "s10r", "S30R"}},
		{"numeric descending", "-READS", []string{"S30R", "s10r", "S20R"}},
		{"case sensitive", "!RNA_ID", []string{"S20R", "S30R", "s10r"}},
		{"empty spec", "", []string{"S30R", "s10r", "S20R"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)

			got := make([]string, 0, len(data))
			for _, row := range data {
				got = append(got, row["RNA_ID"].(string))
			}
			assert.Equal(t, tt.wantOrder, got)
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal []string
		want     string
	}{
		{"string", "hg19", nil, "hg19"},
		{"int", 42, nil, "42"},
		{"float integral", 2000000.0, nil, "2000000"},
		{"float fraction", 0.05, nil, "0.05"},
		{"bool true", true, nil, "true"},
		{"bool false is zero", false, nil, ""},
		{"nil", nil, nil, ""},
		{"nil custom", nil, []string{"-"}, "-"},
		{"slice", []string{"outrider", "mae"}, nil, `["outrider","mae"]`},
		{"map", map[string]int{"x": 1}, nil, `{"x":1}`},
		{"zero custom", 0, []string{"N/A"}, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.emptyVal...))
		})
	}
}

func TestSliceDiceSpit(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		attrs     string
		checkFunc func(*testing.T, string)
	}{
		{
			name:  "text table sorted",
			args:  []string{"--sort", "RNA_ID"},
			attrs: "RNA_ID,DROP_GROUP",
			checkFunc: func(t *testing.T, out string) {
				lines := strings.Split(strings.TrimSpace(out), "\n")
				require.Len(t, lines, 3)
				assert.Contains(t, lines[0], "S10R")
				assert.Contains(t, lines[1], "S20R")
				assert.Contains(t, lines[2], "s30r")
			},
		},
		{
			name:  "titles",
			args:  []string{"--titles"},
			attrs: "RNA_ID:rna",
			checkFunc: func(t *testing.T, out string) {
				assert.Contains(t, out, "rna")
			},
		},
		{
			name:  "filter and transform",
			args:  []string{"--filter", "DROP_GROUP@mae", "--output", "json"},
			attrs: "RNA_ID::U,READS::n",
			checkFunc: func(t *testing.T, out string) {
				assert.JSONEq(t, `[{"RNA_ID":"S10R","READS":2000},{"RNA_ID":"S30R","READS":1000}]`, out)
			},
		},
		{
			name:  "yaml",
			args:  []string{"--output", "yaml", "--sort", "-READS"},
			attrs: "RNA_ID",
			checkFunc: func(t *testing.T, out string) {
				assert.Equal(t, "- RNA_ID: S10R\n- RNA_ID: s30r\n- RNA_ID: S20R\n", out)
			},
		},
		{
			name:  "raw",
			args:  []string{"--output", "raw"},
			attrs: "RNA_ID",
			checkFunc: func(t *testing.T, out string) {
				assert.Equal(t, rows, out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			withCommand(t, tt.args, func(cmd *cli.Command) {
				err := SliceDiceSpit(*bytes.NewBufferString(rows), sampleAttrs(t, tt.attrs), cmd, "", &buf, nil)
				require.NoError(t, err)
			})
			tt.checkFunc(t, buf.String())
		})
	}
}

func TestSliceDiceSpit_ParentAndPostProcess(t *testing.T) {
	var (
		buf  bytes.Buffer
		seen int
	)
	withCommand(t, nil, func(cmd *cli.Command) {
		raw := bytes.NewBufferString(`{"samples":` + rows + `}`)
		err := SliceDiceSpit(*raw, sampleAttrs(t, "RNA_ID"), cmd, "samples", &buf,
			func(ds []map[string]interface{}) error {
				seen = len(ds)
				return nil
			})
		require.NoError(t, err)
	})
	assert.Equal(t, 3, seen)
	assert.Contains(t, buf.String(), "S10R")
}

func TestTableWriter(t *testing.T) {
	resultSet := []map[string]interface{}{
		{"key": "root", "value": "/data/run1", "hidden": "x"},
		{"key": "genomeAssembly", "value": nil, "hidden": "y"},
	}
	list := attrs.AttrList{
		{Key: "key", OutputKey: "key", Include: true},
		{Key: "value", OutputKey: "value", Include: true},
		{Key: "hidden", OutputKey: "hidden", Include: false},
	}

	var buf bytes.Buffer
	withCommand(t, []string{"--titles"}, func(cmd *cli.Command) {
		cmd.Metadata = map[string]interface{}{"header": "Run", "footer": "2 keys"}
		TableWriter(resultSet, list, cmd, &buf)
	})

	out := buf.String()
	assert.Contains(t, out, "Run")
	assert.Contains(t, out, "/data/run1")
	assert.Contains(t, out, "2 keys")
	assert.Contains(t, out, "-")
	assert.NotContains(t, out, "hidden")

	buf.Reset()
	withCommand(t, nil, func(cmd *cli.Command) {
		TableWriter(nil, list, cmd, &buf)
	})
	assert.Empty(t, buf.String())
}

func TestDocument(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		format string
		want   string
	}{
		{"text scalar", "hg19", "text", "hg19\n"},
		{"text bool", false, "text", "false\n"},
		{"text float", 0.05, "text", "0.05\n"},
		{"text nil", nil, "text", "\n"},
		{"text mapping", map[string]any{"gatkCmd": "gatk"}, "text", "gatkCmd: gatk\n"},
		{"json", map[string]any{"gatkCmd": "gatk"}, "json", "{\n  \"gatkCmd\": \"gatk\"\n}\n"},
		{"yaml list", []any{"outrider", "mae"}, "yaml", "- outrider\n- mae\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Document(tt.value, tt.format, &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	assert.Error(t, Encode("x", "toml", &bytes.Buffer{}))
}

func TestNewTag(t *testing.T) {
	assert.Equal(t, schemaTag{Name: "root"}, NewTag("", "root"))
	assert.Equal(t, schemaTag{Name: "tools.gatkCmd"}, NewTag("tools", "gatkCmd,omitempty"))
	assert.Equal(t, schemaTag{}, NewTag("", "-"))
	assert.Equal(t, schemaTag{}, NewTag("", ",inline"))
}

func TestDumpSchema(t *testing.T) {
	type tools struct {
		GatkCmd string `yaml:"gatkCmd"`
	}
	type settings struct {
		Root      string         `yaml:"root"`
		Tools     tools          `yaml:"tools"`
		MAE       map[string]any `yaml:"mae"`
		Untagged  string
		Skipped   string  `yaml:"-"`
		Threshold float64 `yaml:"threshold"`
	}

	var buf bytes.Buffer
	DumpSchema("", reflect.TypeOf(settings{}), &buf)
	assert.Equal(t, "mae (mapping)\nroot (string)\nthreshold (number)\ntools (mapping)\ntools.gatkCmd (string)\n", buf.String())

	buf.Reset()
	DumpSchema("", reflect.TypeOf(""), &buf)
	assert.Empty(t, buf.String())
}
