// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var cases embed.FS

// load decodes the named testdata file into a slice of cases.
func load[T any](t *testing.T, name string) []T {
	t.Helper()

	b, err := cases.ReadFile("testdata/" + name)
	require.NoError(t, err)

	var out []T
	require.NoError(t, yaml.Unmarshal(b, &out))
	require.NotEmpty(t, out, "no cases in %s", name)
	return out
}

func TestAttrList_Set(t *testing.T) {
	type setCase struct {
		Name    string `yaml:"name"`
		Initial []Attr `yaml:"initial"`
		Value   string `yaml:"value"`
		Len     int    `yaml:"wantLen"`
		Attrs   []Attr `yaml:"wantAttrs"`
		Err     bool   `yaml:"wantErr"`
	}

	for _, c := range load[setCase](t, "set_cases.yaml") {
		t.Run(c.Name, func(t *testing.T) {
			list := AttrList(c.Initial)
			err := list.Set(c.Value)
			if c.Err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, list, c.Len)
			if len(c.Attrs) > 0 {
				assert.Equal(t, c.Attrs, []Attr(list[:len(c.Attrs)]))
			}
		})
	}
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	type globalCase struct {
		Name    string   `yaml:"name"`
		Initial []Attr   `yaml:"initial"`
		Specs   []string `yaml:"wantSpecs"`
	}

	for _, c := range load[globalCase](t, "global_transform_cases.yaml") {
		t.Run(c.Name, func(t *testing.T) {
			list := AttrList(c.Initial)
			require.NoError(t, list.SetGlobalTransformSpec())

			specs := make([]string, 0, len(list))
			for _, a := range list {
				specs = append(specs, a.TransformSpec)
			}
			assert.Equal(t, c.Specs, specs)
		})
	}
}

func TestAttr_Transform(t *testing.T) {
	type transformCase struct {
		Name  string `yaml:"name"`
		Spec  string `yaml:"transformSpec"`
		Input any    `yaml:"input"`
		Want  any    `yaml:"want"`
	}

	for _, c := range load[transformCase](t, "transform_cases.yaml") {
		t.Run(c.Name, func(t *testing.T) {
			a := Attr{TransformSpec: c.Spec}
			assert.Equal(t, c.Want, a.Transform(c.Input))
		})
	}
}

func TestAttrList_String(t *testing.T) {
	type stringCase struct {
		Name string `yaml:"name"`
		List []Attr `yaml:"attrList"`
		Want string `yaml:"want"`
	}

	for _, c := range load[stringCase](t, "string_cases.yaml") {
		t.Run(c.Name, func(t *testing.T) {
			list := AttrList(c.List)
			assert.Equal(t, c.Want, list.String())
		})
	}
}

func TestAttrList_Included(t *testing.T) {
	var list AttrList
	require.NoError(t, list.Set("RNA_ID,!DROP_GROUP,*::u"))

	included := list.Included()
	require.Len(t, included, 1)
	assert.Equal(t, "RNA_ID", included[0].Key)
	assert.Equal(t, "list", list.Type())
}
