// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

// schemaTag is one settings key discovered from a struct's yaml tags.
type schemaTag struct {
	Name string
	Kind string
}

// print renders the tag into its display form.
func (t schemaTag) print() string {
	if t.Kind == "" {
		return t.Name
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.Kind)
}

// maxSchemaDepth limits how far nested structs are walked.
const maxSchemaDepth = 1

// NewTag builds a schemaTag from a yaml struct tag value, prefixing the name
// with holder when set. "-" and empty names yield the zero tag.
func NewTag(holder string, s string) schemaTag {
	name := strings.Split(s, ",")[0]
	if name == "" || name == "-" {
		return schemaTag{}
	}
	if holder != "" {
		name = holder + "." + name
	}
	return schemaTag{Name: name}
}

// DumpSchema writes the sorted settings keys of typ, as declared by its yaml
// tags, to w. If w is nil, os.Stdout is used.
func DumpSchema(prefix string, typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	tags := dumpSchemaWalker(prefix, typ, 0)
	if len(tags) == 0 {
		log.Debugf("no tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	for _, tag := range tags {
		fmt.Fprintln(w, tag.print())
	}
}

// dumpSchemaWalker walks a struct type collecting yaml tags. Nested structs
// are expanded down to maxSchemaDepth.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []schemaTag {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	tags := make([]schemaTag, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("yaml")
		if !ok {
			continue
		}

		tag := NewTag(holder, tagValue)
		if tag.Name == "" {
			continue
		}
		tag.Kind = kindName(field.Type)
		tags = append(tags, tag)

		if depth < maxSchemaDepth && field.Type.Kind() == reflect.Struct {
			tags = append(tags, dumpSchemaWalker(tag.Name, field.Type, depth+1)...)
		}
	}

	return tags
}

func kindName(typ reflect.Type) string {
	switch typ.Kind() {
	case reflect.Map, reflect.Struct:
		return "mapping"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "number"
	default:
		return typ.Kind().String()
	}
}
