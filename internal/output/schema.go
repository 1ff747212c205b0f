// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/apex/log"
)

// Tag is a field discovered from a struct's json tags, as listed by --schema.
type Tag struct {
	Name string
	Kind string
}

// NewTag builds a Tag from a json struct tag. Fields tagged "-" or not tagged
// at all produce a zero Tag.
func NewTag(s string, kind reflect.Kind) Tag {
	name, _, _ := strings.Cut(s, ",")
	if name == "" || name == "-" {
		return Tag{}
	}
	return Tag{Name: name, Kind: kind.String()}
}

// DumpSchema writes the attribute names of typ, in declaration order, for use
// with --attrs, --filter and --sort.
func DumpSchema(w io.Writer, typ reflect.Type) {
	tags := DumpSchemaWalker(typ)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	fmt.Fprintln(w, "Schema for", typ.Name(), "--")
	for _, tag := range tags {
		fmt.Fprintf(w, "%-10s %s\n", tag.Name, tag.Kind)
	}
}

// DumpSchemaWalker collects the json-tagged fields of a struct type.
func DumpSchemaWalker(typ reflect.Type) []Tag {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	tags := make([]Tag, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tagValue, ok := field.Tag.Lookup("json")
		if !ok || !field.IsExported() {
			continue
		}
		if tag := NewTag(tagValue, field.Type.Kind()); tag.Name != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
