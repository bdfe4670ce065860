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

	"github.com/mpctl/mpctl/internal/log"
)

// maxSchemaDepth limits how far nested structs are walked.
const maxSchemaDepth = 1

// DumpSchema writes the sorted attribute names of typ, as named by its json
// tags, to w. Nested structs are listed with a dotted prefix. If w is nil,
// os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	fmt.Fprintln(w, "Attributes available to the --attrs and --sort flags.")
	fmt.Fprintln(w, "")

	names := schemaWalker("", typ, 0)
	if len(names) == 0 {
		log.Debugf("no attributes found for type: %s", typ.Name())
		return
	}

	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

// schemaWalker collects json tag names of typ's exported fields.
func schemaWalker(prefix string, typ reflect.Type, depth int) []string {
	var names []string

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && depth < maxSchemaDepth {
			names = append(names, schemaWalker(name, ft, depth+1)...)
			continue
		}

		names = append(names, name)
	}

	return names
}
