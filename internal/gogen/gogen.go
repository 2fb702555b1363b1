// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

// Package gogen generates Go type declarations from schema descriptors.
package gogen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"unicode"

	"go.pbt-lang.org/pbt/encoding/pbtjson"
)

const DefaultPackage = "pbt"

type Options struct {
	// Package is the Go package name of the generated file.
	Package string
	// Source is recorded in the generated file header if set.
	Source string
}

var goScalarTypes = map[string]string{
	"string": "string",
	"bool":   "bool",
	"bytes":  "[]byte",
	"float":  "float32",
	"double": "float64",
	"int32":  "int32",
	"int64":  "int64",
	"uint32": "uint32",
	"uint64": "uint64",
}

// Generate emits one struct per message.
//
// Required fields are held by value, optional fields by pointer (bytes as a
// nil-able slice) and repeated fields as slices. Message references are
// always pointers, so messages may refer to each other. When a message
// declares a field name more than once only the last declaration is
// emitted.
func Generate(schema *pbtjson.SchemaDesc, opts Options) ([]byte, error) {
	g := &generator{opts: opts}
	if g.opts.Package == "" {
		g.opts.Package = DefaultPackage
	}
	if !isIdent(g.opts.Package) {
		return nil, fmt.Errorf("invalid Go package name %q", g.opts.Package)
	}
	if err := checkTypeNames(schema); err != nil {
		return nil, err
	}
	g.emitHeader()
	for _, message := range schema.Messages {
		if err := g.emitMessage(message); err != nil {
			return nil, err
		}
	}
	out, err := format.Source(g.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return out, nil
}

type generator struct {
	opts Options
	buf  bytes.Buffer
}

func (g *generator) linef(format string, a ...any) {
	fmt.Fprintf(&g.buf, format, a...)
	g.buf.WriteByte('\n')
}

func (g *generator) emitHeader() {
	g.linef("// Code generated by pbt-codegen-go. DO NOT EDIT.")
	if g.opts.Source != "" {
		g.linef("// source: %s", g.opts.Source)
	}
	g.linef("")
	g.linef("package %s", g.opts.Package)
}

func (g *generator) emitMessage(message pbtjson.MessageDesc) error {
	typeName := exportedName(message.Name)
	if typeName == "" {
		return fmt.Errorf("message %q has no valid Go name", message.Name)
	}

	last := make(map[string]int, len(message.Fields))
	for ii, field := range message.Fields {
		last[field.Name] = ii
	}

	g.linef("")
	g.linef("type %s struct {", typeName)
	emitted := make(map[string]string, len(message.Fields))
	for ii, field := range message.Fields {
		if last[field.Name] != ii {
			continue
		}
		fieldName := exportedName(field.Name)
		if fieldName == "" {
			return fmt.Errorf("field '%s.%s' has no valid Go name", message.Name, field.Name)
		}
		if prev, dup := emitted[fieldName]; dup {
			return fmt.Errorf(
				"fields '%s.%s' and '%s.%s' have the same Go name %s",
				message.Name, prev, message.Name, field.Name, fieldName,
			)
		}
		emitted[fieldName] = field.Name
		goType, err := fieldGoType(field)
		if err != nil {
			return fmt.Errorf("field '%s.%s': %w", message.Name, field.Name, err)
		}
		jsonTag := field.Name
		if field.Cardinality == "optional" {
			jsonTag += ",omitempty"
		}
		g.linef("\t%s %s `json:\"%s\" pbt:\"%d\"`", fieldName, goType, jsonTag, field.Number)
	}
	g.linef("}")
	return nil
}

// checkTypeNames rejects messages whose Go type names collide.
func checkTypeNames(schema *pbtjson.SchemaDesc) error {
	emitted := make(map[string]string, len(schema.Messages))
	for _, message := range schema.Messages {
		typeName := exportedName(message.Name)
		if typeName == "" {
			continue
		}
		if prev, dup := emitted[typeName]; dup {
			return fmt.Errorf(
				"messages '%s' and '%s' have the same Go name %s",
				prev, message.Name, typeName,
			)
		}
		emitted[typeName] = message.Name
	}
	return nil
}

func fieldGoType(field pbtjson.FieldDesc) (string, error) {
	var elem string
	isRef := field.Type.Message != ""
	if isRef {
		elem = exportedName(field.Type.Message)
		if elem == "" {
			return "", fmt.Errorf("message %q has no valid Go name", field.Type.Message)
		}
		elem = "*" + elem
	} else {
		goType, ok := goScalarTypes[field.Type.Scalar]
		if !ok {
			return "", fmt.Errorf("unknown scalar type %q", field.Type.Scalar)
		}
		elem = goType
	}

	switch field.Cardinality {
	case "required":
		return elem, nil
	case "optional":
		if isRef || field.Type.Scalar == "bytes" {
			return elem, nil
		}
		return "*" + elem, nil
	case "repeated":
		return "[]" + elem, nil
	}
	return "", fmt.Errorf("unknown cardinality %q", field.Cardinality)
}

// exportedName converts snake_case and camelCase identifiers to exported
// Go names. Characters that cannot appear in a Go identifier are dropped.
func exportedName(name string) string {
	var buf strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '-' || r == '.' {
			upper = true
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		if buf.Len() == 0 && unicode.IsDigit(r) {
			buf.WriteByte('X')
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		buf.WriteRune(r)
	}
	return buf.String()
}

func isIdent(s string) bool {
	for ii, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if ii > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return s != ""
}
