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

// Package pbt is the schema model inferred from protobuf-like message
// definitions.
//
// Schemas are built by [go.pbt-lang.org/pbt/compiler.ParseSchema] and are
// immutable once constructed.
package pbt

import (
	"fmt"
)

type Cardinality uint8

const (
	Required Cardinality = iota
	Optional
	Repeated
)

func (c Cardinality) String() string {
	switch c {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	default:
		return fmt.Sprintf("Cardinality(%d)", uint8(c))
	}
}

// ParseCardinality is the inverse of [Cardinality.String].
func ParseCardinality(s string) (Cardinality, bool) {
	switch s {
	case "required":
		return Required, true
	case "optional":
		return Optional, true
	case "repeated":
		return Repeated, true
	}
	return 0, false
}

type ScalarKind uint8

const (
	ScalarString ScalarKind = iota + 1
	ScalarBool
	ScalarBytes
	ScalarFloat
	ScalarDouble
	ScalarInt32
	ScalarInt64
	ScalarUint32
	ScalarUint64
)

var scalarNames = [...]string{
	ScalarString: "string",
	ScalarBool:   "bool",
	ScalarBytes:  "bytes",
	ScalarFloat:  "float",
	ScalarDouble: "double",
	ScalarInt32:  "int32",
	ScalarInt64:  "int64",
	ScalarUint32: "uint32",
	ScalarUint64: "uint64",
}

var scalarTypes = map[string]ScalarKind{
	"string": ScalarString,
	"bool":   ScalarBool,
	"bytes":  ScalarBytes,
	"float":  ScalarFloat,
	"double": ScalarDouble,
	"int32":  ScalarInt32,
	"int64":  ScalarInt64,
	"uint32": ScalarUint32,
	"uint64": ScalarUint64,
}

// LookupScalar maps a type token to a scalar kind. Matching is
// case-sensitive.
func LookupScalar(token string) (ScalarKind, bool) {
	kind, ok := scalarTypes[token]
	return kind, ok
}

func (k ScalarKind) String() string {
	if int(k) < len(scalarNames) && scalarNames[k] != "" {
		return scalarNames[k]
	}
	return fmt.Sprintf("ScalarKind(%d)", uint8(k))
}

// ValueKind is the representation of a scalar value. Every numeric scalar
// shares [ValueNumber].
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueString
	ValueBool
	ValueBytes
	ValueNumber
)

func (k ScalarKind) ValueKind() ValueKind {
	switch k {
	case ScalarString:
		return ValueString
	case ScalarBool:
		return ValueBool
	case ScalarBytes:
		return ValueBytes
	case ScalarFloat, ScalarDouble, ScalarInt32, ScalarInt64, ScalarUint32, ScalarUint64:
		return ValueNumber
	}
	return ValueInvalid
}

func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueBool:
		return "boolean"
	case ValueBytes:
		return "bytes"
	case ValueNumber:
		return "number"
	default:
		return fmt.Sprintf("ValueKind(%d)", uint8(k))
	}
}

// FieldType is either a scalar kind or a reference, by name, to a message
// in the same schema.
type FieldType struct {
	scalar  ScalarKind
	message string
}

func ScalarType(kind ScalarKind) FieldType {
	return FieldType{scalar: kind}
}

func MessageType(name string) FieldType {
	return FieldType{message: name}
}

func (t FieldType) IsScalar() bool {
	return t.message == ""
}

func (t FieldType) Scalar() (ScalarKind, bool) {
	return t.scalar, t.message == ""
}

func (t FieldType) MessageName() (string, bool) {
	return t.message, t.message != ""
}

// String returns the type token as written in schema text.
func (t FieldType) String() string {
	if t.message != "" {
		return t.message
	}
	return t.scalar.String()
}

type Field struct {
	Name        string
	Number      uint64
	Cardinality Cardinality
	Type        FieldType
}

func (f Field) String() string {
	prefix := ""
	if f.Cardinality != Required {
		prefix = f.Cardinality.String() + " "
	}
	return fmt.Sprintf("%s%s %s = %d", prefix, f.Type, f.Name, f.Number)
}
