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

package compiler_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.pbt-lang.org/pbt"
	"go.pbt-lang.org/pbt/compiler"
	"go.pbt-lang.org/pbt/internal/testutil"
	"go.pbt-lang.org/pbt/syntax"
)

var schemaCmpOpts = cmp.AllowUnexported(pbt.Schema{}, pbt.Message{}, pbt.FieldType{})

func TestParseSchemaSingleMessage(t *testing.T) {
	t.Parallel()

	schema, err := compiler.ParseSchema("message P { string name = 1; }")
	testutil.AssertNoError(t, err)
	testutil.AssertEq(t, 1, schema.Len())

	message, ok := pbt.LookupMessage(schema, "P")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, "P", message.Name())
	testutil.AssertEq(t, 1, message.Len())

	field, ok := pbt.LookupField(message, "name")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, pbt.Field{
		Name:        "name",
		Number:      1,
		Cardinality: pbt.Required,
		Type:        pbt.ScalarType(pbt.ScalarString),
	}, field)
}

func TestParseSchemaForwardReference(t *testing.T) {
	t.Parallel()

	schema, err := compiler.ParseSchema(`
message Person {
  string name = 1;
  optional int32 age = 2;
  repeated string email = 3;
  Group group = 4;
}
message Group {
  string title = 1;
  repeated Person members = 2;
}`)
	testutil.AssertNoError(t, err)

	person, ok := pbt.LookupMessage(schema, "Person")
	testutil.AssertTrue(t, ok)
	group, ok := pbt.LookupField(person, "group")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, pbt.MessageType("Group"), group.Type)
	testutil.ExpectEq(t, pbt.Required, group.Cardinality)

	resolved, ok := schema.Resolve(group.Type)
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, "Group", resolved.Name())

	members, ok := pbt.LookupField(resolved, "members")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, pbt.MessageType("Person"), members.Type)
	testutil.ExpectEq(t, pbt.Repeated, members.Cardinality)

	age, ok := pbt.LookupField(person, "age")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, pbt.Optional, age.Cardinality)
	testutil.ExpectEq(t, "optional int32 age = 2", age.String())

	_, ok = schema.Resolve(age.Type)
	testutil.ExpectFalse(t, ok)
}

func TestParseSchemaMutualReferences(t *testing.T) {
	t.Parallel()

	schema, err := compiler.ParseSchema(`
message A { optional B b = 1; }
message B { optional A a = 1; }
`)
	testutil.AssertNoError(t, err)
	for _, name := range []string{"A", "B"} {
		_, ok := pbt.LookupMessage(schema, name)
		testutil.ExpectTrue(t, ok)
	}
}

func TestParseSchemaMalformedField(t *testing.T) {
	t.Parallel()

	_, err := compiler.ParseSchema("message P { string = 1; }")
	testutil.AssertError(t, err)
	testutil.ExpectTrue(t, errors.Is(err, syntax.ErrMalformedField))

	var syntaxErr *syntax.Error
	testutil.AssertTrue(t, errors.As(err, &syntaxErr))
	testutil.ExpectEq(t, uint32(1001), syntaxErr.Code())
	testutil.ExpectEq(t, syntax.NewSpan(12, 10), syntaxErr.Span())
}

func TestParseSchemaUnknownReference(t *testing.T) {
	t.Parallel()

	_, err := compiler.ParseSchema("message P { Unknown ref = 1; }")
	testutil.AssertError(t, err)
	testutil.ExpectTrue(t, errors.Is(err, compiler.ErrUnknownMessageReference))
	testutil.ExpectTrue(t, errors.Is(err, pbt.ErrUnknownMessageReference))
	testutil.ExpectMatch(t, `Field 'P\.ref' has type 'Unknown'`, err.Error())
}

func TestParseSchemaEmpty(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "   \n\t", "no messages here", "message", "message {}"} {
		t.Run(fmt.Sprintf("%q", text), func(t *testing.T) {
			schema, err := compiler.ParseSchema(text)
			testutil.AssertNoError(t, err)
			testutil.ExpectEq(t, 0, schema.Len())
			testutil.ExpectEq(t, 0, len(schema.Messages()))
		})
	}
}

func TestParseSchemaWhitespaceBody(t *testing.T) {
	t.Parallel()

	schema, err := compiler.ParseSchema("message E {  \n\t }")
	testutil.AssertNoError(t, err)
	message, ok := pbt.LookupMessage(schema, "E")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, 0, message.Len())
}

func TestParseSchemaSourceOrder(t *testing.T) {
	t.Parallel()

	const count = 50
	var buf strings.Builder
	for ii := count - 1; ii >= 0; ii-- {
		fmt.Fprintf(&buf, "message M%02d { uint32 id = %d; }\n", ii, ii)
	}

	schema, err := compiler.ParseSchema(buf.String())
	testutil.AssertNoError(t, err)
	testutil.AssertEq(t, count, schema.Len())
	for ii, message := range schema.Messages() {
		testutil.ExpectEq(t, fmt.Sprintf("M%02d", count-1-ii), message.Name())
	}
}

func TestParseSchemaIdempotent(t *testing.T) {
	t.Parallel()

	const text = `
message Node {
  optional Node parent = 1;
  repeated Node children = 2;
  bytes payload = 3;
  string tag = 4;
  int64 tag = 5;
}`
	first, err := compiler.ParseSchema(text)
	testutil.AssertNoError(t, err)
	second, err := compiler.ParseSchema(text)
	testutil.AssertNoError(t, err)
	testutil.ExpectDeepEq(t, first, second, schemaCmpOpts)
}

func TestParseSchemaDuplicateFieldName(t *testing.T) {
	t.Parallel()

	const text = "message M { string note = 1; int32 note = 2; }"

	schema, err := compiler.ParseSchema(text)
	testutil.AssertNoError(t, err)
	message, _ := pbt.LookupMessage(schema, "M")
	testutil.ExpectEq(t, 2, message.Len())
	note, ok := pbt.LookupField(message, "note")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, uint64(2), note.Number)
	testutil.ExpectEq(t, pbt.ScalarType(pbt.ScalarInt32), note.Type)

	_, err = compiler.ParseSchema(text, compiler.WithStrictFieldNames())
	testutil.AssertError(t, err)
	testutil.ExpectTrue(t, errors.Is(err, compiler.ErrDuplicateFieldName))
}

func TestCompileWarnings(t *testing.T) {
	t.Parallel()

	parsed, err := syntax.Parse("message M { string note = 1; int32 note = 2; }")
	testutil.AssertNoError(t, err)

	result := compiler.Compile(parsed)
	testutil.AssertNoError(t, result.Err())
	testutil.AssertTrue(t, result.Schema() != nil)
	testutil.AssertEq(t, 1, len(result.Warnings))

	warn := result.Warnings[0]
	testutil.ExpectEq(t, uint32(4000), warn.Code())
	testutil.ExpectEq(t, syntax.NewSpan(19, 4), warn.Span())
	testutil.ExpectMatch(t, `^W4000: Field 'note' in message 'M'`, warn.String())
}

func TestCompileDuplicateMessageName(t *testing.T) {
	t.Parallel()

	parsed, err := syntax.Parse("message A { string x = 1; } message A { string y = 1; }")
	testutil.AssertNoError(t, err)

	result := compiler.Compile(parsed)
	testutil.ExpectTrue(t, result.Schema() == nil)
	testutil.AssertEq(t, 1, len(result.Errors))
	testutil.ExpectEq(t, uint32(3002), result.Errors[0].Code())
	testutil.ExpectTrue(t, errors.Is(result.Err(), compiler.ErrDuplicateMessageName))
}

func TestCompileReportsAllErrors(t *testing.T) {
	t.Parallel()

	parsed, err := syntax.Parse(`
message A { X x = 1; }
message B { Y y = 1; Z z = 2; }
`)
	testutil.AssertNoError(t, err)

	result := compiler.Compile(parsed)
	testutil.AssertEq(t, 3, len(result.Errors))
	for ii, want := range []string{"X", "Y", "Z"} {
		testutil.ExpectMatch(t, fmt.Sprintf("has type '%s'", want), result.Errors[ii].Message())
	}
}

func TestParseSchemaMaxSourceLen(t *testing.T) {
	t.Parallel()

	_, err := compiler.ParseSchema(
		"message P { string name = 1; }",
		compiler.WithParseOptions(syntax.WithMaxSourceLen(8)),
	)
	testutil.AssertError(t, err)
	testutil.ExpectTrue(t, errors.Is(err, syntax.ErrSourceTooLong))
}

func TestParseSchemaScalarCardinalities(t *testing.T) {
	t.Parallel()

	schema, err := compiler.ParseSchema(
		"message P { string name = 1; int32 id = 2; optional string note = 3; }",
	)
	testutil.AssertNoError(t, err)
	testutil.AssertEq(t, 1, schema.Len())

	message, ok := pbt.LookupMessage(schema, "P")
	testutil.AssertTrue(t, ok)
	testutil.AssertEq(t, 3, message.Len())

	tests := []struct {
		name        string
		cardinality pbt.Cardinality
		scalar      pbt.ScalarKind
		valueKind   pbt.ValueKind
	}{
		{"name", pbt.Required, pbt.ScalarString, pbt.ValueString},
		{"id", pbt.Required, pbt.ScalarInt32, pbt.ValueNumber},
		{"note", pbt.Optional, pbt.ScalarString, pbt.ValueString},
	}
	for _, test := range tests {
		field, ok := pbt.LookupField(message, test.name)
		testutil.AssertTrue(t, ok)
		testutil.ExpectEq(t, test.cardinality, field.Cardinality)
		kind, isScalar := field.Type.Scalar()
		testutil.AssertTrue(t, isScalar)
		testutil.ExpectEq(t, test.scalar, kind)
		testutil.ExpectEq(t, test.valueKind, kind.ValueKind())
	}
}

func TestParseSchemaRepeatedForwardReference(t *testing.T) {
	t.Parallel()

	schema, err := compiler.ParseSchema(
		"message Group { string name = 1; repeated Person people = 2; }" +
			" message Person { string name = 1; }",
	)
	testutil.AssertNoError(t, err)
	testutil.AssertEq(t, 2, schema.Len())

	group, ok := pbt.LookupMessage(schema, "Group")
	testutil.AssertTrue(t, ok)

	name, ok := pbt.LookupField(group, "name")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, pbt.Required, name.Cardinality)
	testutil.ExpectEq(t, pbt.ScalarType(pbt.ScalarString), name.Type)

	people, ok := pbt.LookupField(group, "people")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, pbt.Repeated, people.Cardinality)
	ref, isRef := people.Type.MessageName()
	testutil.AssertTrue(t, isRef)
	testutil.ExpectEq(t, "Person", ref)

	person, ok := schema.Resolve(people.Type)
	testutil.AssertTrue(t, ok)
	personName, ok := pbt.LookupField(person, "name")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, pbt.Required, personName.Cardinality)
	testutil.ExpectEq(t, pbt.ScalarType(pbt.ScalarString), personName.Type)
}
