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

package pbtyaml_test

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"go.pbt-lang.org/pbt/compiler"
	"go.pbt-lang.org/pbt/encoding/pbtyaml"
	"go.pbt-lang.org/pbt/internal/testutil"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	schema, err := compiler.ParseSchema(`
message true { optional true next = 1; }
message Person {
  string name = 1;
  repeated uint64 ids = 18446744073709551615;
}
message Empty {}
`)
	testutil.AssertNoError(t, err)

	out, err := pbtyaml.Encode(schema)
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, strings.HasPrefix(string(out), `"true":`))
	testutil.ExpectMatch(t, `(?m)^Empty: \[\]$`, string(out))

	type fieldDoc struct {
		Name        string `yaml:"name"`
		Number      uint64 `yaml:"number"`
		Cardinality string `yaml:"cardinality"`
		Scalar      string `yaml:"scalar"`
		Message     string `yaml:"message"`
	}
	var doc map[string][]fieldDoc
	testutil.AssertNoError(t, yaml.Unmarshal(out, &doc))
	testutil.AssertEq(t, 3, len(doc))

	testutil.ExpectSliceEq(t, []fieldDoc{
		{Name: "next", Number: 1, Cardinality: "optional", Message: "true"},
	}, doc["true"])
	testutil.ExpectSliceEq(t, []fieldDoc{
		{Name: "name", Number: 1, Cardinality: "required", Scalar: "string"},
		{Name: "ids", Number: 18446744073709551615, Cardinality: "repeated", Scalar: "uint64"},
	}, doc["Person"])
	testutil.ExpectEq(t, 0, len(doc["Empty"]))
}

func TestEncodeEmpty(t *testing.T) {
	t.Parallel()

	schema, err := compiler.ParseSchema("")
	testutil.AssertNoError(t, err)

	out, err := pbtyaml.Encode(schema)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "{}\n", string(out))
}

func TestNodeOrder(t *testing.T) {
	t.Parallel()

	schema, err := compiler.ParseSchema("message B {} message A {} message C {}")
	testutil.AssertNoError(t, err)

	root := pbtyaml.Node(schema)
	var keys []string
	for ii := 0; ii < len(root.Content); ii += 2 {
		keys = append(keys, root.Content[ii].Value)
	}
	testutil.ExpectSliceEq(t, []string{"B", "A", "C"}, keys)
}
