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

package main

import (
	"testing"

	"go.pbt-lang.org/pbt/codegen"
	"go.pbt-lang.org/pbt/compiler"
	"go.pbt-lang.org/pbt/internal/testutil"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	schema, err := compiler.ParseSchema("message P { string name = 1; }")
	testutil.AssertNoError(t, err)

	req := codegen.NewRequest(schema)
	req.SourcePath = []string{"schemas", "Contacts2", "p.proto"}
	out, err := generate(req)
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{"contacts2.pb.go"}, out.Path)
	testutil.ExpectMatch(t, `(?m)^package contacts2$`, string(out.Content))
	testutil.ExpectMatch(t, `(?m)^// source: schemas/Contacts2/p\.proto$`, string(out.Content))

	req.PluginOptions = map[string]string{optionGoPackage: "people"}
	out, err = generate(req)
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{"people.pb.go"}, out.Path)

	req.PluginOptions = map[string]string{optionGoPackage: "not-valid"}
	_, err = generate(req)
	testutil.ExpectTrue(t, err != nil)
}

func TestPackageFromSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, "pbt"},
		{[]string{"p.proto"}, "pbt"},
		{[]string{"api", "p.proto"}, "api"},
		{[]string{"My_API-v2", "p.proto"}, "myapiv2"},
		{[]string{"2024", "p.proto"}, "pbt"},
	}
	for _, test := range tests {
		testutil.ExpectEq(t, test.want, packageFromSource(test.path))
	}
}

func TestSplitPath(t *testing.T) {
	t.Parallel()

	testutil.ExpectSliceEq(t, []string{"a", "b", "c.proto"}, splitPath("a/b/c.proto"))
	testutil.ExpectSliceEq(t, []string{"c.proto"}, splitPath("c.proto"))
}
