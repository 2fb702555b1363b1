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
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"slices"
	"testing"

	"go.pbt-lang.org/pbt/compiler"
	"go.pbt-lang.org/pbt/encoding/pbttext"
	"go.pbt-lang.org/pbt/internal/testutil"
	"go.pbt-lang.org/pbt/syntax"
)

var (
	testdata       fs.FS
	schemaErrors   map[string]*testutil.SchemaError
	schemaWarnings map[string]*testutil.SchemaWarning
)

func init() {
	var err error
	testdata, err = testutil.TestdataFS()
	if err != nil {
		panic(err)
	}
	schemaErrors, err = testutil.LoadSchemaErrors(testdata)
	if err != nil {
		panic(err)
	}
	schemaWarnings, err = testutil.LoadSchemaWarnings(testdata)
	if err != nil {
		panic(err)
	}
}

// diagnostic is implemented by both [*syntax.Error] and [*compiler.Error].
type diagnostic interface {
	Code() uint32
	Message() string
	Span() syntax.Span
}

type testResult struct {
	result   compiler.CompileResult
	errors   []diagnostic
	warnings []*compiler.Warning
}

func schemaTest(t *testing.T, testName string) {
	t.Parallel()

	expectOK := fmt.Sprintf("schema/%s/expect_ok.txt", testName)
	expectErr := fmt.Sprintf("schema/%s/expect_err.json", testName)

	if _, err := fs.Stat(testdata, expectErr); err == nil {
		testExpectErr(t, testName, expectErr)
	} else {
		testExpectOK(t, testName, expectOK)
	}
}

func testExpectOK(t *testing.T, testName string, expectOK string) {
	expectText, err := fs.ReadFile(testdata, expectOK)
	testutil.AssertNoError(t, err)

	var expectWarnings []*testutil.ExpectedWarning
	expectWarnPath := fmt.Sprintf("schema/%s/expect_warn.json", testName)
	if _, err := fs.Stat(testdata, expectWarnPath); err == nil {
		expectWarnings = testutil.LoadExpectedWarnings(
			t, schemaWarnings, testdata, expectWarnPath,
		)
	}

	got := compileTestInputs(t, testName)
	if len(got.errors) > 0 {
		for _, err := range got.errors {
			t.Errorf("unexpected schema error %q (code %d)", err.Message(), err.Code())
		}
		t.FailNow()
	}

	for warn, expectWarn := range zip(got.warnings, expectWarnings) {
		if warn == nil {
			warnName := expectWarn.Message
			if warnName == "" {
				warnName = expectWarn.Key
			}
			t.Errorf(
				"expected schema warning %q (code %d)",
				warnName,
				expectWarn.Code,
			)
			continue
		}
		if expectWarn == nil {
			t.Errorf(
				"unexpected schema warning %q (code %d)",
				warn.Message(),
				warn.Code(),
			)
			continue
		}
		testutil.ExpectEq(t, expectWarn.Code, warn.Code())
		if expectWarn.Pattern != nil {
			testutil.ExpectMatch(t, expectWarn.Pattern, warn.Message())
		} else if expectWarn.Message != "" {
			testutil.ExpectEq(t, expectWarn.Message, warn.Message())
		}
		testutil.ExpectEq(t, expectWarn.Span, warn.Span())
	}

	schema := got.result.Schema()
	testutil.AssertTrue(t, schema != nil)

	gotText := pbttext.Encode(schema)
	testutil.ExpectNoDiff(t, string(expectText), gotText)

	// Canonical text compiles to the same text.
	reparsed, err := compiler.ParseSchema(gotText)
	testutil.AssertNoError(t, err)
	testutil.ExpectNoDiff(t, gotText, pbttext.Encode(reparsed))
}

func testExpectErr(t *testing.T, testName string, expectErrPath string) {
	expectErrors := testutil.LoadExpectedErrors(
		t, schemaErrors, testdata, expectErrPath,
	)
	if len(expectErrors) == 0 {
		t.Fatalf("len(expectErrors) == 0")
	}

	got := compileTestInputs(t, testName)
	testutil.ExpectTrue(t, got.result.Schema() == nil)

	for err, expectErr := range zip(got.errors, expectErrors) {
		if err == nil {
			errName := expectErr.Message
			if errName == "" {
				errName = expectErr.Key
			}
			t.Errorf(
				"expected schema error %q (code %d)",
				errName,
				expectErr.Code,
			)
			continue
		}
		if expectErr == nil {
			t.Errorf(
				"unexpected schema error %q (code %d)",
				err.Message(),
				err.Code(),
			)
			continue
		}
		testutil.ExpectEq(t, expectErr.Code, err.Code())
		if expectErr.Pattern != nil {
			testutil.ExpectMatch(t, expectErr.Pattern, err.Message())
		} else if expectErr.Message != "" {
			testutil.ExpectEq(t, expectErr.Message, err.Message())
		}
		testutil.ExpectEq(t, expectErr.Span, err.Span())
	}
}

func compileTestInputs(t *testing.T, testName string) testResult {
	srcPath := fmt.Sprintf("schema/%s/%s.proto", testName, testName)
	src, err := fs.ReadFile(testdata, srcPath)
	testutil.AssertNoError(t, err)

	var compileOpts []compiler.CompileOption
	optsPath := fmt.Sprintf("schema/%s/compile_options.json", testName)
	if optsData, err := fs.ReadFile(testdata, optsPath); err == nil {
		var rawOpts struct {
			StrictFieldNames bool `json:"strict_field_names"`
		}
		testutil.AssertNoError(t, json.Unmarshal(optsData, &rawOpts))
		if rawOpts.StrictFieldNames {
			compileOpts = append(compileOpts, compiler.WithStrictFieldNames())
		}
	}

	var got testResult
	parsed, err := syntax.Parse(string(src))
	if err != nil {
		var syntaxErr *syntax.Error
		if !errors.As(err, &syntaxErr) {
			t.Fatalf("syntax.Parse: unexpected error type %T", err)
		}
		got.errors = []diagnostic{syntaxErr}
		return got
	}

	got.result = compiler.Compile(parsed, compileOpts...)
	for _, err := range got.result.Errors {
		got.errors = append(got.errors, err)
	}
	got.warnings = got.result.Warnings
	slices.SortStableFunc(got.errors, func(a, b diagnostic) int {
		return cmp.Compare(a.Span().Start(), b.Span().Start())
	})
	return got
}

func TestSchema(t *testing.T) {
	t.Parallel()

	testDirs, err := fs.ReadDir(testdata, "schema")
	testutil.AssertNoError(t, err)

	for _, testDir := range testDirs {
		if testDir.IsDir() {
			testName := testDir.Name()
			t.Run(testName, func(t *testing.T) {
				schemaTest(t, testName)
			})
		}
	}
}

func zip[X any, Y any](xs []X, ys []*Y) iter.Seq2[X, *Y] {
	maxLen := max(len(xs), len(ys))
	return func(yield func(x X, y *Y) bool) {
		for ii := 0; ii < maxLen; ii++ {
			var x X
			var y *Y
			if ii < len(xs) {
				x = xs[ii]
			}
			if ii < len(ys) {
				y = ys[ii]
			}
			if !yield(x, y) {
				return
			}
		}
	}
}
