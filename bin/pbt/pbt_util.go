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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.pbt-lang.org/pbt"
	"go.pbt-lang.org/pbt/compiler"
	"go.pbt-lang.org/pbt/syntax"
)

func splitPath(path string) []string {
	var out []string
	for {
		dir, file := filepath.Split(path)
		if dir == "" {
			out = append(out, file)
			slices.Reverse(out)
			return out
		}
		out = append(out, file)
		path = dir[:len(dir)-1]
	}
}

// compileFile parses and compiles a schema file, writing diagnostics to
// stderr. It returns nil if the schema has errors.
func compileFile(stderr io.Writer, srcPath string, opts ...compiler.CompileOption) *pbt.Schema {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nil
	}
	parsed, err := syntax.Parse(string(src))
	if err != nil {
		var syntaxErr *syntax.Error
		if errors.As(err, &syntaxErr) {
			fmt.Fprintf(stderr, "%s: %v\n", location(srcPath, src, syntaxErr.Span()), err)
		} else {
			fmt.Fprintf(stderr, "%s: %v\n", srcPath, err)
		}
		return nil
	}

	result := compiler.Compile(parsed, opts...)
	for _, warn := range result.Warnings {
		fmt.Fprintf(stderr, "%s: %v\n", location(srcPath, src, warn.Span()), warn)
	}
	if len(result.Errors) > 0 {
		for _, err := range result.Errors {
			fmt.Fprintf(stderr, "%s: %v\n", location(srcPath, src, err.Span()), err)
		}
		return nil
	}
	return result.Schema()
}

// location formats the start of span as path:line:column.
func location(path string, src []byte, span syntax.Span) string {
	line, col := 1, 1
	end := min(int(span.Start()), len(src))
	for _, c := range src[:end] {
		if c == '\n' {
			line += 1
			col = 1
		} else {
			col += 1
		}
	}
	return fmt.Sprintf("%s:%d:%d", path, line, col)
}

func writeOutput(stdout io.Writer, outPath string, output []byte) error {
	if outPath == "" {
		_, err := stdout.Write(output)
		return err
	}

	openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	fp, err := os.OpenFile(outPath, openFlags, 0o666)
	if err != nil {
		return err
	}
	_, writeErr := fp.Write(output)
	closeErr := fp.Close()
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}
