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
	"fmt"
	"path"
	"strings"

	"go.pbt-lang.org/pbt/codegen"
	"go.pbt-lang.org/pbt/internal/gogen"
)

const optionGoPackage = "go_package"

func generate(req *codegen.Request) (*codegen.OutputFile, error) {
	opts := gogen.Options{
		Package: req.PluginOptions[optionGoPackage],
	}
	if len(req.SourcePath) > 0 {
		opts.Source = path.Join(req.SourcePath...)
	}
	if opts.Package == "" {
		opts.Package = packageFromSource(req.SourcePath)
	}

	content, err := gogen.Generate(req.Schema, opts)
	if err != nil {
		return nil, err
	}
	return &codegen.OutputFile{
		Path:    []string{opts.Package + ".pb.go"},
		Content: content,
	}, nil
}

func packageFromSource(sourcePath []string) string {
	if len(sourcePath) < 2 {
		return gogen.DefaultPackage
	}
	dir := sourcePath[len(sourcePath)-2]
	var buf strings.Builder
	for _, c := range strings.ToLower(dir) {
		if (c >= 'a' && c <= 'z') || (buf.Len() > 0 && c >= '0' && c <= '9') {
			buf.WriteRune(c)
		}
	}
	if buf.Len() == 0 {
		return gogen.DefaultPackage
	}
	return buf.String()
}

func errorResponse(format string, a ...any) *codegen.Response {
	return &codegen.Response{Error: fmt.Sprintf(format, a...)}
}
