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
	"flag"
	"log"
	"os"
	"path/filepath"
	"slices"

	"go.pbt-lang.org/pbt/codegen"
	"go.pbt-lang.org/pbt/compiler"
)

var goPackage = flag.String("package", "", "Go package name of the generated file")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		log.Fatalf("usage: %s [-package NAME] SCHEMA", os.Args[0])
	}
	schemaPath := args[0]

	src, err := os.ReadFile(schemaPath)
	if err != nil {
		log.Fatalf("ReadFile(%q): %v", schemaPath, err)
	}

	parsed, err := compiler.ParseSchema(string(src))
	if err != nil {
		log.Fatalf("ParseSchema(%q): %v", schemaPath, err)
	}

	req := codegen.NewRequest(parsed)
	if !filepath.IsAbs(schemaPath) {
		req.SourcePath = splitPath(schemaPath)
	}
	if *goPackage != "" {
		req.PluginOptions = map[string]string{optionGoPackage: *goPackage}
	}

	output, err := generate(req)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stdout.Write(output.Content); err != nil {
		log.Fatal(err)
	}
}

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
