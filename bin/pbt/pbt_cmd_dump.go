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
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"go.pbt-lang.org/pbt/compiler"
	"go.pbt-lang.org/pbt/encoding/pbtjson"
	"go.pbt-lang.org/pbt/encoding/pbttext"
	"go.pbt-lang.org/pbt/encoding/pbtyaml"
)

type cmdDump struct {
	outPath string
	format  string
	strict  bool
}

func (*cmdDump) help() *commandHelp {
	return &commandHelp{
		usage:   "dump SCHEMA",
		summary: "Print the inferred schema as text, JSON, or YAML",
	}
}

func (cmd *cmdDump) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.outPath, "output", "o", "", "Output file (default: stdout)")
	flags.StringVarP(&cmd.format, "format", "f", "text", "Output format: text, json, or yaml")
	flags.BoolVar(&cmd.strict, "strict", false, "Reject duplicate field names")
}

func (cmd *cmdDump) run(ctx context.Context, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(os.Stderr, "usage: pbt dump [--format=FORMAT] SCHEMA")
		return 1
	}

	switch cmd.format {
	case "text", "json", "yaml":
	default:
		fmt.Fprintf(os.Stderr, "Unsupported output format %q\n", cmd.format)
		return 1
	}

	var opts []compiler.CompileOption
	if cmd.strict {
		opts = append(opts, compiler.WithStrictFieldNames())
	}
	schema := compileFile(os.Stderr, argv[0], opts...)
	if schema == nil {
		return 1
	}

	var output []byte
	var err error
	switch cmd.format {
	case "text":
		output = []byte(pbttext.Encode(schema))
	case "json":
		output, err = pbtjson.EncodeIndent(schema)
		output = append(output, '\n')
	case "yaml":
		output, err = pbtyaml.Encode(schema)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := writeOutput(os.Stdout, cmd.outPath, output); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
