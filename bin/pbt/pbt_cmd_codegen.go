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
	"path/filepath"

	"github.com/spf13/pflag"

	"go.pbt-lang.org/pbt/codegen"
	"go.pbt-lang.org/pbt/compiler"
)

type cmdCodegen struct {
	outDir     string
	language   string
	pluginPath string
	options    map[string]string
	strict     bool
}

func (*cmdCodegen) help() *commandHelp {
	return &commandHelp{
		usage:   "codegen SCHEMA",
		summary: "Generate code from a schema using a WebAssembly plugin",
	}
}

func (cmd *cmdCodegen) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.outDir, "output-dir", "o", "", "Directory for generated files")
	flags.StringVar(&cmd.language, "language", "go", "Target language")
	flags.StringVar(&cmd.pluginPath, "plugin-path", "", fmt.Sprintf(
		"Directories to search for codegen plugins (default: $%s)",
		codegen.PluginPathEnv,
	))
	flags.StringToStringVar(&cmd.options, "option", nil, "Plugin option as KEY=VALUE")
	flags.BoolVar(&cmd.strict, "strict", false, "Reject duplicate field names")
}

func (cmd *cmdCodegen) run(ctx context.Context, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(os.Stderr, "usage: pbt codegen -o DIR [--language=LANG] SCHEMA")
		return 1
	}
	if cmd.outDir == "" {
		fmt.Fprintln(os.Stderr, "Missing required flag --output-dir")
		return 1
	}

	pluginPath, err := codegen.LocatePlugin(cmd.pluginPath, cmd.language)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	pluginBin, err := os.ReadFile(pluginPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var opts []compiler.CompileOption
	if cmd.strict {
		opts = append(opts, compiler.WithStrictFieldNames())
	}
	srcPath := argv[0]
	schema := compileFile(os.Stderr, srcPath, opts...)
	if schema == nil {
		return 1
	}

	req := codegen.NewRequest(schema)
	req.SourcePath = splitPath(filepath.ToSlash(srcPath))
	req.PluginOptions = cmd.options

	host := codegen.NewHost(ctx)
	defer host.Close(ctx)
	resp, err := host.Generate(ctx, pluginBin, cmd.language, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Codegen plugin %s failed: %v\n", pluginPath, err)
		return 1
	}

	for _, file := range resp.OutputFiles {
		outPath, err := codegen.OutputPath(cmd.outDir, file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o777); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := writeOutput(nil, outPath, file.Content); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	return 0
}
