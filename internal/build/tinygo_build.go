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

// Command build compiles a codegen plugin to WebAssembly with TinyGo.
//
//	go run ./internal/build -o plugins/ go
//
// The plugin is written as plugins/pbt-codegen-go.wasm, ready to be found
// through $PBT_CODEGEN_PLUGIN_PATH.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.pbt-lang.org/pbt/codegen"
)

var (
	outDir = flag.String("o", ".", "Output directory")
	tinygo = flag.String("tinygo", "tinygo", "Path to the tinygo binary")
	target = flag.String("target", "wasm-unknown", "TinyGo build target")
	opt    = flag.String("opt", "z", "TinyGo optimization level")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-o DIR] LANGUAGE\n", os.Args[0])
		os.Exit(1)
	}
	language := flag.Arg(0)

	pkgDir := filepath.Join("bin", "pbt-codegen-"+language)
	if info, err := os.Stat(pkgDir); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "No codegen plugin source for language %q at %s\n", language, pkgDir)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o777); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	output, err := filepath.Abs(filepath.Join(*outDir, codegen.PluginBasename(language)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	tinygoArgs := []string{
		"build",
		"-o=" + output,
		"-target=" + *target,
		"-opt=" + *opt,
		"-no-debug",
		"./" + filepath.ToSlash(pkgDir),
	}

	cmd := exec.Command(*tinygo, tinygoArgs...)
	cmd.Env = append(os.Environ(), "HOME="+filepath.Join(os.TempDir(), "tinygo-home"))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
