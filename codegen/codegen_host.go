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

package codegen

import (
	"context"
	"fmt"

	wasm "github.com/tetratelabs/wazero"
)

const (
	pluginAllocate = "pbt_codegen_allocate"
	pluginGenerate = "pbt_codegen_generate/"

	memoryLimitPages = 16384
)

// Host runs codegen plugins compiled to WebAssembly.
//
// A plugin exports `pbt_codegen_allocate(len u32) -> ptr` and, per
// supported language, `pbt_codegen_generate/<language>(request_ptr,
// response_ptr_ptr) -> u8`. The plugin writes the address of an encoded
// [Response] to response_ptr_ptr and returns zero on success.
type Host struct {
	runtime wasm.Runtime
}

func NewHost(ctx context.Context) *Host {
	runtimeConfig := wasm.NewRuntimeConfigInterpreter()
	runtimeConfig = runtimeConfig.WithMemoryLimitPages(memoryLimitPages)
	return &Host{
		runtime: wasm.NewRuntimeWithConfig(ctx, runtimeConfig),
	}
}

func (h *Host) Close(ctx context.Context) error {
	return h.runtime.Close(ctx)
}

// Generate runs the plugin binary for one language. A non-nil Response
// may be returned alongside an error when the plugin reports a failure.
func (h *Host) Generate(
	ctx context.Context,
	pluginBin []byte,
	language string,
	req *Request,
) (*Response, error) {
	requestBuf, err := EncodeRequest(req)
	if err != nil {
		return nil, err
	}

	pluginExe, err := h.runtime.CompileModule(ctx, pluginBin)
	if err != nil {
		return nil, err
	}
	defer pluginExe.Close(ctx)

	moduleConfig := wasm.NewModuleConfig().WithName("")
	plugin, err := h.runtime.InstantiateModule(ctx, pluginExe, moduleConfig)
	if err != nil {
		return nil, err
	}
	defer plugin.Close(ctx)
	mem := plugin.Memory()
	if mem == nil {
		return nil, fmt.Errorf("Plugin does not export memory")
	}

	wasmAlloc := plugin.ExportedFunction(pluginAllocate)
	if wasmAlloc == nil {
		return nil, fmt.Errorf("Plugin does not export %s", pluginAllocate)
	}
	wasmGenerate := plugin.ExportedFunction(pluginGenerate + language)
	if wasmGenerate == nil {
		return nil, fmt.Errorf("Plugin does not support language %q", language)
	}

	results, err := wasmAlloc.Call(ctx, uint64(len(requestBuf)))
	if err != nil {
		return nil, err
	}
	requestPtr := uint32(results[0])
	if !mem.Write(requestPtr, requestBuf) {
		return nil, fmt.Errorf("Failed to write request message")
	}

	results, err = wasmAlloc.Call(ctx, 4)
	if err != nil {
		return nil, err
	}
	responsePtrPtr := uint32(results[0])

	results, err = wasmGenerate.Call(ctx, uint64(requestPtr), uint64(responsePtrPtr))
	if err != nil {
		return nil, err
	}
	rc := uint8(results[0])

	responsePtr, ok := mem.ReadUint32Le(responsePtrPtr)
	if !ok {
		return nil, fmt.Errorf("Failed to read response message pointer")
	}
	responseLen, ok := mem.ReadUint32Le(responsePtr)
	if !ok {
		return nil, fmt.Errorf("Failed to read response message length")
	}
	responseBuf, ok := mem.Read(responsePtr, responseLen)
	if !ok {
		return nil, fmt.Errorf("Failed to read response message")
	}

	resp, err := DecodeResponse(responseBuf)
	if err != nil {
		return nil, err
	}
	if rc != 0 {
		msg := resp.Error
		if msg == "" {
			msg = fmt.Sprintf("exit code %d", rc)
		}
		return resp, fmt.Errorf("Plugin failed: %s", msg)
	}
	return resp, nil
}
