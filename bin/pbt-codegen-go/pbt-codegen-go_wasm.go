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

//go:build tinygo

package main

import (
	"math"
	"unsafe"

	"go.pbt-lang.org/pbt/codegen"
)

var buffers = make(map[*uint8][]uint8)

//go:export pbt_codegen_allocate
func pbtCodegenAllocate(len uint32) *uint8 {
	if len > math.MaxInt32 {
		return nil
	}
	buf := make([]uint8, int(len))
	ptr := unsafe.SliceData(buf)
	buffers[ptr] = buf
	return ptr
}

//go:export pbt_codegen_deallocate
func pbtCodegenDeallocate(ptr *uint8) {
	delete(buffers, ptr)
}

//go:export pbt_codegen_generate/go
func pbtCodegenGenerateGo(requestPtr *uint8, responsePtrPtr **uint8) uint8 {
	requestLen, _ := codegen.FrameLen(unsafe.Slice(requestPtr, 4))
	requestBuf := unsafe.Slice(requestPtr, requestLen)

	req, err := codegen.DecodeRequest(requestBuf)
	if err != nil {
		return respond(responsePtrPtr, errorResponse("%v", err), 1)
	}

	output, err := generate(req)
	if err != nil {
		return respond(responsePtrPtr, errorResponse("%v", err), 1)
	}
	return respond(responsePtrPtr, &codegen.Response{
		OutputFiles: []codegen.OutputFile{*output},
	}, 0)
}

func respond(responsePtrPtr **uint8, resp *codegen.Response, rc uint8) uint8 {
	response, err := codegen.EncodeResponse(resp)
	if err != nil {
		response, _ = codegen.EncodeResponse(errorResponse("EncodeResponse: %v", err))
		rc = 1
	}
	responsePtr := unsafe.SliceData(response)
	buffers[responsePtr] = response
	*responsePtrPtr = responsePtr
	return rc
}
