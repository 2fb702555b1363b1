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

// Package codegen defines the protocol between the pbt tool and code
// generation plugins.
//
// Requests and responses are framed as a little-endian uint32 holding the
// total frame length (including the four length bytes), followed by a
// JSON document.
package codegen

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"go.pbt-lang.org/pbt"
	"go.pbt-lang.org/pbt/encoding/pbtjson"
)

const frameHeaderLen = 4

type Request struct {
	Schema        *pbtjson.SchemaDesc `json:"schema"`
	SourcePath    []string            `json:"source_path,omitempty"`
	PluginOptions map[string]string   `json:"plugin_options,omitempty"`
}

func NewRequest(schema *pbt.Schema) *Request {
	return &Request{
		Schema: pbtjson.Describe(schema),
	}
}

type Response struct {
	Error       string       `json:"error,omitempty"`
	OutputFiles []OutputFile `json:"output_files,omitempty"`
}

type OutputFile struct {
	Path    []string `json:"path"`
	Content []byte   `json:"content"`
}

func EncodeRequest(req *Request) ([]byte, error) {
	return encodeFrame(req)
}

func DecodeRequest(buf []byte) (*Request, error) {
	var req Request
	if err := decodeFrame(buf, &req); err != nil {
		return nil, fmt.Errorf("DecodeRequest: %w", err)
	}
	if req.Schema == nil {
		return nil, fmt.Errorf("DecodeRequest: missing schema")
	}
	return &req, nil
}

func EncodeResponse(resp *Response) ([]byte, error) {
	return encodeFrame(resp)
}

func DecodeResponse(buf []byte) (*Response, error) {
	var resp Response
	if err := decodeFrame(buf, &resp); err != nil {
		return nil, fmt.Errorf("DecodeResponse: %w", err)
	}
	return &resp, nil
}

// FrameLen reads the total frame length from the start of buf.
func FrameLen(buf []byte) (uint32, bool) {
	if len(buf) < frameHeaderLen {
		return 0, false
	}
	return binary.LittleEndian.Uint32(buf), true
}

func encodeFrame(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if uint64(len(body)) > math.MaxUint32-frameHeaderLen {
		return nil, fmt.Errorf("frame too large (%d bytes)", len(body))
	}
	buf := make([]byte, frameHeaderLen, frameHeaderLen+len(body))
	binary.LittleEndian.PutUint32(buf, uint32(frameHeaderLen+len(body)))
	return append(buf, body...), nil
}

func decodeFrame(buf []byte, v any) error {
	frameLen, ok := FrameLen(buf)
	if !ok {
		return fmt.Errorf("truncated frame header (%d bytes)", len(buf))
	}
	if frameLen < frameHeaderLen || uint64(frameLen) > uint64(len(buf)) {
		return fmt.Errorf("invalid frame length %d (buffer is %d bytes)", frameLen, len(buf))
	}
	return json.Unmarshal(buf[frameHeaderLen:frameLen], v)
}
