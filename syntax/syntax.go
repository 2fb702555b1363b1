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

package syntax

const (
	maxSrcLen = 0x7FFFFFFF // (2**31)-1
)

type ParseOption interface {
	apply(*ParseOptions)
}

type parseOption func(*ParseOptions)

func (f parseOption) apply(opts *ParseOptions) { f(opts) }

// WithMaxSourceLen lowers the maximum accepted source size. Values outside
// (0, 2**31-1] are ignored.
func WithMaxSourceLen(maxLen int) ParseOption {
	return parseOption(func(opts *ParseOptions) {
		if maxLen > 0 && maxLen <= maxSrcLen {
			opts.maxSrcLen = maxLen
		}
	})
}

func Parse(src string, opts ...ParseOption) (*File, error) {
	return NewParseOptions(opts...).ParseFile(src)
}

type ParseOptions struct {
	maxSrcLen int
}

func NewParseOptions(opts ...ParseOption) *ParseOptions {
	parseOptions := &ParseOptions{
		maxSrcLen: maxSrcLen,
	}
	for _, opt := range opts {
		opt.apply(parseOptions)
	}
	return parseOptions
}

func (opts *ParseOptions) ParseFile(src string) (*File, error) {
	if len(src) > opts.maxSrcLen {
		return nil, errSourceTooLong(len(src), opts.maxSrcLen)
	}
	file := &File{
		span: Span{0, uint32(len(src))},
	}
	for _, raw := range ExtractMessages(src) {
		message, err := parseMessage(raw)
		if err != nil {
			return nil, err
		}
		file.messages = append(file.messages, message)
	}
	return file, nil
}

// ParseField parses a single field declaration without its terminator.
// Spans in the result are relative to src.
func (opts *ParseOptions) ParseField(src string) (*Field, error) {
	if len(src) > opts.maxSrcLen {
		return nil, errSourceTooLong(len(src), opts.maxSrcLen)
	}
	start, end := trimBounds(src)
	return parseField("", src[start:end], uint32(start))
}

func parseMessage(raw RawMessage) (*Message, error) {
	message := &Message{
		span:     raw.Span,
		name:     raw.Name,
		nameSpan: raw.NameSpan,
		body:     raw.Body,
		bodySpan: raw.BodySpan,
	}
	for _, frag := range splitFields(raw.Body, raw.BodySpan.start) {
		field, err := parseField(raw.Name, frag.text, frag.start)
		if err != nil {
			return nil, err
		}
		message.fields = append(message.fields, field)
	}
	return message, nil
}
