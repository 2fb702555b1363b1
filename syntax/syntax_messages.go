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

import (
	"strings"
)

const messageKeyword = "message"

// RawMessage is one `message <Name> { <Body> }` block found in schema text.
type RawMessage struct {
	Name string
	Body string

	Span     Span
	NameSpan Span
	BodySpan Span
}

// ExtractMessages scans src left to right for message blocks.
//
// A block body ends at the first '}' after its opening '{'. Braces are not
// counted, so a body containing a nested block is truncated at the inner
// closing brace. Candidates whose header is not `message <Name> {` are
// skipped, and text outside of blocks is ignored.
func ExtractMessages(src string) []RawMessage {
	var out []RawMessage
	regionStart := 0
	for {
		raw, next, ok := nextMessage(src, regionStart)
		if !ok {
			return out
		}
		out = append(out, raw)
		regionStart = next
	}
}

func nextMessage(src string, regionStart int) (RawMessage, int, bool) {
	off := regionStart
	for {
		idx := strings.Index(src[off:], messageKeyword)
		if idx < 0 {
			return RawMessage{}, 0, false
		}
		keyword := off + idx
		off = keyword + len(messageKeyword)

		// The start of each scanned region counts as whitespace.
		if keyword > regionStart && !IsWhitespace(src[keyword-1]) {
			continue
		}
		if off == len(src) || !IsWhitespace(src[off]) {
			continue
		}

		nameStart := skipWhitespace(src, off)
		nameEnd := nameStart
		for nameEnd < len(src) && !IsWhitespace(src[nameEnd]) && src[nameEnd] != '{' {
			nameEnd += 1
		}
		if nameEnd == nameStart {
			continue
		}

		open := skipWhitespace(src, nameEnd)
		if open == len(src) || src[open] != '{' {
			continue
		}
		closeIdx := strings.IndexByte(src[open+1:], '}')
		if closeIdx < 0 {
			return RawMessage{}, 0, false
		}
		closeBrace := open + 1 + closeIdx

		return RawMessage{
			Name:     src[nameStart:nameEnd],
			Body:     src[open+1 : closeBrace],
			Span:     spanOf(keyword, closeBrace+1),
			NameSpan: spanOf(nameStart, nameEnd),
			BodySpan: spanOf(open+1, closeBrace),
		}, closeBrace + 1, true
	}
}

func spanOf(start, end int) Span {
	return Span{uint32(start), uint32(end - start)}
}
