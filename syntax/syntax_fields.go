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

type fragment struct {
	text  string
	start uint32
}

// SplitFields splits a message body into field declarations on ';'.
// Fragments are trimmed, and empty fragments are dropped.
func SplitFields(body string) []string {
	frags := splitFields(body, 0)
	out := make([]string, 0, len(frags))
	for _, frag := range frags {
		out = append(out, frag.text)
	}
	return out
}

func splitFields(body string, base uint32) []fragment {
	var out []fragment
	start := 0
	for {
		end := strings.IndexByte(body[start:], ';')
		if end < 0 {
			end = len(body)
		} else {
			end += start
		}
		lo, hi := trimBounds(body[start:end])
		if lo < hi {
			out = append(out, fragment{
				text:  body[start+lo : start+hi],
				start: base + uint32(start+lo),
			})
		}
		if end == len(body) {
			return out
		}
		start = end + 1
	}
}

// ParseField parses one trimmed field declaration.
//
// Accepted forms are `<label> <type> <name> = <number>`, where label is
// "optional" or "repeated", and `<type> <name> = <number>`. The '=' may be
// written with or without surrounding whitespace.
func ParseField(src string) (*Field, error) {
	return NewParseOptions().ParseField(src)
}

func parseField(message string, text string, base uint32) (*Field, error) {
	span := Span{base, uint32(len(text))}

	eq := strings.IndexByte(text, '=')
	if eq < 0 {
		return nil, errMalformedField(message, text, span)
	}

	field := &Field{span: span}
	words := splitWords(text[:eq])
	switch len(words) {
	case 2:
		field.label = LabelNone
	case 3:
		label, ok := labelKeywords[words[0].text]
		if !ok {
			return nil, errMalformedField(message, text, span)
		}
		field.label = label
		words = words[1:]
	default:
		return nil, errMalformedField(message, text, span)
	}
	field.typeName = words[0].text
	field.typeSpan = words[0].span(base)
	field.name = words[1].text
	field.nameSpan = words[1].span(base)

	numStart, numEnd := trimBounds(text[eq+1:])
	numStart += eq + 1
	numEnd += eq + 1
	numSpan := Span{base + uint32(numStart), uint32(numEnd - numStart)}
	if numStart == numEnd {
		return nil, errMalformedField(message, text, span)
	}
	number, err := ParseInteger(text[numStart:numEnd])
	if err != nil {
		return nil, errInvalidFieldNumber(message, text[numStart:numEnd], numSpan)
	}
	field.number = number
	field.numberSpan = numSpan
	return field, nil
}
