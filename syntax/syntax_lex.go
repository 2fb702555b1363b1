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
	"fmt"
	"strconv"
)

// IsWhitespace reports whether c is a space, tab, newline, or carriage return.
func IsWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// Trim removes leading and trailing whitespace from s.
func Trim(s string) string {
	start, end := trimBounds(s)
	return s[start:end]
}

func trimBounds(s string) (int, int) {
	start := 0
	for start < len(s) && IsWhitespace(s[start]) {
		start += 1
	}
	end := len(s)
	for end > start && IsWhitespace(s[end-1]) {
		end -= 1
	}
	return start, end
}

// ParseInteger parses s as an unsigned base-10 integer, ignoring leading
// and trailing whitespace.
func ParseInteger(s string) (uint64, error) {
	digits := Trim(s)
	if digits == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidInteger)
	}
	for ii := 0; ii < len(digits); ii++ {
		if c := digits[ii]; c < '0' || c > '9' {
			return 0, fmt.Errorf("%w %q: unexpected character %q", ErrInvalidInteger, digits, c)
		}
	}
	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: out of range", ErrInvalidInteger, digits)
	}
	return value, nil
}

func skipWhitespace(src string, off int) int {
	for off < len(src) && IsWhitespace(src[off]) {
		off += 1
	}
	return off
}

type word struct {
	text  string
	start int
}

func (w word) span(base uint32) Span {
	return Span{base + uint32(w.start), uint32(len(w.text))}
}

func splitWords(s string) []word {
	var out []word
	off := 0
	for {
		off = skipWhitespace(s, off)
		if off == len(s) {
			return out
		}
		end := off
		for end < len(s) && !IsWhitespace(s[end]) {
			end += 1
		}
		out = append(out, word{s[off:end], off})
		off = end
	}
}
