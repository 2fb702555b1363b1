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
	"errors"
	"fmt"
	"math"
)

var (
	ErrSourceTooLong  = errors.New("source too long")
	ErrMalformedField = errors.New("malformed field")
	ErrInvalidInteger = errors.New("invalid integer literal")
)

type Error struct {
	code    uint32
	message string
	span    Span
	kind    error
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Span() Span {
	return err.span
}

// Unwrap returns the error kind, for use with [errors.Is].
func (err *Error) Unwrap() error {
	return err.kind
}

func errSourceTooLong(srcLen, limit int) error {
	lenUint32 := uint32(math.MaxUint32)
	if uint64(srcLen) < math.MaxUint32 {
		lenUint32 = uint32(srcLen)
	}
	return &Error{
		code: 1000,
		message: fmt.Sprintf(
			"Source size (%d bytes) exceeds maximum (%d bytes)",
			srcLen, limit,
		),
		span: Span{0, lenUint32},
		kind: ErrSourceTooLong,
	}
}

func errMalformedField(message string, fragment string, span Span) error {
	return &Error{
		code:    1001,
		message: fmt.Sprintf("Malformed field declaration %q%s", fragment, inMessage(message)),
		span:    span,
		kind:    ErrMalformedField,
	}
}

func errInvalidFieldNumber(message string, token string, span Span) error {
	return &Error{
		code:    1002,
		message: fmt.Sprintf("Invalid field number %q%s", token, inMessage(message)),
		span:    span,
		kind:    ErrMalformedField,
	}
}

func inMessage(message string) string {
	if message == "" {
		return ""
	}
	return fmt.Sprintf(" in message '%s'", message)
}
