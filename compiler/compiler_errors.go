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

package compiler

import (
	"fmt"

	"go.pbt-lang.org/pbt"
	"go.pbt-lang.org/pbt/syntax"
)

var (
	ErrUnknownMessageReference = pbt.ErrUnknownMessageReference
	ErrDuplicateMessageName    = pbt.ErrDuplicateMessageName
	ErrDuplicateFieldName      = pbt.ErrDuplicateFieldName
)

type Error struct {
	code    uint32
	message string
	span    syntax.Span
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

func (err *Error) Span() syntax.Span {
	return err.span
}

func (err *Error) Unwrap() error {
	return err.kind
}

func errUnknownMessageReference(message, field, typeName string, span syntax.Span) *Error {
	return &Error{
		code: 3000,
		message: fmt.Sprintf(
			"Field '%s.%s' has type '%s', which is not a scalar type"+
				" or a message defined in this schema",
			message, field, typeName,
		),
		span: span,
		kind: ErrUnknownMessageReference,
	}
}

func errDuplicateFieldName(message, field string, span syntax.Span) *Error {
	return &Error{
		code:    3001,
		message: fmt.Sprintf("Duplicate field name '%s' in message '%s'", field, message),
		span:    span,
		kind:    ErrDuplicateFieldName,
	}
}

func errDuplicateMessageName(message string, span syntax.Span) *Error {
	return &Error{
		code:    3002,
		message: fmt.Sprintf("Duplicate message name '%s'", message),
		span:    span,
		kind:    ErrDuplicateMessageName,
	}
}
