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
	"bytes"
	"fmt"
	"strconv"
)

type Span struct {
	start, len uint32
}

func NewSpan(start, len uint32) Span {
	return Span{start, len}
}

func (s Span) Start() uint32 {
	return s.start
}

func (s Span) End() uint32 {
	return s.start + s.len
}

func (s Span) Len() uint32 {
	return s.len
}

func (s Span) String() string {
	return fmt.Sprintf("[%d:%d]", s.start, s.End())
}

// Label is the cardinality keyword that may precede a field's type.
type Label uint8

const (
	LabelNone Label = iota
	LabelOptional
	LabelRepeated
)

var labelKeywords = map[string]Label{
	"optional": LabelOptional,
	"repeated": LabelRepeated,
}

func (l Label) String() string {
	switch l {
	case LabelNone:
		return ""
	case LabelOptional:
		return "optional"
	case LabelRepeated:
		return "repeated"
	default:
		return fmt.Sprintf("Label(%d)", uint8(l))
	}
}

type File struct {
	span     Span
	messages []*Message
}

func (n *File) Span() Span {
	return n.span
}

func (n *File) Messages() []*Message {
	return n.messages
}

type Message struct {
	span     Span
	name     string
	nameSpan Span
	body     string
	bodySpan Span
	fields   []*Field
}

func (n *Message) Span() Span {
	return n.span
}

func (n *Message) Name() string {
	return n.name
}

func (n *Message) NameSpan() Span {
	return n.nameSpan
}

// Body returns the raw text between the message's braces.
func (n *Message) Body() string {
	return n.body
}

func (n *Message) BodySpan() Span {
	return n.bodySpan
}

func (n *Message) Fields() []*Field {
	return n.fields
}

type Field struct {
	span       Span
	label      Label
	typeName   string
	typeSpan   Span
	name       string
	nameSpan   Span
	number     uint64
	numberSpan Span
}

func (n *Field) Span() Span {
	return n.span
}

func (n *Field) Label() Label {
	return n.label
}

func (n *Field) TypeName() string {
	return n.typeName
}

func (n *Field) TypeSpan() Span {
	return n.typeSpan
}

func (n *Field) Name() string {
	return n.name
}

func (n *Field) NameSpan() Span {
	return n.nameSpan
}

func (n *Field) Number() uint64 {
	return n.number
}

func (n *Field) NumberSpan() Span {
	return n.numberSpan
}

// UnparseTo writes the field in canonical form, without a terminator.
func (n *Field) UnparseTo(buf *bytes.Buffer) {
	if n.label != LabelNone {
		buf.WriteString(n.label.String())
		buf.WriteByte(' ')
	}
	buf.WriteString(n.typeName)
	buf.WriteByte(' ')
	buf.WriteString(n.name)
	buf.WriteString(" = ")
	buf.WriteString(strconv.FormatUint(n.number, 10))
}

func Unparse(field *Field) string {
	var buf bytes.Buffer
	field.UnparseTo(&buf)
	return buf.String()
}
