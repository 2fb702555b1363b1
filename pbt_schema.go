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

package pbt

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	ErrUnknownMessageReference = errors.New("unknown message reference")
	ErrDuplicateMessageName    = errors.New("duplicate message name")
	ErrDuplicateFieldName      = errors.New("duplicate field name")
)

type Message struct {
	name         string
	fields       []Field
	fieldsByName map[string]int
}

// NewMessage builds a message from its fields in declaration order. When
// two fields share a name, the later one is returned by [Message.Field];
// both are kept in [Message.Fields].
func NewMessage(name string, fields []Field) *Message {
	m := &Message{
		name:         name,
		fields:       slices.Clone(fields),
		fieldsByName: make(map[string]int, len(fields)),
	}
	for ii, field := range m.fields {
		m.fieldsByName[field.Name] = ii
	}
	return m
}

func (m *Message) Name() string {
	return m.name
}

func (m *Message) Len() int {
	return len(m.fields)
}

func (m *Message) Fields() []Field {
	return slices.Clone(m.fields)
}

func (m *Message) Iter() iter.Seq2[int, Field] {
	return func(yield func(int, Field) bool) {
		for ii, field := range m.fields {
			if !yield(ii, field) {
				return
			}
		}
	}
}

func (m *Message) Field(name string) (Field, bool) {
	ii, ok := m.fieldsByName[name]
	if !ok {
		return Field{}, false
	}
	return m.fields[ii], true
}

// shadowed reports whether the field at index ii is hidden by a later
// field of the same name.
func (m *Message) shadowed(ii int) bool {
	return m.fieldsByName[m.fields[ii].Name] != ii
}

type Schema struct {
	messages []*Message
	byName   map[string]*Message
}

// NewSchema assembles messages into a schema. Message names must be unique
// and every message reference must name one of the messages.
func NewSchema(messages []*Message) (*Schema, error) {
	s := &Schema{
		messages: slices.Clone(messages),
		byName:   make(map[string]*Message, len(messages)),
	}
	for _, m := range s.messages {
		if _, dup := s.byName[m.name]; dup {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateMessageName, m.name)
		}
		s.byName[m.name] = m
	}
	for _, m := range s.messages {
		for _, field := range m.fields {
			if ref, ok := field.Type.MessageName(); ok {
				if _, found := s.byName[ref]; !found {
					return nil, fmt.Errorf(
						"%w: field '%s.%s' has type '%s'",
						ErrUnknownMessageReference, m.name, field.Name, ref,
					)
				}
			}
		}
	}
	return s, nil
}

func (s *Schema) Len() int {
	return len(s.messages)
}

// Messages returns the schema's messages in source order.
func (s *Schema) Messages() []*Message {
	return slices.Clone(s.messages)
}

func (s *Schema) Message(name string) (*Message, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// Resolve returns the message a field type refers to. It returns false for
// scalar types.
func (s *Schema) Resolve(t FieldType) (*Message, bool) {
	name, ok := t.MessageName()
	if !ok {
		return nil, false
	}
	return s.Message(name)
}

func LookupMessage(schema *Schema, name string) (*Message, bool) {
	return schema.Message(name)
}

func LookupField(message *Message, name string) (Field, bool) {
	return message.Field(name)
}
