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

// Package pbtjson encodes schemas as JSON descriptors.
package pbtjson

import (
	"encoding/json"
	"fmt"

	"go.pbt-lang.org/pbt"
)

type SchemaDesc struct {
	Messages []MessageDesc `json:"messages"`
}

type MessageDesc struct {
	Name   string      `json:"name"`
	Fields []FieldDesc `json:"fields"`
}

type FieldDesc struct {
	Name        string   `json:"name"`
	Number      uint64   `json:"number"`
	Cardinality string   `json:"cardinality"`
	Type        TypeDesc `json:"type"`
}

// TypeDesc has exactly one of Scalar or Message set.
type TypeDesc struct {
	Scalar  string `json:"scalar,omitempty"`
	Message string `json:"message,omitempty"`
}

func Describe(schema *pbt.Schema) *SchemaDesc {
	desc := &SchemaDesc{
		Messages: make([]MessageDesc, 0, schema.Len()),
	}
	for _, message := range schema.Messages() {
		msgDesc := MessageDesc{
			Name:   message.Name(),
			Fields: make([]FieldDesc, 0, message.Len()),
		}
		for _, field := range message.Iter() {
			fieldDesc := FieldDesc{
				Name:        field.Name,
				Number:      field.Number,
				Cardinality: field.Cardinality.String(),
			}
			if ref, ok := field.Type.MessageName(); ok {
				fieldDesc.Type.Message = ref
			} else {
				fieldDesc.Type.Scalar = field.Type.String()
			}
			msgDesc.Fields = append(msgDesc.Fields, fieldDesc)
		}
		desc.Messages = append(desc.Messages, msgDesc)
	}
	return desc
}

// Schema rebuilds the described schema, checking every message reference.
func (d *SchemaDesc) Schema() (*pbt.Schema, error) {
	messages := make([]*pbt.Message, 0, len(d.Messages))
	for _, msgDesc := range d.Messages {
		fields := make([]pbt.Field, 0, len(msgDesc.Fields))
		for _, fieldDesc := range msgDesc.Fields {
			field, err := fieldDesc.field()
			if err != nil {
				return nil, fmt.Errorf("message '%s': %w", msgDesc.Name, err)
			}
			fields = append(fields, field)
		}
		messages = append(messages, pbt.NewMessage(msgDesc.Name, fields))
	}
	return pbt.NewSchema(messages)
}

func (d FieldDesc) field() (pbt.Field, error) {
	card, ok := pbt.ParseCardinality(d.Cardinality)
	if !ok {
		return pbt.Field{}, fmt.Errorf("field '%s': invalid cardinality %q", d.Name, d.Cardinality)
	}
	field := pbt.Field{
		Name:        d.Name,
		Number:      d.Number,
		Cardinality: card,
	}
	switch {
	case d.Type.Scalar != "" && d.Type.Message != "":
		return pbt.Field{}, fmt.Errorf("field '%s': type has both scalar and message set", d.Name)
	case d.Type.Message != "":
		field.Type = pbt.MessageType(d.Type.Message)
	default:
		kind, ok := pbt.LookupScalar(d.Type.Scalar)
		if !ok {
			return pbt.Field{}, fmt.Errorf("field '%s': invalid scalar type %q", d.Name, d.Type.Scalar)
		}
		field.Type = pbt.ScalarType(kind)
	}
	return field, nil
}

func Encode(schema *pbt.Schema) ([]byte, error) {
	return json.Marshal(Describe(schema))
}

func EncodeIndent(schema *pbt.Schema) ([]byte, error) {
	return json.MarshalIndent(Describe(schema), "", "  ")
}

func Decode(data []byte) (*pbt.Schema, error) {
	var desc SchemaDesc
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, err
	}
	return desc.Schema()
}
