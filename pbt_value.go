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
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
)

var (
	ErrUnknownMessage = errors.New("unknown message")
	ErrMissingField   = errors.New("missing field")
	ErrUnknownField   = errors.New("unknown field")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrCyclicValue    = errors.New("cyclic value")
)

// ValueError reports where a message value does not conform to its schema.
type ValueError struct {
	Path   string
	Detail string
	Err    error
}

func (err *ValueError) Error() string {
	if err.Detail == "" {
		return fmt.Sprintf("%s: %v", err.Path, err.Err)
	}
	return fmt.Sprintf("%s: %v: %s", err.Path, err.Err, err.Detail)
}

func (err *ValueError) Unwrap() error {
	return err.Err
}

// Validate checks that value is an instance of the named message.
//
// Required fields must be present and non-nil. Optional fields may be
// absent or nil. Repeated fields must be present as a slice, which may be
// empty. Keys that do not name a field are rejected. Scalars are checked
// against their value kind: string, bool, []byte, or any Go numeric type
// (including [json.Number]). Message references are checked recursively
// and must be map[string]any. A map that contains itself is rejected with
// [ErrCyclicValue]; the same map may still appear in sibling fields.
func (s *Schema) Validate(messageName string, value map[string]any) error {
	m, ok := s.Message(messageName)
	if !ok {
		return &ValueError{Path: messageName, Err: ErrUnknownMessage}
	}
	v := validator{schema: s, active: make(map[uintptr]struct{})}
	return v.validateMessage(m, value, m.name)
}

type validator struct {
	schema *Schema
	// Maps on the current path from the root value.
	active map[uintptr]struct{}
}

func (v *validator) validateMessage(m *Message, value map[string]any, path string) error {
	if value != nil {
		id := reflect.ValueOf(value).Pointer()
		if _, cyclic := v.active[id]; cyclic {
			return &ValueError{Path: path, Err: ErrCyclicValue}
		}
		v.active[id] = struct{}{}
		defer delete(v.active, id)
	}

	for ii, field := range m.fields {
		if m.shadowed(ii) {
			continue
		}
		fieldPath := path + "." + field.Name
		fieldValue, present := value[field.Name]
		if fieldValue == nil {
			present = false
		}

		switch field.Cardinality {
		case Optional:
			if !present {
				continue
			}
		case Repeated:
			if !present {
				return &ValueError{
					Path:   fieldPath,
					Err:    ErrMissingField,
					Detail: "repeated fields require a (possibly empty) sequence",
				}
			}
			items := reflect.ValueOf(fieldValue)
			if items.Kind() != reflect.Slice && items.Kind() != reflect.Array {
				return &ValueError{
					Path:   fieldPath,
					Err:    ErrTypeMismatch,
					Detail: fmt.Sprintf("expected sequence, got %T", fieldValue),
				}
			}
			for jj := 0; jj < items.Len(); jj++ {
				itemPath := fieldPath + "[" + strconv.Itoa(jj) + "]"
				if err := v.validateValue(field.Type, items.Index(jj).Interface(), itemPath); err != nil {
					return err
				}
			}
			continue
		default:
			if !present {
				return &ValueError{Path: fieldPath, Err: ErrMissingField}
			}
		}

		if err := v.validateValue(field.Type, fieldValue, fieldPath); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(value))
	for key := range value {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if _, ok := m.fieldsByName[key]; !ok {
			return &ValueError{Path: path + "." + key, Err: ErrUnknownField}
		}
	}
	return nil
}

func (v *validator) validateValue(t FieldType, value any, path string) error {
	if ref, ok := t.MessageName(); ok {
		nested, ok := value.(map[string]any)
		if !ok {
			return &ValueError{
				Path:   path,
				Err:    ErrTypeMismatch,
				Detail: fmt.Sprintf("expected message '%s', got %T", ref, value),
			}
		}
		return v.validateMessage(v.schema.byName[ref], nested, path)
	}

	want := t.scalar.ValueKind()
	if valueKindOf(value) != want {
		return &ValueError{
			Path:   path,
			Err:    ErrTypeMismatch,
			Detail: fmt.Sprintf("expected %s, got %T", want, value),
		}
	}
	return nil
}

func valueKindOf(v any) ValueKind {
	switch v.(type) {
	case string:
		return ValueString
	case bool:
		return ValueBool
	case []byte:
		return ValueBytes
	case json.Number:
		return ValueNumber
	case int, int8, int16, int32, int64:
		return ValueNumber
	case uint, uint8, uint16, uint32, uint64:
		return ValueNumber
	case float32, float64:
		return ValueNumber
	}
	return ValueInvalid
}
