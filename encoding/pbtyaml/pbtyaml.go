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

// Package pbtyaml renders schemas as YAML, keyed by message name in source
// order.
package pbtyaml

import (
	"bytes"
	"strconv"

	"gopkg.in/yaml.v3"

	"go.pbt-lang.org/pbt"
)

func Encode(schema *pbt.Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Node(schema)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Node returns the schema as a YAML mapping node.
func Node(schema *pbt.Schema) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, message := range schema.Messages() {
		fields := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if message.Len() == 0 {
			fields.Style = yaml.FlowStyle
		}
		for _, field := range message.Iter() {
			fields.Content = append(fields.Content, fieldNode(field))
		}
		root.Content = append(root.Content, str(message.Name()), fields)
	}
	if len(root.Content) == 0 {
		root.Style = yaml.FlowStyle
	}
	return root
}

func fieldNode(field pbt.Field) *yaml.Node {
	typeKey := "scalar"
	if _, ok := field.Type.MessageName(); ok {
		typeKey = "message"
	}
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			str("name"), str(field.Name),
			str("number"), {
				Kind:  yaml.ScalarNode,
				Tag:   "!!int",
				Value: strconv.FormatUint(field.Number, 10),
			},
			str("cardinality"), str(field.Cardinality.String()),
			str(typeKey), str(field.Type.String()),
		},
	}
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
