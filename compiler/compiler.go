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
	"errors"

	"go.pbt-lang.org/pbt"
	"go.pbt-lang.org/pbt/syntax"
)

type CompileOption interface {
	apply(*CompileOptions)
}

type compileOption func(*CompileOptions)

func (f compileOption) apply(opts *CompileOptions) { f(opts) }

type CompileOptions struct {
	strictFieldNames bool
	parseOpts        []syntax.ParseOption
}

// WithStrictFieldNames rejects messages that declare the same field name
// more than once. By default the last declaration wins and a warning is
// reported.
func WithStrictFieldNames() CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.strictFieldNames = true
	})
}

// WithParseOptions sets the options used by [ParseSchema] to parse schema
// text.
func WithParseOptions(parseOpts ...syntax.ParseOption) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.parseOpts = append(opts.parseOpts, parseOpts...)
	})
}

type CompileResult struct {
	schema *pbt.Schema

	Errors   []*Error
	Warnings []*Warning
}

// Schema returns the compiled schema, or nil if compilation failed.
func (r *CompileResult) Schema() *pbt.Schema {
	return r.schema
}

// Err joins the result's errors, or returns nil if there are none.
func (r *CompileResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, err := range r.Errors {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func Compile(file *syntax.File, opts ...CompileOption) CompileResult {
	return NewCompileOptions(opts...).Compile(file)
}

// ParseSchema parses and compiles schema text. On failure the returned
// error is either a [*syntax.Error] or the joined [*Error] values of the
// compile result.
func ParseSchema(text string, opts ...CompileOption) (*pbt.Schema, error) {
	return NewCompileOptions(opts...).ParseSchema(text)
}

func NewCompileOptions(opts ...CompileOption) *CompileOptions {
	compileOptions := &CompileOptions{}
	for _, opt := range opts {
		opt.apply(compileOptions)
	}
	return compileOptions
}

func (opts *CompileOptions) ParseSchema(text string) (*pbt.Schema, error) {
	file, err := syntax.Parse(text, opts.parseOpts...)
	if err != nil {
		return nil, err
	}
	result := opts.Compile(file)
	if err := result.Err(); err != nil {
		return nil, err
	}
	return result.schema, nil
}

func (opts *CompileOptions) Compile(file *syntax.File) CompileResult {
	c := compiler{
		opts:     opts,
		file:     file,
		messages: make(map[string]*syntax.Message, len(file.Messages())),
	}
	schema := c.compileSchema()
	if len(c.errors) > 0 {
		return CompileResult{
			Errors:   c.errors,
			Warnings: c.warnings,
		}
	}
	return CompileResult{
		schema:   schema,
		Warnings: c.warnings,
	}
}

type compiler struct {
	opts     *CompileOptions
	file     *syntax.File
	messages map[string]*syntax.Message

	errors   []*Error
	warnings []*Warning
}

func (c *compiler) err(err *Error) {
	c.errors = append(c.errors, err)
}

func (c *compiler) warn(warning *Warning) {
	c.warnings = append(c.warnings, warning)
}

func (c *compiler) compileSchema() *pbt.Schema {
	c.registerMessages()

	var messages []*pbt.Message
	for _, node := range c.file.Messages() {
		if c.messages[node.Name()] != node {
			continue
		}
		messages = append(messages, c.compileMessage(node))
	}
	if len(c.errors) > 0 {
		return nil
	}

	schema, err := pbt.NewSchema(messages)
	if err != nil {
		// Names and references were checked above.
		panic(err)
	}
	return schema
}

// Message names are registered before any field is resolved, so a field
// may refer to a message declared later in the source.
func (c *compiler) registerMessages() {
	for _, node := range c.file.Messages() {
		name := node.Name()
		if _, dup := c.messages[name]; dup {
			c.err(errDuplicateMessageName(name, node.NameSpan()))
			continue
		}
		c.messages[name] = node
		if _, isScalar := pbt.LookupScalar(name); isScalar {
			c.warn(warnMessageShadowsScalar(name, node.NameSpan()))
		}
	}
}

func (c *compiler) compileMessage(node *syntax.Message) *pbt.Message {
	fields := make([]pbt.Field, 0, len(node.Fields()))
	seen := make(map[string]*syntax.Field, len(node.Fields()))
	for _, fieldNode := range node.Fields() {
		name := fieldNode.Name()
		if prev, dup := seen[name]; dup {
			if c.opts.strictFieldNames {
				c.err(errDuplicateFieldName(node.Name(), name, fieldNode.NameSpan()))
				continue
			}
			c.warn(warnFieldNameShadowed(node.Name(), name, prev.NameSpan()))
		}
		seen[name] = fieldNode

		fieldType, ok := c.resolveType(node, fieldNode)
		if !ok {
			continue
		}
		fields = append(fields, pbt.Field{
			Name:        name,
			Number:      fieldNode.Number(),
			Cardinality: cardinality(fieldNode.Label()),
			Type:        fieldType,
		})
	}
	return pbt.NewMessage(node.Name(), fields)
}

func (c *compiler) resolveType(message *syntax.Message, field *syntax.Field) (pbt.FieldType, bool) {
	typeName := field.TypeName()
	if kind, ok := pbt.LookupScalar(typeName); ok {
		return pbt.ScalarType(kind), true
	}
	if _, ok := c.messages[typeName]; ok {
		return pbt.MessageType(typeName), true
	}
	c.err(errUnknownMessageReference(
		message.Name(), field.Name(), typeName, field.TypeSpan(),
	))
	return pbt.FieldType{}, false
}

func cardinality(label syntax.Label) pbt.Cardinality {
	switch label {
	case syntax.LabelOptional:
		return pbt.Optional
	case syntax.LabelRepeated:
		return pbt.Repeated
	default:
		return pbt.Required
	}
}
