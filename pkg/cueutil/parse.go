// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// ErrInvalidJSON is wrapped by ParseJSONAndDecode when the input is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// ParseResult contains the result of a successful parse.
type ParseResult[T any] struct {
	// Value is the decoded Go value.
	Value *T

	// Unified is the unified CUE value, for callers that need to inspect
	// fields beyond what was decoded.
	Unified cue.Value
}

// ParseAndDecode compiles CUE source data, unifies it with the schema
// definition at schemaPath (e.g. "#Config") and decodes the result into T.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	options := resolveOptions(opts)

	if err := CheckFileSize(data, options.maxFileSize, options.filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	userValue := ctx.CompileBytes(data, cue.Filename(options.filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), options.filename)
	}

	return decodeAgainstSchema[T](ctx, schema, schemaPath, userValue, options)
}

// ParseJSONAndDecode is like ParseAndDecode, but the input must be strict JSON.
// CUE accepts a superset of JSON, so the data is extracted with the JSON
// decoder first; syntax errors wrap ErrInvalidJSON.
func ParseJSONAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	options := resolveOptions(opts)

	if err := CheckFileSize(data, options.maxFileSize, options.filename); err != nil {
		return nil, err
	}

	expr, err := cuejson.Extract(options.filename, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", options.filename, ErrInvalidJSON, err)
	}

	ctx := cuecontext.New()
	userValue := ctx.BuildExpr(expr, cue.Filename(options.filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), options.filename)
	}

	return decodeAgainstSchema[T](ctx, schema, schemaPath, userValue, options)
}

func resolveOptions(opts []Option) parseOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.filename == "" {
		options.filename = "<input>"
	}
	return options
}

// decodeAgainstSchema performs steps 1 and 3 of the parsing flow: it compiles
// the schema, unifies the user value with the root definition, validates and
// decodes.
func decodeAgainstSchema[T any](ctx *cue.Context, schema []byte, schemaPath string, userValue cue.Value, options parseOptions) (*ParseResult[T], error) {
	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)

	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return nil, FormatError(err, options.filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, options.filename)
	}

	return &ParseResult[T]{
		Value:   &result,
		Unified: unified,
	}, nil
}
