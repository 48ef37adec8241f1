// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Both the lynx.module.json metadata parser and the configuration loader follow
// the same 3-step flow:
//
//  1. Compile the embedded schema
//  2. Compile (or extract, for JSON input) user data and unify with the schema
//  3. Validate and decode to a Go value
//
// # Usage
//
//	//go:embed lynxmod_schema.cue
//	var schema string
//
//	result, err := cueutil.ParseJSONAndDecode[map[string]any](
//	    []byte(schema),
//	    fileBytes,
//	    "#LynxModule",
//	    cueutil.WithFilename("node_modules/lynx-camera/lynx.module.json"),
//	)
//	if err != nil {
//	    return nil, err // error carries the JSON path of the offending field
//	}
package cueutil
