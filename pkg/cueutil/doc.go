// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema.
//
// Parsing follows three steps: compile the schema, compile the user document and unify
// it with a schema definition, then validate and decode the result into a Go value.
// Errors carry the file name and the JSON path of the offending field:
//
//	result, err := cueutil.ParseAndDecode[map[string]any](
//	    schema, data, "#Config",
//	    cueutil.WithFilename("config.cue"),
//	    cueutil.WithConcrete(false),
//	)
package cueutil
