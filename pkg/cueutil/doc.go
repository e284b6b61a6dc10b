// SPDX-License-Identifier: MPL-2.0

// Package cueutil checks CUE documents against a compiled schema definition
// and decodes them into Go values.
//
//	//go:embed config_schema.cue
//	var src string
//
//	var schema = cueutil.MustCompile(src, "#Config")
//
//	var fields map[string]any
//	err := schema.Decode(data, &fields,
//	    cueutil.WithFilename("config.cue"),
//	    cueutil.WithConcrete(false),
//	)
package cueutil
