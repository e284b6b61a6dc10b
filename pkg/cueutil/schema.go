// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Schema is a compiled CUE definition that documents are checked against.
// A Schema is safe for concurrent use.
type Schema struct {
	definition string

	// cue values are not safe for concurrent unification.
	mu   sync.Mutex
	ctx  *cue.Context
	root cue.Value
}

// Compile compiles src and looks up definition (for example "#Config").
func Compile(src, definition string) (*Schema, error) {
	ctx := cuecontext.New()
	compiled := ctx.CompileString(src, cue.Filename("schema.cue"))
	if err := compiled.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	root := compiled.LookupPath(cue.ParsePath(definition))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("schema has no %s: %w", definition, err)
	}
	return &Schema{definition: definition, ctx: ctx, root: root}, nil
}

// MustCompile is Compile for schemas embedded at build time.
func MustCompile(src, definition string) *Schema {
	s, err := Compile(src, definition)
	if err != nil {
		panic(err)
	}
	return s
}

// Definition returns the definition documents are unified with.
func (s *Schema) Definition() string { return s.definition }

// Decode unifies data with the schema, validates the result and decodes it
// into dst, which must be a non-nil pointer. Failures are reported as
// *ValidationError or *FileTooLargeError.
func (s *Schema) Decode(data []byte, dst any, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := doc.Err(); err != nil {
		return FormatError(err, o.filename)
	}

	unified := s.root.Unify(doc)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return FormatError(err, o.filename)
	}
	if err := unified.Decode(dst); err != nil {
		return FormatError(err, o.filename)
	}
	return nil
}
