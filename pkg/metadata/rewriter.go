// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"strconv"
	"unicode/utf8"
)

// DefaultReferenceKey is the mapping key whose value is an asset identifier.
const DefaultReferenceKey = "guid"

type (
	// Resolver maps an original identifier to its replacement.
	// *remap.Table satisfies it.
	Resolver interface {
		Lookup(old string) (string, bool)
	}

	// Rewriter substitutes identifier references in metadata documents.
	Rewriter struct {
		key string
	}

	walker struct {
		key      string
		resolver Resolver
		result   Result
	}
)

// NewRewriter returns a Rewriter for the given reserved reference key.
// An empty key means DefaultReferenceKey.
func NewRewriter(key string) *Rewriter {
	if key == "" {
		key = DefaultReferenceKey
	}
	return &Rewriter{key: key}
}

// Key returns the reserved reference key.
func (rw *Rewriter) Key() string { return rw.key }

// Rewrite replaces, in place, every reference in doc that resolver knows
// about, and reports every reference it does not know about. Each
// unresolved reference yields exactly one MissingDependency warning.
func (rw *Rewriter) Rewrite(doc *Document, resolver Resolver) Result {
	w := &walker{key: rw.key, resolver: resolver}
	for _, root := range doc.Roots() {
		w.visit(root, "")
	}
	return w.result
}

func (w *walker) visit(n Node, path string) {
	switch n := n.(type) {
	case *Mapping:
		for _, p := range n.Pairs() {
			name, isScalarKey := scalarKey(p.Key)
			child := joinKey(path, name)
			if isScalarKey && name == w.key {
				if ref, ok := p.Value.(*Scalar); ok {
					w.reference(ref, child)
					continue
				}
			}
			w.visit(p.Value, child)
		}
	case *Sequence:
		for i, item := range n.Items() {
			w.visit(item, path+"["+strconv.Itoa(i)+"]")
		}
	case *Scalar:
		if !isASCII(n.Value()) {
			w.result.Warnings = append(w.result.Warnings, Warning{
				Kind:  NonASCII,
				Path:  path,
				Value: n.Value(),
				Line:  n.Line(),
			})
		}
	case nil:
		// aliases and empty documents
	}
}

func (w *walker) reference(ref *Scalar, path string) {
	if next, ok := w.resolver.Lookup(ref.Value()); ok {
		ref.Set(next)
		w.result.Replaced++
		return
	}
	w.result.Warnings = append(w.result.Warnings, Warning{
		Kind:  MissingDependency,
		Path:  path,
		Value: ref.Value(),
		Line:  ref.Line(),
	})
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
