// SPDX-License-Identifier: MPL-2.0

package remap

import (
	"fmt"
	"io/fs"

	"github.com/upkremap/upkremap/pkg/guid"
)

// DefaultMaxAttempts bounds the number of generation passes. With a
// well-distributed generator the expected number of passes is one.
const DefaultMaxAttempts = 1000

// Builder generates a Table for a set of entries.
type Builder struct {
	// Generator mints candidate identifiers. Nil means a guid.HashGenerator.
	Generator guid.Generator
	// MaxAttempts caps the number of generation passes. Values < 1 mean
	// DefaultMaxAttempts.
	MaxAttempts int
	// OnCollision, when set, is called after every rejected pass with the
	// 1-based pass number and the offending candidates.
	OnCollision func(attempt int, collided []guid.GUID)
}

// Build validates the top-level items of an extracted package and builds a
// table for them. Every item must be a directory; the first one that is not
// yields an *InvalidPackageError.
func (b *Builder) Build(items []fs.DirEntry) (*Table, error) {
	olds := make([]guid.GUID, 0, len(items))
	for _, item := range items {
		if !item.IsDir() {
			return nil, &InvalidPackageError{Item: item.Name(), Reason: "is not a directory"}
		}
		olds = append(olds, guid.GUID(item.Name()))
	}
	return b.BuildIDs(olds)
}

// BuildIDs builds a table for the given original identifiers.
//
// Each pass generates one candidate per original. A pass is accepted only if
// the candidates are pairwise distinct, disjoint from the originals, and none
// of them was part of a collision in an earlier pass; otherwise the whole
// candidate set is discarded and regenerated.
func (b *Builder) BuildIDs(olds []guid.GUID) (*Table, error) {
	set := make(map[guid.GUID]struct{}, len(olds))
	for _, old := range olds {
		if _, dup := set[old]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIdentifier, old)
		}
		set[old] = struct{}{}
	}

	gen := b.Generator
	if gen == nil {
		gen = guid.NewHashGenerator()
	}
	maxAttempts := b.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	burned := make(map[guid.GUID]struct{})
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		candidates := make(map[guid.GUID]guid.GUID, len(olds))
		for _, old := range olds {
			candidates[old] = gen.Generate([]byte(old))
		}

		collided := collisions(candidates, burned)
		if len(collided) == 0 {
			return &Table{forward: candidates, attempts: attempt}, nil
		}
		for _, c := range collided {
			burned[c] = struct{}{}
		}
		if b.OnCollision != nil {
			b.OnCollision(attempt, collided)
		}
	}

	return nil, fmt.Errorf("%w: %d passes over %d entries", ErrRetryBudgetExhausted, maxAttempts, len(olds))
}
