// SPDX-License-Identifier: MPL-2.0

package remap

import (
	"fmt"
	"slices"

	"github.com/upkremap/upkremap/pkg/guid"

	"golang.org/x/exp/maps"
)

type (
	// Table is an immutable old -> new identifier mapping.
	Table struct {
		forward  map[guid.GUID]guid.GUID
		attempts int
	}

	// Pair is one row of a Table.
	Pair struct {
		Old guid.GUID
		New guid.GUID
	}
)

// NewTable validates pairs and returns a Table holding a private copy of them.
// It returns ErrNotBijective if two originals share a new identifier or a new
// identifier equals any original.
func NewTable(pairs map[guid.GUID]guid.GUID) (*Table, error) {
	if collided := collisions(pairs, nil); len(collided) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrNotBijective, collided)
	}
	return &Table{forward: maps.Clone(pairs)}, nil
}

// Lookup returns the new identifier for old, if old is part of the table.
func (t *Table) Lookup(old string) (string, bool) {
	n, ok := t.forward[guid.GUID(old)]
	return string(n), ok
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.forward) }

// Attempts returns how many generation passes the Builder needed. Tables made
// with NewTable report zero.
func (t *Table) Attempts() int { return t.attempts }

// Olds returns the original identifiers in sorted order.
func (t *Table) Olds() []guid.GUID {
	olds := maps.Keys(t.forward)
	slices.Sort(olds)
	return olds
}

// Pairs returns every row sorted by original identifier.
func (t *Table) Pairs() []Pair {
	olds := t.Olds()
	out := make([]Pair, len(olds))
	for i, old := range olds {
		out[i] = Pair{Old: old, New: t.forward[old]}
	}
	return out
}

// OldNew returns the table flattened as old1, new1, old2, new2, ... in the
// argument order expected by strings.NewReplacer.
func (t *Table) OldNew() []string {
	out := make([]string, 0, 2*len(t.forward))
	for _, p := range t.Pairs() {
		out = append(out, string(p.Old), string(p.New))
	}
	return out
}

// collisions returns, sorted, every candidate value that breaks bijectivity or
// disjointness: values generated for more than one original, values equal to
// an original, and values listed in burned.
func collisions(candidates map[guid.GUID]guid.GUID, burned map[guid.GUID]struct{}) []guid.GUID {
	// The union of originals and candidates has 2n members exactly when the
	// table is clean, so the common case costs one set build.
	union := make(map[guid.GUID]struct{}, 2*len(candidates))
	for old, n := range candidates {
		union[old] = struct{}{}
		union[n] = struct{}{}
	}
	clean := len(union) == 2*len(candidates)
	if clean && len(burned) == 0 {
		return nil
	}

	seen := make(map[guid.GUID]int, len(candidates))
	for _, n := range candidates {
		seen[n]++
	}
	bad := make(map[guid.GUID]struct{})
	for n, count := range seen {
		_, isOld := candidates[n]
		_, isBurned := burned[n]
		if count > 1 || isOld || isBurned {
			bad[n] = struct{}{}
		}
	}
	if len(bad) == 0 {
		return nil
	}
	collided := maps.Keys(bad)
	slices.Sort(collided)
	return collided
}
