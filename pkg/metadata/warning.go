// SPDX-License-Identifier: MPL-2.0

package metadata

import "fmt"

const (
	// MissingDependency marks a reference to an identifier outside the rename table.
	MissingDependency WarningKind = iota + 1
	// NonASCII marks a scalar value containing non-ASCII text.
	NonASCII
)

type (
	// WarningKind classifies a Warning.
	WarningKind int

	// Warning is a non-fatal finding from a rewrite. Warnings never change
	// the document and never stop processing.
	Warning struct {
		Kind WarningKind
		// Path locates the field, e.g. "TextureImporter.spriteSheet.sprites[2].name".
		Path string
		// Value is the field's original text.
		Value string
		// Line is the 1-based source line, or 0 when unknown.
		Line int
	}

	// Result tallies one or more rewrites. It is an explicit accumulator:
	// callers merge per-document results with Add.
	Result struct {
		Replaced int
		Warnings []Warning
	}
)

// String returns the kind's name.
func (k WarningKind) String() string {
	switch k {
	case MissingDependency:
		return "missing-dependency"
	case NonASCII:
		return "non-ascii"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// String renders the warning as a single diagnostic line.
func (w Warning) String() string {
	switch w.Kind {
	case MissingDependency:
		return fmt.Sprintf("depends on missing asset %s (%s, line %d)", w.Value, w.Path, w.Line)
	case NonASCII:
		return fmt.Sprintf("non-ASCII value at %s (line %d): %q", w.Path, w.Line, w.Value)
	default:
		return fmt.Sprintf("%s at %s (line %d)", w.Kind, w.Path, w.Line)
	}
}

// Add merges other into r.
func (r *Result) Add(other Result) {
	r.Replaced += other.Replaced
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// WarningCount returns the number of warnings of any kind.
func (r Result) WarningCount() int { return len(r.Warnings) }

// Count returns the number of warnings of the given kind.
func (r Result) Count(kind WarningKind) int {
	n := 0
	for _, w := range r.Warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}
