// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"

	"github.com/upkremap/upkremap/pkg/guid"
	"github.com/upkremap/upkremap/pkg/metadata"

	"github.com/opencontainers/go-digest"
)

// Status is the outcome of one package.
type Status string

const (
	// StatusRemapped means the output package was written and kept.
	StatusRemapped Status = "remapped"
	// StatusDiscarded means the output was written, then declined at confirmation.
	StatusDiscarded Status = "discarded"
	// StatusFailed means a stage failed; no output exists.
	StatusFailed Status = "failed"
	// StatusSkipped means the package was never processed because the batch stopped.
	StatusSkipped Status = "skipped"
)

type (
	// Rename is one entry's identifier reassignment.
	Rename struct {
		Old      guid.GUID
		New      guid.GUID
		Pathname string
	}

	// EntryWarning is a metadata warning attributed to an entry.
	EntryWarning struct {
		metadata.Warning
		// Entry is the entry's new identifier.
		Entry guid.GUID
		// Pathname is the entry's project path, when known.
		Pathname string
	}

	// Result describes the processing of one package.
	Result struct {
		Archive string
		Status  Status
		// Output is the written package; empty unless Status is StatusRemapped.
		Output string
		// Digest is the output's content digest.
		Digest digest.Digest
		// ReportPath is the report file, when one was written.
		ReportPath string

		Entries           int
		Attempts          int
		Renames           []Rename
		Replaced          int
		PayloadsRewritten int
		Warnings          []EntryWarning

		// Err is a *StageError when Status is StatusFailed.
		Err error
	}

	// Summary collects the results of a batch in input order.
	Summary struct {
		Results []Result
	}
)

// Count returns the number of warnings of the given kind.
func (r *Result) Count(kind metadata.WarningKind) int {
	n := 0
	for _, w := range r.Warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// Count returns how many packages ended with status.
func (s Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Warnings returns the grand total of warnings across the batch.
func (s Summary) Warnings() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Warnings)
	}
	return n
}

// Err joins the errors of every failed package, or returns nil.
func (s Summary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if r.Status == StatusFailed && r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
