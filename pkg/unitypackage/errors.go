// SPDX-License-Identifier: MPL-2.0

package unitypackage

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsafePath is the sentinel for archive members that would be
	// written outside the extraction directory.
	ErrUnsafePath = errors.New("unsafe archive path")

	// ErrSizeLimit is returned when an archive exceeds an extraction limit.
	ErrSizeLimit = errors.New("archive exceeds size limit")
)

// UnsafePathError reports an archive member rejected during extraction.
type UnsafePathError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *UnsafePathError) Error() string {
	return fmt.Sprintf("unsafe archive path %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrUnsafePath for use with errors.Is().
func (e *UnsafePathError) Unwrap() error { return ErrUnsafePath }
