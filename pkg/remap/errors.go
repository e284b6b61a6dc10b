// SPDX-License-Identifier: MPL-2.0

package remap

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPackage is the sentinel error wrapped by InvalidPackageError.
	ErrInvalidPackage = errors.New("invalid unitypackage")
	// ErrRetryBudgetExhausted is returned when every generation pass within the
	// attempt budget produced a colliding candidate set.
	ErrRetryBudgetExhausted = errors.New("identifier generation retry budget exhausted")
	// ErrDuplicateIdentifier is returned when the same original identifier is
	// supplied twice.
	ErrDuplicateIdentifier = errors.New("duplicate original identifier")
	// ErrNotBijective is returned when a table would map two originals to the
	// same identifier or reuse an original identifier as a new one.
	ErrNotBijective = errors.New("rename table is not bijective and disjoint")
)

// InvalidPackageError reports an archive whose top level does not consist
// solely of entry directories. It wraps ErrInvalidPackage for errors.Is().
type InvalidPackageError struct {
	// Item is the offending top-level name.
	Item string
	// Reason describes what is wrong with Item.
	Reason string
}

// Error implements the error interface.
func (e *InvalidPackageError) Error() string {
	return fmt.Sprintf("invalid unitypackage: %q %s", e.Item, e.Reason)
}

// Unwrap returns ErrInvalidPackage so callers can use errors.Is for programmatic detection.
func (e *InvalidPackageError) Unwrap() error { return ErrInvalidPackage }
