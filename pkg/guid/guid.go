// SPDX-License-Identifier: MPL-2.0

package guid

import (
	"errors"
	"fmt"
)

// Length is the number of hexadecimal characters in a GUID.
const Length = 32

// ErrInvalidGUID is the sentinel error wrapped by InvalidGUIDError.
var ErrInvalidGUID = errors.New("invalid guid")

type (
	// GUID is an opaque asset identifier. Identifiers read from an archive are
	// carried as-is; only generated identifiers are guaranteed to pass Validate.
	GUID string

	// InvalidGUIDError is returned when a GUID is not 32 lowercase hex characters.
	// It wraps ErrInvalidGUID for errors.Is() compatibility.
	InvalidGUIDError struct {
		Value GUID
	}
)

// Error implements the error interface.
func (e *InvalidGUIDError) Error() string {
	return fmt.Sprintf("invalid guid %q (must be %d lowercase hex characters)", string(e.Value), Length)
}

// Unwrap returns ErrInvalidGUID so callers can use errors.Is for programmatic detection.
func (e *InvalidGUIDError) Unwrap() error { return ErrInvalidGUID }

// Validate returns an error if the GUID is not in canonical form.
func (g GUID) Validate() error {
	if len(g) != Length {
		return &InvalidGUIDError{Value: g}
	}
	for i := range len(g) {
		c := g[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return &InvalidGUIDError{Value: g}
		}
	}
	return nil
}

// String returns the GUID as a plain string.
func (g GUID) String() string { return string(g) }
