// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/upkremap/upkremap/pkg/types"
)

// ExitError carries the process exit status out of a RunE handler. Err may
// be nil when the failure was already rendered.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// exitWith wraps err so that Execute exits with code.
func exitWith(code types.ExitCode, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		if name := e.Code.Name(); name != "" {
			return "exit status " + e.Code.String() + " (" + name + ")"
		}
		return "exit status " + e.Code.String()
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitStatus maps the error returned by the root command to a process exit
// status. Errors that do not carry a code come from flag parsing or argument
// validation inside cobra and count as usage errors.
func exitStatus(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitUsage
}
