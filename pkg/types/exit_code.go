// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared between the CLI and its libraries.
package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ExitCode is a process exit status. POSIX keeps only the low byte, so the
// valid range is 0-255.
type ExitCode int

// Exit statuses returned by upkremap.
const (
	// ExitSuccess: every archive was remapped or deliberately discarded.
	ExitSuccess ExitCode = 0
	// ExitFailure: at least one archive failed, or the run could not start.
	ExitFailure ExitCode = 1
	// ExitUsage: the command line was rejected.
	ExitUsage ExitCode = 2
	// ExitInterrupted: the run was canceled by SIGINT (128 + 2).
	ExitInterrupted ExitCode = 130
)

const maxExitCode ExitCode = 255

var exitCodeNames = map[ExitCode]string{
	ExitSuccess:     "success",
	ExitFailure:     "failure",
	ExitUsage:       "usage",
	ExitInterrupted: "interrupted",
}

// ErrInvalidExitCode is the sentinel behind InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

// InvalidExitCodeError reports a status that cannot be passed to os.Exit
// portably.
type InvalidExitCodeError struct {
	Value ExitCode
}

func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d is outside 0-%d", int(e.Value), int(maxExitCode))
}

func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate rejects codes outside 0-255.
func (c ExitCode) Validate() error {
	if c < ExitSuccess || c > maxExitCode {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether c is ExitSuccess.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// IsUsage reports whether c is ExitUsage.
func (c ExitCode) IsUsage() bool { return c == ExitUsage }

// Name returns the short name of a known status, or "" for any other code.
func (c ExitCode) Name() string { return exitCodeNames[c] }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
