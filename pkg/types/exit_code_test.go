// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "success", value: ExitSuccess, wantValid: true},
		{name: "failure", value: ExitFailure, wantValid: true},
		{name: "usage", value: ExitUsage, wantValid: true},
		{name: "interrupted", value: ExitInterrupted, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if tt.wantValid {
				if err != nil {
					t.Errorf("ExitCode(%d).Validate() returned error for valid value: %v", tt.value, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("ExitCode(%d).Validate() = %v, want ErrInvalidExitCode", tt.value, err)
			}
		})
	}
}

func TestExitCodePredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code        ExitCode
		wantSuccess bool
		wantUsage   bool
	}{
		{ExitSuccess, true, false},
		{ExitFailure, false, false},
		{ExitUsage, false, true},
		{ExitInterrupted, false, false},
	}

	for _, tt := range tests {
		if got := tt.code.IsSuccess(); got != tt.wantSuccess {
			t.Errorf("ExitCode(%d).IsSuccess() = %v, want %v", tt.code, got, tt.wantSuccess)
		}
		if got := tt.code.IsUsage(); got != tt.wantUsage {
			t.Errorf("ExitCode(%d).IsUsage() = %v, want %v", tt.code, got, tt.wantUsage)
		}
	}
}

func TestExitCodeString(t *testing.T) {
	t.Parallel()

	if got := ExitCode(42).String(); got != "42" {
		t.Errorf("ExitCode(42).String() = %q, want %q", got, "42")
	}
}

func TestExitCodeName(t *testing.T) {
	t.Parallel()

	tests := map[ExitCode]string{
		ExitSuccess:     "success",
		ExitFailure:     "failure",
		ExitUsage:       "usage",
		ExitInterrupted: "interrupted",
		42:              "",
	}
	for code, want := range tests {
		if got := code.Name(); got != want {
			t.Errorf("ExitCode(%d).Name() = %q, want %q", code, got, want)
		}
	}
}

func TestInvalidExitCodeErrorMessage(t *testing.T) {
	t.Parallel()

	err := ExitCode(300).Validate()
	if err == nil || err.Error() != "exit code 300 is outside 0-255" {
		t.Errorf("Validate() = %v", err)
	}
}
