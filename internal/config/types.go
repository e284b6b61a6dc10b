// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// FailurePolicyContinue moves on to the next package after a failure.
	FailurePolicyContinue FailurePolicy = "continue"
	// FailurePolicyAbort stops at the first failed package.
	FailurePolicyAbort FailurePolicy = "abort"

	// ReportFormatNone writes no report.
	ReportFormatNone ReportFormat = "none"
	// ReportFormatTOML writes a TOML report.
	ReportFormatTOML ReportFormat = "toml"
	// ReportFormatYAML writes a YAML report.
	ReportFormatYAML ReportFormat = "yaml"
	// ReportFormatJSON writes a JSON report.
	ReportFormatJSON ReportFormat = "json"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultMaxAttempts is the default collision retry budget.
	DefaultMaxAttempts = 1000
	// MaxJobs bounds Config.Jobs.
	MaxJobs = 64
)

var (
	// ErrInvalidFailurePolicy is returned when a FailurePolicy value is not recognized.
	ErrInvalidFailurePolicy = errors.New("invalid failure policy")
	// ErrInvalidReportFormat is returned when a ReportFormat value is not recognized.
	ErrInvalidReportFormat = errors.New("invalid report format")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputSuffix is returned when an OutputSuffix is empty or contains a path separator.
	ErrInvalidOutputSuffix = errors.New("invalid output suffix")
	// ErrInvalidReferenceKey is returned when a ReferenceKey is not a plain identifier.
	ErrInvalidReferenceKey = errors.New("invalid reference key")
	// ErrInvalidSetting is the sentinel error wrapped by InvalidSettingError.
	ErrInvalidSetting = errors.New("invalid setting")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	referenceKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type (
	// FailurePolicy decides what happens to the remaining packages after one fails.
	FailurePolicy string

	// InvalidFailurePolicyError is returned when a FailurePolicy value is not recognized.
	// It wraps ErrInvalidFailurePolicy for errors.Is() compatibility.
	InvalidFailurePolicyError struct {
		Value FailurePolicy
	}

	// ReportFormat selects the remap report encoding.
	ReportFormat string

	// InvalidReportFormatError is returned when a ReportFormat value is not recognized.
	InvalidReportFormatError struct {
		Value ReportFormat
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutputSuffix is inserted between the package base name and its extension.
	OutputSuffix string

	// InvalidOutputSuffixError is returned for an empty suffix or one that
	// would move the output into another directory.
	InvalidOutputSuffixError struct {
		Value OutputSuffix
	}

	// ReferenceKey is the reserved mapping key holding asset identifiers.
	ReferenceKey string

	// InvalidReferenceKeyError is returned when a ReferenceKey is not a plain identifier.
	InvalidReferenceKeyError struct {
		Value ReferenceKey
	}

	// InvalidSettingError reports an out-of-range numeric setting.
	InvalidSettingError struct {
		Key    string
		Value  int
		Reason string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// ReferenceKey is the metadata key whose value is an asset identifier.
		ReferenceKey ReferenceKey `json:"reference_key" mapstructure:"reference_key"`
		// OutputSuffix names the output package.
		OutputSuffix OutputSuffix `json:"output_suffix" mapstructure:"output_suffix"`
		// FailurePolicy is "continue" or "abort".
		FailurePolicy FailurePolicy `json:"failure_policy" mapstructure:"failure_policy"`
		// MaxAttempts caps identifier generation passes per package.
		MaxAttempts int `json:"max_attempts" mapstructure:"max_attempts"`
		// RewritePayload also rewrites identifiers in text asset payloads.
		RewritePayload bool `json:"rewrite_payload" mapstructure:"rewrite_payload"`
		// Jobs is the number of packages processed concurrently.
		Jobs int `json:"jobs" mapstructure:"jobs"`
		// CompressionLevel is the gzip level of the output (-1 for default).
		CompressionLevel int `json:"compression_level" mapstructure:"compression_level"`
		// Report configures the per-package report file.
		Report ReportConfig `json:"report" mapstructure:"report"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ReportConfig configures the remap report.
	ReportConfig struct {
		Format ReportFormat `json:"format" mapstructure:"format"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug-level diagnostics
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme sets the color scheme of rendered help
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ReferenceKey:     "guid",
		OutputSuffix:     "-remapped",
		FailurePolicy:    FailurePolicyContinue,
		MaxAttempts:      DefaultMaxAttempts,
		RewritePayload:   false,
		Jobs:             1,
		CompressionLevel: -1,
		Report:           ReportConfig{Format: ReportFormatNone},
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate returns an *InvalidConfigError listing every invalid field, or nil.
func (c Config) Validate() error {
	var errs []error
	for _, err := range []error{
		c.ReferenceKey.Validate(),
		c.OutputSuffix.Validate(),
		c.FailurePolicy.Validate(),
		c.Report.Format.Validate(),
		c.UI.ColorScheme.Validate(),
	} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if c.MaxAttempts < 1 {
		errs = append(errs, &InvalidSettingError{Key: "max_attempts", Value: c.MaxAttempts, Reason: "must be at least 1"})
	}
	if c.Jobs < 1 || c.Jobs > MaxJobs {
		errs = append(errs, &InvalidSettingError{Key: "jobs", Value: c.Jobs, Reason: fmt.Sprintf("must be between 1 and %d", MaxJobs)})
	}
	if c.CompressionLevel < -1 || c.CompressionLevel > 9 {
		errs = append(errs, &InvalidSettingError{Key: "compression_level", Value: c.CompressionLevel, Reason: "must be between -1 and 9"})
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so errors.Is
// matches both the config sentinel and each field's sentinel.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Error implements the error interface for InvalidSettingError.
func (e *InvalidSettingError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Key, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidSetting for errors.Is() compatibility.
func (e *InvalidSettingError) Unwrap() error { return ErrInvalidSetting }

// String returns the string representation of the FailurePolicy.
func (p FailurePolicy) String() string { return string(p) }

// Validate returns an error if the FailurePolicy is not recognized.
func (p FailurePolicy) Validate() error {
	switch p {
	case FailurePolicyContinue, FailurePolicyAbort:
		return nil
	default:
		return &InvalidFailurePolicyError{Value: p}
	}
}

// Error implements the error interface for InvalidFailurePolicyError.
func (e *InvalidFailurePolicyError) Error() string {
	return fmt.Sprintf("invalid failure policy %q (valid: continue, abort)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidFailurePolicyError) Unwrap() error { return ErrInvalidFailurePolicy }

// String returns the string representation of the ReportFormat.
func (f ReportFormat) String() string { return string(f) }

// Enabled reports whether a report should be written.
func (f ReportFormat) Enabled() bool { return f != "" && f != ReportFormatNone }

// Validate returns an error if the ReportFormat is not recognized.
func (f ReportFormat) Validate() error {
	switch f {
	case ReportFormatNone, ReportFormatTOML, ReportFormatYAML, ReportFormatJSON:
		return nil
	default:
		return &InvalidReportFormatError{Value: f}
	}
}

// Error implements the error interface for InvalidReportFormatError.
func (e *InvalidReportFormatError) Error() string {
	return fmt.Sprintf("invalid report format %q (valid: none, toml, yaml, json)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidReportFormatError) Unwrap() error { return ErrInvalidReportFormat }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Validate returns an error if the ColorScheme is not recognized.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the OutputSuffix.
func (s OutputSuffix) String() string { return string(s) }

// Validate returns an error if the suffix is empty or contains a path separator.
func (s OutputSuffix) Validate() error {
	if strings.TrimSpace(string(s)) == "" || strings.ContainsAny(string(s), `/\`) {
		return &InvalidOutputSuffixError{Value: s}
	}
	return nil
}

// Error implements the error interface for InvalidOutputSuffixError.
func (e *InvalidOutputSuffixError) Error() string {
	return fmt.Sprintf("invalid output suffix %q: must be non-empty and contain no path separator", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOutputSuffixError) Unwrap() error { return ErrInvalidOutputSuffix }

// String returns the string representation of the ReferenceKey.
func (k ReferenceKey) String() string { return string(k) }

// Validate returns an error if the key is not a plain identifier.
func (k ReferenceKey) Validate() error {
	if !referenceKeyPattern.MatchString(string(k)) {
		return &InvalidReferenceKeyError{Value: k}
	}
	return nil
}

// Error implements the error interface for InvalidReferenceKeyError.
func (e *InvalidReferenceKeyError) Error() string {
	return fmt.Sprintf("invalid reference key %q: must be a plain identifier", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidReferenceKeyError) Unwrap() error { return ErrInvalidReferenceKey }
