// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is the sentinel behind FileTooLargeError.
var ErrFileTooLarge = errors.New("file too large")

type (
	// FieldError is one schema violation at a dotted path such as
	// "report.format" or "archives[0].path". Path is empty for errors that
	// are not tied to a field, such as syntax errors.
	FieldError struct {
		Path    string
		Message string
	}

	// ValidationError collects every violation found in one document.
	ValidationError struct {
		File   string
		Fields []FieldError
		cause  error
	}

	// FileTooLargeError is returned when a document exceeds the size limit.
	FileTooLargeError struct {
		File  string
		Size  int64
		Limit int64
	}
)

func (f FieldError) String() string {
	if f.Path == "" {
		return f.Message
	}
	return f.Path + ": " + f.Message
}

func (e *ValidationError) Error() string {
	switch len(e.Fields) {
	case 0:
		return fmt.Sprintf("%s: %v", e.File, e.cause)
	case 1:
		return e.File + ": " + e.Fields[0].String()
	}
	var b strings.Builder
	b.WriteString(e.File)
	b.WriteString(": validation failed:")
	for _, f := range e.Fields {
		b.WriteString("\n  ")
		b.WriteString(f.String())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return e.cause }

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.File, e.Size, e.Limit)
}

func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// FormatError turns err into a *ValidationError naming file. CUE errors are
// split into one FieldError per violation; other errors are kept as the
// cause. A nil err stays nil.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}

	verr := &ValidationError{File: file, cause: err}
	for _, ce := range cueerrors.Errors(err) {
		path := formatPath(cueerrors.Path(ce))
		msg := ce.Error()
		if path != "" {
			// cue sometimes repeats the path at the front of the message.
			if rest, ok := strings.CutPrefix(msg, path); ok {
				msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
			}
		}
		verr.Fields = append(verr.Fields, FieldError{Path: path, Message: msg})
	}
	return verr
}

// formatPath renders a CUE selector path, writing numeric selectors after
// the first as indexes.
func formatPath(path []string) string {
	var b strings.Builder
	for i, sel := range path {
		if _, err := strconv.ParseUint(sel, 10, 64); err == nil && i > 0 {
			b.WriteString("[" + sel + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(sel)
	}
	return b.String()
}

// CheckFileSize returns a *FileTooLargeError when data is longer than limit.
func CheckFileSize(data []byte, limit int64, file string) error {
	if size := int64(len(data)); size > limit {
		return &FileTooLargeError{File: file, Size: size, Limit: limit}
	}
	return nil
}
