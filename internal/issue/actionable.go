// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strconv"
	"strings"
)

// ActionableError is an error an operator can do something about. It names
// the operation that failed, optionally the file involved, and carries
// remediation hints plus a link to a catalog page.
//
// Values are built by chaining:
//
//	return issue.Wrap(err, "load configuration").
//		On(path).
//		Suggest("Run 'upkremap config init' to start from the defaults").
//		Link(issue.ConfigLoadFailedId)
type ActionableError struct {
	// Operation is a verb phrase such as "remap package".
	Operation string
	// Resource names the file or entity involved, if any.
	Resource string
	// Suggestions are remediation hints shown one per line.
	Suggestions []string
	// Issue is the catalog page with longer guidance; zero means none.
	Issue Id
	// Cause is the underlying error, if any.
	Cause error
}

// New starts an ActionableError with no cause.
func New(operation string) *ActionableError {
	return &ActionableError{Operation: operation}
}

// Wrap starts an ActionableError around cause.
func Wrap(cause error, operation string) *ActionableError {
	return &ActionableError{Operation: operation, Cause: cause}
}

// On records the resource involved.
func (e *ActionableError) On(resource string) *ActionableError {
	e.Resource = resource
	return e
}

// Suggest appends remediation hints.
func (e *ActionableError) Suggest(hints ...string) *ActionableError {
	e.Suggestions = append(e.Suggestions, hints...)
	return e
}

// Link attaches a catalog page.
func (e *ActionableError) Link(id Id) *ActionableError {
	e.Issue = id
	return e
}

// Error renders "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error { return e.Cause }

// HasSuggestions reports whether any hint was attached.
func (e *ActionableError) HasSuggestions() bool { return len(e.Suggestions) != 0 }

// Format is Error followed by a bulleted list of suggestions. Verbose output
// also numbers every error in the cause chain.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if e.HasSuggestions() {
		b.WriteByte('\n')
		for _, hint := range e.Suggestions {
			b.WriteString("\n  • " + hint)
		}
	}

	if !verbose || e.Cause == nil {
		return b.String()
	}
	b.WriteString("\n\nError chain:")
	n := 0
	for cause := e.Cause; cause != nil; cause = errors.Unwrap(cause) {
		n++
		b.WriteString("\n  " + strconv.Itoa(n) + ". " + cause.Error())
	}
	return b.String()
}
