// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a failure reported to the user together with what
	// lynxlink was doing, the file involved and what to try next. Guide names
	// the catalog entry that explains the failure at length; zero means none.
	//
	//	return issue.NewErrorContext().
	//		WithOperation("determine applicationId").
	//		WithResource(buildFile).
	//		WithSuggestion("Use --java-package to specify the package name explicitly").
	//		WithGuide(issue.ApplicationIdNotFoundId).
	//		Wrap(err).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "locate the Android project".
		Operation string
		// Resource is the file or directory involved, if any.
		Resource string
		// Suggestions are printed under the message, one per line.
		Suggestions []string
		// Guide is the catalog entry shown in verbose mode.
		Guide Id
		// Cause is the underlying error.
		Cause error
	}

	// ErrorContext accumulates the fields of an ActionableError. Each Wrap
	// starts from the same operation, resource and suggestions, so a context
	// can be kept around and wrapped more than once.
	ErrorContext struct {
		base ActionableError
	}
)

// NewErrorContext returns an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
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

// Unwrap returns the cause so errors.Is and errors.As see through the error.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// HasSuggestions reports whether the error tells the user what to try next.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// Format renders the message followed by the suggestions as a bullet list.
// Verbose output also lists every error in the cause chain, outermost first.
func (e *ActionableError) Format(verbose bool) string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if e.HasSuggestions() {
		sb.WriteString("\n")
		for _, s := range e.Suggestions {
			sb.WriteString("\n  • ")
			sb.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		sb.WriteString("\n\nError chain:")
		for i, err := 1, e.Cause; err != nil; i, err = i+1, errors.Unwrap(err) {
			fmt.Fprintf(&sb, "\n  %d. %s", i, err.Error())
		}
	}

	return sb.String()
}

// WithOperation sets what lynxlink was doing when the error occurred.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.base.Operation = op
	return c
}

// WithResource sets the file or directory involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.base.Resource = res
	return c
}

// WithSuggestion appends a hint. Call it once per hint.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.base.Suggestions = append(c.base.Suggestions, sug)
	return c
}

// WithGuide links the error to a catalog entry.
func (c *ErrorContext) WithGuide(id Id) *ErrorContext {
	c.base.Guide = id
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.base.Cause = err
	return c
}

// BuildError returns the accumulated *ActionableError, or nil when no
// operation was set.
func (c *ErrorContext) BuildError() error {
	if c.base.Operation == "" {
		return nil
	}
	ae := c.base
	ae.Suggestions = append([]string(nil), c.base.Suggestions...)
	return &ae
}
