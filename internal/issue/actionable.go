// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is an error a user can act on: what failed, on which
	// file, and how to fix it. Issue links it to a longer article in the
	// catalog.
	//
	//	err := issue.NewErrorContext().
	//		WithIssue(issue.ConfigInvalidID).
	//		WithOperation("load configuration").
	//		WithResource("~/.config/richhelp/config.cue").
	//		WithSuggestion("Run 'richhelp config show' to see valid keys").
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "load configuration".
		Operation string
		// Resource names the file or theme involved (optional).
		Resource string
		// Suggestions are short remediation hints (optional).
		Suggestions []string
		// Issue identifies the catalog article for this error (optional).
		Issue ID
		// Cause is the underlying error (optional).
		Cause error
	}

	// ErrorContext builds an ActionableError incrementally.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		issue       ID
		cause       error
	}
)

// NewErrorContext creates an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithOperation wraps err with an operation. A nil err stays nil.
func WrapWithOperation(err error, operation string) error {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Cause: err}
}

// Error implements the error interface.
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the underlying cause error for use with errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message followed by one bulleted line per suggestion.
// Verbose output adds the numbered chain of wrapped errors:
//
//	failed to load configuration: config.cue: width: invalid value -1
//
//	  • Check the file against 'richhelp config show --format cue'
//
//	Error chain:
//	  1. config.cue: width: invalid value -1
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}
	return msg.String()
}

// WithOperation sets the operation being performed.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the file or theme involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends a remediation hint.
func (c *ErrorContext) WithSuggestion(s string) *ErrorContext {
	c.suggestions = append(c.suggestions, s)
	return c
}

// WithIssue links the error to a catalog article.
func (c *ErrorContext) WithIssue(id ID) *ErrorContext {
	c.issue = id
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build returns the error, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Issue:       c.issue,
		Cause:       c.cause,
	}
}

// BuildError is Build typed as error, so a missing operation yields a true nil.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
