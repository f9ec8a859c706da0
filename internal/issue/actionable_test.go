// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load configuration"},
			expected: "failed to load configuration",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "load configuration", Resource: "config.cue"},
			expected: "failed to load configuration: config.cue",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load theme",
				Resource:  "ocean.toml",
				Cause:     errors.New("no [palette] table"),
			},
			expected: "failed to load theme: ocean.toml: no [palette] table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying")
	err := fmt.Errorf("outer: %w", &ActionableError{Operation: "x", Cause: cause})
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through the chain")
	}
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Operation != "x" {
		t.Errorf("errors.As = %+v", ae)
	}
	if (&ActionableError{Operation: "x"}).Unwrap() != nil {
		t.Error("Unwrap() without cause should be nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("width: invalid value -1")
	err := &ActionableError{
		Operation:   "load configuration",
		Resource:    "config.cue",
		Suggestions: []string{"Check the schema", "Run 'richhelp config show'"},
		Cause:       fmt.Errorf("validate: %w", inner),
	}

	short := err.Format(false)
	want := "failed to load configuration: config.cue: validate: width: invalid value -1\n\n  • Check the schema\n  • Run 'richhelp config show'"
	if short != want {
		t.Errorf("Format(false) =\n%s\nwant\n%s", short, want)
	}

	long := err.Format(true)
	if !strings.HasPrefix(long, short) {
		t.Error("verbose output should extend the short form")
	}
	for _, line := range []string{"Error chain:", "  1. validate: width: invalid value -1", "  2. width: invalid value -1"} {
		if !strings.Contains(long, line) {
			t.Errorf("verbose output missing %q:\n%s", line, long)
		}
	}
}

func TestErrorContext(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").BuildError() != nil {
		t.Error("BuildError() without operation should be nil")
	}

	cause := errors.New("boom")
	err := NewErrorContext().
		WithIssue(ConfigInvalidID).
		WithOperation("load configuration").
		WithResource("config.toml").
		WithSuggestion("a").
		WithSuggestion("b").
		Wrap(cause).
		BuildError()

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("BuildError() = %T", err)
	}
	if ae.Issue != ConfigInvalidID || ae.Resource != "config.toml" || len(ae.Suggestions) != 2 || !errors.Is(ae, cause) {
		t.Errorf("built = %+v", ae)
	}
}

func TestWrapWithOperation(t *testing.T) {
	t.Parallel()

	if WrapWithOperation(nil, "x") != nil {
		t.Error("nil error should stay nil")
	}
	if got := WrapWithOperation(errors.New("boom"), "read theme").Error(); got != "failed to read theme: boom" {
		t.Errorf("got %q", got)
	}
}
