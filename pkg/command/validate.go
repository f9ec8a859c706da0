// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPanelKind is the sentinel error wrapped by InvalidPanelKindError.
	ErrInvalidPanelKind = errors.New("invalid panel kind")

	// ErrDuplicateParameter is returned by Validate when two parameters share an invocation string.
	ErrDuplicateParameter = errors.New("duplicate parameter")
)

type (
	// InvalidPanelKindError is returned when a PanelKind value is not recognized.
	InvalidPanelKindError struct {
		Value PanelKind
	}

	// DuplicateParameterError names the clashing invocation string.
	DuplicateParameterError struct {
		Command string
		Ref     string
	}
)

// String returns the string representation of the PanelKind.
func (k PanelKind) String() string { return string(k) }

// Validate returns nil for the known panel kinds. The zero value means parameters.
func (k PanelKind) Validate() error {
	switch k {
	case "", PanelParams, PanelCommands:
		return nil
	default:
		return &InvalidPanelKindError{Value: k}
	}
}

// Error implements the error interface.
func (e *InvalidPanelKindError) Error() string {
	return fmt.Sprintf("invalid panel kind %q (valid: params, commands)", e.Value)
}

// Unwrap returns ErrInvalidPanelKind for errors.Is() compatibility.
func (e *InvalidPanelKindError) Unwrap() error { return ErrInvalidPanelKind }

// Error implements the error interface.
func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("command %q declares %q more than once", e.Command, e.Ref)
}

// Unwrap returns ErrDuplicateParameter for errors.Is() compatibility.
func (e *DuplicateParameterError) Unwrap() error { return ErrDuplicateParameter }

// Validate checks the command and its subcommands for malformed declarations.
func (c *Command) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for _, p := range c.Params {
		refs := append([]string{}, p.Opts...)
		refs = append(refs, p.SecondaryOpts...)
		if p.IsArgument() {
			refs = append(refs, p.Name)
		}
		for _, ref := range refs {
			if seen[ref] {
				errs = append(errs, &DuplicateParameterError{Command: c.Meta.Name, Ref: ref})
			}
			seen[ref] = true
		}
	}
	for _, spec := range c.Meta.Panels {
		if err := spec.Kind.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, sub := range c.Subcommands {
		if err := sub.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
