// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MarkupUnset defers to the legacy toggles (zero value).
	MarkupUnset TextMarkup = ""
	// MarkupANSI renders text literally, passing ANSI sequences through.
	MarkupANSI TextMarkup = "ansi"
	// MarkupRich interprets light markup tags such as "[bold red]x[/]".
	MarkupRich TextMarkup = "rich"
	// MarkupMarkdown renders text as markdown.
	MarkupMarkdown TextMarkup = "markdown"
)

// Parameter column types.
const (
	ColumnRequired      ColumnType = "required"
	ColumnOptLong       ColumnType = "opt_long"
	ColumnOptShort      ColumnType = "opt_short"
	ColumnOptAll        ColumnType = "opt_all"
	ColumnOptPrimary    ColumnType = "opt_primary"
	ColumnOptSecondary  ColumnType = "opt_secondary"
	ColumnMetavar       ColumnType = "metavar"
	ColumnOptAllMetavar ColumnType = "opt_all_metavar"
	ColumnHelp          ColumnType = "help"
	ColumnDefault       ColumnType = "default"
	ColumnEnvvar        ColumnType = "envvar"
	ColumnDeprecated    ColumnType = "deprecated"

	// ColumnName is the subcommand name column.
	ColumnName ColumnType = "name"
	// ColumnAliases lists subcommand aliases.
	ColumnAliases ColumnType = "aliases"
)

// Help sections appended around a parameter's help text.
const (
	SectionHelp       HelpSection = "help"
	SectionDeprecated HelpSection = "deprecated"
	SectionEnvvar     HelpSection = "envvar"
	SectionDefault    HelpSection = "default"
	SectionRequired   HelpSection = "required"
	SectionMetavar    HelpSection = "metavar"
)

var (
	// ErrInvalidTextMarkup is the sentinel error wrapped by InvalidTextMarkupError.
	ErrInvalidTextMarkup = errors.New("invalid text markup")
	// ErrInvalidColumnType is the sentinel error wrapped by InvalidColumnTypeError.
	ErrInvalidColumnType = errors.New("invalid column type")
	// ErrInvalidHelpSection is the sentinel error wrapped by InvalidHelpSectionError.
	ErrInvalidHelpSection = errors.New("invalid help section")
	// ErrThemeNotFound is the sentinel error wrapped by ThemeNotFoundError.
	ErrThemeNotFound = errors.New("theme not found")
)

type (
	// TextMarkup selects how help prose is interpreted.
	TextMarkup string

	// ColumnType names one column of a panel table.
	ColumnType string

	// HelpSection names one annotation in the help column.
	HelpSection string

	// InvalidTextMarkupError is returned when a TextMarkup value is not recognized.
	InvalidTextMarkupError struct {
		Value TextMarkup
	}

	// InvalidColumnTypeError is returned when a ColumnType value is not recognized.
	InvalidColumnTypeError struct {
		Value ColumnType
	}

	// InvalidHelpSectionError is returned when a HelpSection value is not recognized.
	InvalidHelpSectionError struct {
		Value HelpSection
	}

	// ThemeNotFoundError is returned when a theme name matches no palette or format.
	ThemeNotFoundError struct {
		Name      string
		Available []string
	}
)

// String returns the string representation of the TextMarkup.
func (m TextMarkup) String() string { return string(m) }

// Validate returns nil if the TextMarkup is one of the defined modes.
func (m TextMarkup) Validate() error {
	switch m {
	case MarkupUnset, MarkupANSI, MarkupRich, MarkupMarkdown:
		return nil
	default:
		return &InvalidTextMarkupError{Value: m}
	}
}

// Error implements the error interface.
func (e *InvalidTextMarkupError) Error() string {
	return fmt.Sprintf("invalid text markup %q (valid: ansi, rich, markdown)", e.Value)
}

// Unwrap returns ErrInvalidTextMarkup for errors.Is() compatibility.
func (e *InvalidTextMarkupError) Unwrap() error { return ErrInvalidTextMarkup }

// String returns the string representation of the ColumnType.
func (c ColumnType) String() string { return string(c) }

// Validate returns nil if the ColumnType is one of the defined columns.
func (c ColumnType) Validate() error {
	switch c {
	case ColumnRequired, ColumnOptLong, ColumnOptShort, ColumnOptAll, ColumnOptPrimary,
		ColumnOptSecondary, ColumnMetavar, ColumnOptAllMetavar, ColumnHelp, ColumnDefault,
		ColumnEnvvar, ColumnDeprecated, ColumnName, ColumnAliases:
		return nil
	default:
		return &InvalidColumnTypeError{Value: c}
	}
}

// Error implements the error interface.
func (e *InvalidColumnTypeError) Error() string {
	return fmt.Sprintf("invalid column type %q", e.Value)
}

// Unwrap returns ErrInvalidColumnType for errors.Is() compatibility.
func (e *InvalidColumnTypeError) Unwrap() error { return ErrInvalidColumnType }

// String returns the string representation of the HelpSection.
func (s HelpSection) String() string { return string(s) }

// Validate returns nil if the HelpSection is one of the defined sections.
func (s HelpSection) Validate() error {
	switch s {
	case SectionHelp, SectionDeprecated, SectionEnvvar, SectionDefault, SectionRequired, SectionMetavar:
		return nil
	default:
		return &InvalidHelpSectionError{Value: s}
	}
}

// Error implements the error interface.
func (e *InvalidHelpSectionError) Error() string {
	return fmt.Sprintf("invalid help section %q", e.Value)
}

// Unwrap returns ErrInvalidHelpSection for errors.Is() compatibility.
func (e *InvalidHelpSectionError) Unwrap() error { return ErrInvalidHelpSection }

// Error implements the error interface.
func (e *ThemeNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("theme %q not found", e.Name)
	}
	return fmt.Sprintf("theme %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Unwrap returns ErrThemeNotFound for errors.Is() compatibility.
func (e *ThemeNotFoundError) Unwrap() error { return ErrThemeNotFound }

// ColumnTypes converts and validates a configured column list. Invalid entries
// are dropped and reported together.
func ColumnTypes(names []string) ([]ColumnType, error) {
	out := make([]ColumnType, 0, len(names))
	var errs []error
	for _, n := range names {
		ct := ColumnType(n)
		if err := ct.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, ct)
	}
	return out, errors.Join(errs...)
}

// HelpSections converts and validates a configured section list.
func HelpSections(names []string) ([]HelpSection, error) {
	out := make([]HelpSection, 0, len(names))
	var errs []error
	for _, n := range names {
		s := HelpSection(n)
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, s)
	}
	return out, errors.Join(errs...)
}
