// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// FormatCUE is the native format, validated directly against the schema.
	FormatCUE FileFormat = "cue"
	// FormatTOML is read by Viper and validated after decoding.
	FormatTOML FileFormat = "toml"
	// FormatYAML is read by Viper and validated after decoding.
	FormatYAML FileFormat = "yaml"
	// FormatJSON is read by Viper and validated after decoding.
	FormatJSON FileFormat = "json"
)

var (
	// ErrInvalidFileFormat is the sentinel error wrapped by InvalidFileFormatError.
	ErrInvalidFileFormat = errors.New("invalid config file format")
	// ErrInvalidLoadOptions is the sentinel error wrapped by InvalidLoadOptionsError.
	ErrInvalidLoadOptions = errors.New("invalid load options")
)

type (
	// FileFormat is the encoding of a configuration file.
	FileFormat string

	// InvalidFileFormatError is returned when a FileFormat value is not recognized.
	// It wraps ErrInvalidFileFormat for errors.Is() compatibility.
	InvalidFileFormatError struct {
		Value FileFormat
	}

	// InvalidLoadOptionsError is returned when LoadOptions has invalid fields.
	// It wraps ErrInvalidLoadOptions for errors.Is() compatibility.
	InvalidLoadOptionsError struct {
		FieldErrors []error
	}
)

// Formats lists the supported formats in lookup order.
func Formats() []FileFormat {
	return []FileFormat{FormatCUE, FormatTOML, FormatYAML, FormatJSON}
}

// String returns the string representation of the FileFormat.
func (f FileFormat) String() string { return string(f) }

// Validate returns nil if the FileFormat is one of the supported formats.
func (f FileFormat) Validate() error {
	switch f {
	case FormatCUE, FormatTOML, FormatYAML, FormatJSON:
		return nil
	default:
		return &InvalidFileFormatError{Value: f}
	}
}

// Error implements the error interface for InvalidFileFormatError.
func (e *InvalidFileFormatError) Error() string {
	return fmt.Sprintf("invalid config file format %q (valid: cue, toml, yaml, json)", e.Value)
}

// Unwrap returns ErrInvalidFileFormat for errors.Is() compatibility.
func (e *InvalidFileFormatError) Unwrap() error { return ErrInvalidFileFormat }

// FormatOf derives the format from a file extension; ".yml" is YAML.
func FormatOf(path string) (FileFormat, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "yml" {
		ext = string(FormatYAML)
	}
	f := FileFormat(ext)
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// Error implements the error interface for InvalidLoadOptionsError.
func (e *InvalidLoadOptionsError) Error() string {
	return fmt.Sprintf("invalid load options: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLoadOptions for errors.Is() compatibility.
func (e *InvalidLoadOptionsError) Unwrap() error { return ErrInvalidLoadOptions }
