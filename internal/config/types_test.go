// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestFileFormat_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  FileFormat
		wantErr bool
	}{
		{FormatCUE, false},
		{FormatTOML, false},
		{FormatYAML, false},
		{FormatJSON, false},
		{"", true},
		{"yml", true},
		{"CUE", true},
		{"ini", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			err := tt.format.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("FileFormat(%q).Validate() error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, ErrInvalidFileFormat) {
				t.Errorf("error should wrap ErrInvalidFileFormat, got: %v", err)
			}
			var formatErr *InvalidFileFormatError
			if !errors.As(err, &formatErr) || formatErr.Value != tt.format {
				t.Errorf("error should be *InvalidFileFormatError for %q, got: %v", tt.format, err)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    FileFormat
		wantErr bool
	}{
		{"config.cue", FormatCUE, false},
		{"/etc/richhelp/config.toml", FormatTOML, false},
		{"config.yaml", FormatYAML, false},
		{"config.yml", FormatYAML, false},
		{"CONFIG.JSON", FormatJSON, false},
		{"config", "", true},
		{"config.ini", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := FormatOf(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatOf(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()

	formats := Formats()
	if len(formats) != 4 || formats[0] != FormatCUE {
		t.Errorf("Formats() = %v, want cue first of four", formats)
	}
	for _, f := range formats {
		if err := f.Validate(); err != nil {
			t.Errorf("Formats() lists invalid format %q: %v", f, err)
		}
	}
}
