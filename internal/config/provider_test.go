// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       LoadOptions
		wantFields int
	}{
		{"all empty", LoadOptions{}, 0},
		{"all valid", LoadOptions{ConfigFilePath: "/tmp/config.cue", ConfigDirPath: "/tmp/richhelp", SkipWorkDir: true}, 0},
		{"blank file path", LoadOptions{ConfigFilePath: "   "}, 1},
		{"blank dir path", LoadOptions{ConfigDirPath: "\t"}, 1},
		{"both blank", LoadOptions{ConfigFilePath: " ", ConfigDirPath: "\n"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantFields == 0 {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidLoadOptions) {
				t.Fatalf("error should wrap ErrInvalidLoadOptions, got: %v", err)
			}
			var loadErr *InvalidLoadOptionsError
			if !errors.As(err, &loadErr) {
				t.Fatalf("error should be *InvalidLoadOptionsError, got: %T", err)
			}
			if len(loadErr.FieldErrors) != tt.wantFields {
				t.Errorf("expected %d field errors, got %d", tt.wantFields, len(loadErr.FieldErrors))
			}
		})
	}
}
