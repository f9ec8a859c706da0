// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"strings"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
	// SkipWorkDir disables the fallback lookup in the working directory.
	SkipWorkDir bool
}

// Validate rejects whitespace-only paths.
func (o LoadOptions) Validate() error {
	var errs []error
	if o.ConfigFilePath != "" && strings.TrimSpace(o.ConfigFilePath) == "" {
		errs = append(errs, errors.New("config file path must not be blank"))
	}
	if o.ConfigDirPath != "" && strings.TrimSpace(o.ConfigDirPath) == "" {
		errs = append(errs, errors.New("config dir path must not be blank"))
	}
	if len(errs) > 0 {
		return &InvalidLoadOptionsError{FieldErrors: errs}
	}
	return nil
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return loadWithOptions(ctx, opts)
}
