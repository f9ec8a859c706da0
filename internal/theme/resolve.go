// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ThemeEnvVar names the environment variable consulted when no theme is set.
const ThemeEnvVar = "RICHHELP_THEME"

type (
	// ResolveOption customizes Resolve.
	ResolveOption func(*resolveOptions)

	resolveOptions struct {
		lookupEnv func(string) (string, bool)
	}
)

// WithEnvLookup replaces os.LookupEnv for the theme environment variable.
func WithEnvLookup(fn func(string) (string, bool)) ResolveOption {
	return func(o *resolveOptions) { o.lookupEnv = fn }
}

// Resolve layers overrides and a theme onto base. Overrides are written
// unconditionally; theme values only land on fields that still hold their
// library default, so explicit settings always win.
//
// The theme name comes from themeName, then the "theme" key, then
// RICHHELP_THEME when enable_theme_env_var is on. A name starting with "{" is
// an inline JSON object of flat keys; if it does not parse, a warning is logged
// and no theme is applied. An unknown name returns the partially resolved
// configuration together with a *ThemeNotFoundError.
func Resolve(base Config, overrides map[string]any, themeName string, opts ...ResolveOption) (Config, error) {
	o := resolveOptions{lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := base
	if len(overrides) > 0 {
		unused, err := decodeInto(&cfg, overrides)
		if err != nil {
			return base, fmt.Errorf("apply overrides: %w", err)
		}
		for _, k := range unused {
			logger.Warn("ignoring unknown configuration key", "key", k)
		}
	}

	name := strings.TrimSpace(themeName)
	if name == "" {
		name = strings.TrimSpace(cfg.Theme)
	}
	if name == "" && cfg.EnableThemeEnvVar && o.lookupEnv != nil {
		if v, ok := o.lookupEnv(ThemeEnvVar); ok {
			name = strings.TrimSpace(v)
		}
	}
	if name == "" {
		return cfg, nil
	}

	values, err := themeValues(name)
	if err != nil {
		var jsonErr *inlineThemeError
		if errors.As(err, &jsonErr) {
			logger.Warn("ignoring malformed inline theme", "err", jsonErr.err)
			return cfg, nil
		}
		return cfg, err
	}
	applyUntouched(&cfg, values)
	cfg.Theme = name
	return cfg, nil
}

// MustResolve resolves with a fallback: an unknown theme is logged and the
// configuration is returned without it.
func MustResolve(base Config, overrides map[string]any, themeName string, opts ...ResolveOption) Config {
	cfg, err := Resolve(base, overrides, themeName, opts...)
	if err != nil {
		logger.Warn("using default theme", "err", err)
	}
	return cfg
}

type inlineThemeError struct{ err error }

func (e *inlineThemeError) Error() string { return "inline theme: " + e.err.Error() }
func (e *inlineThemeError) Unwrap() error { return e.err }

func themeValues(name string) (map[string]any, error) {
	if strings.HasPrefix(name, "{") {
		var values map[string]any
		if err := json.Unmarshal([]byte(name), &values); err != nil {
			return nil, &inlineThemeError{err: err}
		}
		return values, nil
	}
	return lookup(name)
}
