// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/invowk/richhelp/internal/issue"
	"github.com/invowk/richhelp/internal/theme"
)

const (
	// AppName is the application name.
	AppName = "richhelp"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// EnvPrefix prefixes the environment variable of every flat key.
	EnvPrefix = "RICHHELP"
)

// Config is a loaded configuration and where it came from.
type Config struct {
	// Help is the help configuration: library defaults, then the file, then
	// the environment. Themes are not applied yet.
	Help theme.Config
	// Path is the file read, or empty when none was found.
	Path string
	// Format is the format of Path.
	Format FileFormat
}

// ConfigDir returns the richhelp configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// EnvVar returns the environment variable that sets key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

// loadWithOptions layers the library defaults, the located file and the
// environment in a fresh Viper instance.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	for key, value := range theme.Defaults().ToMap() {
		v.SetDefault(key, value)
	}
	bindEnv(v)

	path, format, err := locate(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		settings, err := readFile(path, format)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithIssue(issue.ConfigInvalidID).
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check the keys and values against 'richhelp config show'").
				WithSuggestion("See 'richhelp config --help' for the supported formats").
				Wrap(err).
				BuildError()
		}
		if err := v.MergeConfigMap(settings); err != nil {
			return nil, fmt.Errorf("failed to merge config: %w", err)
		}
	}

	help, err := theme.FromMap(v.AllSettings())
	if err != nil {
		return nil, issue.NewErrorContext().
			WithIssue(issue.ConfigInvalidID).
			WithOperation("decode configuration").
			WithResource(path).
			WithSuggestion("Check the RICHHELP_* environment variables").
			Wrap(err).
			BuildError()
	}
	return &Config{Help: help, Path: path, Format: format}, nil
}

// bindEnv binds RICHHELP_<KEY> for every scalar and list key. The theme key
// is left out so RICHHELP_THEME stays gated by enable_theme_env_var.
func bindEnv(v *viper.Viper) {
	for _, key := range theme.Keys() {
		switch key {
		case "theme", "panels", "option_groups", "command_groups":
			continue
		}
		_ = v.BindEnv(key, EnvVar(key))
	}
}

// locate finds the configuration file: the explicit path, then
// config.<ext> in the config directory, then in the working directory.
func locate(opts LoadOptions) (string, FileFormat, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", "", issue.NewErrorContext().
				WithIssue(issue.ConfigNotFoundID).
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'richhelp config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		format, err := FormatOf(opts.ConfigFilePath)
		if err != nil {
			return "", "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Use a .cue, .toml, .yaml or .json file").
				Wrap(err).
				BuildError()
		}
		return opts.ConfigFilePath, format, nil
	}

	dir := opts.ConfigDirPath
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return "", "", err
		}
		dir = d
	}
	dirs := []string{dir}
	if !opts.SkipWorkDir {
		dirs = append(dirs, ".")
	}
	for _, d := range dirs {
		for _, ext := range []string{"cue", "toml", "yaml", "yml", "json"} {
			candidate := filepath.Join(d, ConfigFileName+"."+ext)
			if fileExists(candidate) {
				format, _ := FormatOf(candidate)
				return candidate, format, nil
			}
		}
	}
	return "", "", nil
}

// readFile decodes a configuration file into flat settings validated against
// the schema.
func readFile(path string, format FileFormat) (map[string]any, error) {
	if format == FormatCUE {
		return loadCUEFile(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, info.Size(), maxFileSize)
	}

	fv := viper.New()
	fv.SetConfigFile(path)
	fv.SetConfigType(string(format))
	if err := fv.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	settings := fv.AllSettings()
	if err := validateSettings(settings, path); err != nil {
		return nil, err
	}
	return settings, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes config.cue with the library defaults into dir
// unless a configuration file already exists there. It returns the path of
// the file in place.
func CreateDefaultConfig(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if path, _, err := locate(LoadOptions{ConfigDirPath: dir, SkipWorkDir: true}); err != nil || path != "" {
		return path, err
	}

	path := filepath.Join(dir, ConfigFileName+"."+string(FormatCUE))
	if err := os.WriteFile(path, []byte(GenerateCUE(theme.Defaults())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// GenerateCUE renders cfg as a config.cue file, one flat key per line in
// declaration order.
func GenerateCUE(cfg theme.Config) string {
	var sb strings.Builder
	sb.WriteString("// richhelp configuration file\n")
	sb.WriteString("// See https://github.com/invowk/richhelp for documentation.\n\n")

	settings, err := plainSettings(cfg)
	if err != nil {
		// Panel and group specs always encode; keep the scalar keys regardless.
		settings = cfg.ToMap()
	}
	for _, key := range theme.Keys() {
		value, ok := settings[key]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", key, cueLiteral(value))
	}
	return sb.String()
}

// cueLiteral formats a value as CUE. JSON is a subset of CUE's value syntax.
func cueLiteral(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Encode renders cfg in the given format.
func Encode(cfg theme.Config, format FileFormat) ([]byte, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if format == FormatCUE {
		return []byte(GenerateCUE(cfg)), nil
	}

	settings, err := plainSettings(cfg)
	if err != nil {
		return nil, err
	}
	var out []byte
	switch format {
	case FormatTOML:
		out, err = toml.Marshal(settings)
	case FormatYAML:
		out, err = yaml.Marshal(settings)
	default:
		out, err = json.MarshalIndent(settings, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return nil, fmt.Errorf("encode configuration as %s: %w", format, err)
	}
	return out, nil
}

// plainSettings flattens cfg into maps, slices and scalars. Panel and group
// specs are converted through their JSON tags so every encoder sees the
// same snake_case keys.
func plainSettings(cfg theme.Config) (map[string]any, error) {
	settings := cfg.ToMap()
	var errs []error
	for _, key := range []string{"panels", "option_groups", "command_groups"} {
		value, ok := settings[key]
		if !ok {
			continue
		}
		data, err := json.Marshal(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		var plain map[string]any
		if err := json.Unmarshal(data, &plain); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		settings[key] = plain
	}
	return settings, errors.Join(errs...)
}
