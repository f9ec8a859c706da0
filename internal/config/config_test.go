// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/invowk/richhelp/internal/issue"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/pkg/command"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func load(t *testing.T, opts LoadOptions) (*Config, error) {
	t.Helper()

	opts.SkipWorkDir = true
	return NewProvider().Load(context.Background(), opts)
}

func TestLoad_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		format  FileFormat
	}{
		{
			name: "cue",
			file: "config.cue",
			content: `width: 100
style_options_panel_box: "heavy"
panels: "app sync": [{name: "Tuning", members: ["--jobs"]}]
`,
			format: FormatCUE,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `width = 100
style_options_panel_box = "heavy"

[[panels."app sync"]]
name = "Tuning"
members = ["--jobs"]
`,
			format: FormatTOML,
		},
		{
			name: "yaml",
			file: "config.yaml",
			content: `width: 100
style_options_panel_box: heavy
panels:
  app sync:
    - name: Tuning
      members: ["--jobs"]
`,
			format: FormatYAML,
		},
		{
			name: "yml",
			file: "config.yml",
			content: `width: 100
style_options_panel_box: heavy
panels:
  app sync:
    - name: Tuning
      members: ["--jobs"]
`,
			format: FormatYAML,
		},
		{
			name:    "json",
			file:    "config.json",
			content: `{"width": 100, "style_options_panel_box": "heavy", "panels": {"app sync": [{"name": "Tuning", "members": ["--jobs"]}]}}`,
			format:  FormatJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeConfig(t, dir, tt.file, tt.content)

			cfg, err := load(t, LoadOptions{ConfigDirPath: dir})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Path != path {
				t.Errorf("Path = %q, want %q", cfg.Path, path)
			}
			if cfg.Format != tt.format {
				t.Errorf("Format = %q, want %q", cfg.Format, tt.format)
			}
			if cfg.Help.Width != 100 {
				t.Errorf("Width = %d, want 100", cfg.Help.Width)
			}
			if cfg.Help.StyleOptionsPanelBox != "heavy" {
				t.Errorf("StyleOptionsPanelBox = %q, want heavy", cfg.Help.StyleOptionsPanelBox)
			}
			// Untouched keys keep the library defaults.
			if cfg.Help.StyleOption != theme.Defaults().StyleOption {
				t.Errorf("StyleOption = %q, want default %q", cfg.Help.StyleOption, theme.Defaults().StyleOption)
			}
			specs := cfg.Help.Panels["app sync"]
			if len(specs) != 1 || specs[0].Name != "Tuning" || !slices.Equal(specs[0].Members, []string{"--jobs"}) {
				t.Errorf("Panels[app sync] = %+v", specs)
			}
		})
	}
}

func TestLoad_LookupOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "config.json", `{"width": 60}`)
	cuePath := writeConfig(t, dir, "config.cue", "width: 80\n")

	cfg, err := load(t, LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != cuePath || cfg.Help.Width != 80 {
		t.Errorf("got %q width %d, want %q width 80", cfg.Path, cfg.Help.Width, cuePath)
	}

	// An explicit file wins over the directory lookup.
	explicit := writeConfig(t, t.TempDir(), "help.yaml", "width: 42\n")
	cfg, err = load(t, LoadOptions{ConfigFilePath: explicit, ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != explicit || cfg.Help.Width != 42 {
		t.Errorf("got %q width %d, want %q width 42", cfg.Path, cfg.Help.Width, explicit)
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Parallel()

	cfg, err := load(t, LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != "" || cfg.Format != "" {
		t.Errorf("Path = %q, Format = %q, want empty", cfg.Path, cfg.Format)
	}
	def := theme.Defaults()
	if cfg.Help.StyleOption != def.StyleOption || cfg.Help.UsageText != def.UsageText {
		t.Errorf("Help does not match defaults: %+v", cfg.Help)
	}
	if !slices.Equal(cfg.Help.OptionsTableColumnTypes, def.OptionsTableColumnTypes) {
		t.Errorf("OptionsTableColumnTypes = %v, want %v", cfg.Help.OptionsTableColumnTypes, def.OptionsTableColumnTypes)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, err := load(t, LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("Load() should fail for a missing explicit file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error should be *issue.ActionableError, got %T", err)
	}
	if ae.Issue != issue.ConfigNotFoundID {
		t.Errorf("Issue = %d, want ConfigNotFoundID", ae.Issue)
	}
	if ae.Resource != missing {
		t.Errorf("Resource = %q, want %q", ae.Resource, missing)
	}
	if len(ae.Suggestions) == 0 {
		t.Error("expected suggestions")
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "config.ini", "width=1\n")
	_, err := load(t, LoadOptions{ConfigFilePath: path})
	if !errors.Is(err, ErrInvalidFileFormat) {
		t.Fatalf("error should wrap ErrInvalidFileFormat, got %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		content  string
		contains []string
	}{
		{
			name:     "unknown box",
			file:     "config.cue",
			content:  `style_options_panel_box: "wavy"` + "\n",
			contains: []string{"style_options_panel_box"},
		},
		{
			name:     "unknown key",
			file:     "config.yaml",
			content:  "colour: red\n",
			contains: []string{"colour"},
		},
		{
			name:     "negative width",
			file:     "config.json",
			content:  `{"width": -3}`,
			contains: []string{"width"},
		},
		{
			name:     "bad panel align",
			file:     "config.toml",
			content:  "[[panels.\"app sync\"]]\nname = \"Tuning\"\nalign = \"middle\"\n",
			contains: []string{"panels", "align"},
		},
		{
			name:     "cue syntax",
			file:     "config.cue",
			content:  "width: \n",
			contains: []string{"config.cue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeConfig(t, dir, tt.file, tt.content)
			_, err := load(t, LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("Load() should fail")
			}

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("error should be *issue.ActionableError, got %T", err)
			}
			if ae.Issue != issue.ConfigInvalidID {
				t.Errorf("Issue = %d, want ConfigInvalidID", ae.Issue)
			}
			msg := err.Error()
			if !strings.Contains(msg, path) {
				t.Errorf("error %q should mention %q", msg, path)
			}
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("error %q should mention %q", msg, want)
				}
			}
		})
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir(), SkipWorkDir: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error should wrap context.Canceled, got %v", err)
	}
}

func TestLoad_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: "  "})
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Fatalf("error should wrap ErrInvalidLoadOptions, got %v", err)
	}
}

// Not parallel: t.Setenv modifies the process environment.
func TestLoad_Environment(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.cue", "width: 100\nusage_text: \"Run:\"\n")

	t.Setenv(EnvVar("width"), "90")
	t.Setenv(EnvVar("options_table_column_types"), "opt_long,help")
	t.Setenv(EnvVar("show_arguments"), "true")
	t.Setenv("RICHHELP_THEME", "nord-slim")

	cfg, err := load(t, LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Help.Width != 90 {
		t.Errorf("Width = %d, want 90 from the environment", cfg.Help.Width)
	}
	if cfg.Help.UsageText != "Run:" {
		t.Errorf("UsageText = %q, want the file value", cfg.Help.UsageText)
	}
	if !slices.Equal(cfg.Help.OptionsTableColumnTypes, []string{"opt_long", "help"}) {
		t.Errorf("OptionsTableColumnTypes = %v", cfg.Help.OptionsTableColumnTypes)
	}
	if !cfg.Help.ShowArguments {
		t.Error("ShowArguments should be true")
	}
	// The theme variable is left to the resolver.
	if cfg.Help.Theme != "" {
		t.Errorf("Theme = %q, want empty", cfg.Help.Theme)
	}
}

func TestEnvVar(t *testing.T) {
	t.Parallel()

	if got := EnvVar("style_option"); got != "RICHHELP_STYLE_OPTION" {
		t.Errorf("EnvVar() = %q", got)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	src := theme.Defaults()
	src.Width = 88
	src.StyleCommandsPanelBox = "double"
	src.Panels = map[string][]command.PanelSpec{
		"app sync": {{Name: "Tuning", Kind: command.PanelParams, Members: []string{"--jobs"}, Align: "right"}},
	}
	src.CommandGroups = map[string][]theme.GroupSpec{
		"app": {{Name: "Data", Commands: []string{"sync"}}},
	}

	for _, format := range Formats() {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			data, err := Encode(src, format)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			dir := t.TempDir()
			writeConfig(t, dir, ConfigFileName+"."+string(format), string(data))

			cfg, err := load(t, LoadOptions{ConfigDirPath: dir})
			if err != nil {
				t.Fatalf("Load() error = %v\n%s", err, data)
			}
			got := cfg.Help
			if got.Width != 88 || got.StyleCommandsPanelBox != "double" {
				t.Errorf("Width = %d, StyleCommandsPanelBox = %q", got.Width, got.StyleCommandsPanelBox)
			}
			specs := got.Panels["app sync"]
			if len(specs) != 1 || specs[0].Kind != command.PanelParams || specs[0].Align != "right" {
				t.Errorf("Panels[app sync] = %+v", specs)
			}
			groups := got.CommandGroups["app"]
			if len(groups) != 1 || !slices.Equal(groups[0].Commands, []string{"sync"}) {
				t.Errorf("CommandGroups[app] = %+v", groups)
			}
		})
	}
}

func TestEncode_InvalidFormat(t *testing.T) {
	t.Parallel()

	if _, err := Encode(theme.Defaults(), "ini"); !errors.Is(err, ErrInvalidFileFormat) {
		t.Fatalf("error should wrap ErrInvalidFileFormat, got %v", err)
	}
}

func TestGenerateCUE(t *testing.T) {
	t.Parallel()

	out := GenerateCUE(theme.Defaults())
	if !strings.Contains(out, `style_option: "bold cyan"`+"\n") {
		t.Errorf("missing style_option line:\n%s", out)
	}
	if strings.Contains(out, "force_terminal") {
		t.Error("unset three-state keys should be omitted")
	}
	// Keys follow declaration order.
	if strings.Index(out, "style_option:") > strings.Index(out, "width:") {
		t.Error("style_option should precede width")
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", AppName)
	path, err := CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}

	cfg, err := load(t, LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Help.UsageText != theme.Defaults().UsageText {
		t.Errorf("UsageText = %q", cfg.Help.UsageText)
	}

	// An existing file is left alone.
	if err := os.WriteFile(path, []byte("width: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	again, err := CreateDefaultConfig(dir)
	if err != nil || again != path {
		t.Fatalf("CreateDefaultConfig() = %q, %v", again, err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "width: 7\n" {
		t.Errorf("existing config was overwritten: %q", data)
	}
}

func TestConfigDir(t *testing.T) {
	t.Parallel()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("ConfigDir() = %q, want a %s directory", dir, AppName)
	}
}
