// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/invowk/richhelp/internal/config"
	"github.com/invowk/richhelp/internal/issue"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/pkg/richhelp"
)

// staticProvider returns a fixed configuration or error.
type staticProvider struct {
	cfg *config.Config
	err error
}

func (p staticProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	return p.cfg, p.err
}

func defaultsProvider() staticProvider {
	return staticProvider{cfg: &config.Config{Help: theme.Defaults()}}
}

// run executes the CLI and returns the exit code and both streams with
// escape sequences removed.
func run(t *testing.T, provider ConfigProvider, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	app := NewApp(Dependencies{Config: provider, Stdout: &out, Stderr: &errOut})
	code = app.Run(context.Background(), append([]string{"--width", "100"}, args...))
	return code, ansi.Strip(out.String()), ansi.Strip(errOut.String())
}

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		// Test binaries report Main.Version == "(devel)".
		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout []string
		wantStderr []string
	}{
		{
			name:       "root help",
			args:       []string{"--help", "-o", "plain"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{"Usage: richhelp", "Preview Commands", "Configuration Commands", "demo", "List the built-in themes", "--theme", "--verbose"},
		},
		{
			name:       "root without command shows help",
			args:       []string{"-o", "plain"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{"Usage: richhelp"},
		},
		{
			name:       "subcommand help",
			args:       []string{"config", "show", "--help", "-o", "plain"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{"Usage: richhelp config show", "--format", "--resolved"},
		},
		{
			name:       "version",
			args:       []string{"--version"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{"richhelp version"},
		},
		{
			name:       "demo subcommand",
			args:       []string{"demo", "sync", "-o", "plain"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{"Usage: cloudctl sync", "--checksum", "Performance", "CLOUDCTL_CHECKSUM"},
		},
		{
			name:       "demo tree",
			args:       []string{"demo", "--tree", "-o", "plain"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{"bucket", "create", "sync"},
		},
		{
			name:       "demo command with tree annotation",
			args:       []string{"demo", "user", "-o", "plain"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{"keys", "rotate"},
		},
		{
			name:       "demo html",
			args:       []string{"demo", "-o", "html"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{"<!DOCTYPE html>", "cloudctl"},
		},
		{
			name:       "demo unknown sample command",
			args:       []string{"demo", "nope", "-o", "plain"},
			wantCode:   richhelp.ExitUsage,
			wantStderr: []string{`unknown sample command "nope"`, "richhelp demo --help"},
		},
		{
			name:       "unknown flag",
			args:       []string{"--bogus", "-o", "plain"},
			wantCode:   richhelp.ExitUsage,
			wantStderr: []string{"unknown flag: --bogus"},
		},
		{
			name:       "unknown subcommand flag",
			args:       []string{"demo", "--nope", "sync"},
			wantCode:   richhelp.ExitUsage,
			wantStderr: []string{"unknown flag: --nope", "richhelp demo --help"},
		},
		{
			name:       "unknown command",
			args:       []string{"nope", "-o", "plain"},
			wantCode:   richhelp.ExitUsage,
			wantStderr: []string{`unknown command "nope"`},
		},
		{
			name:       "invalid output format",
			args:       []string{"-o", "pdf", "themes"},
			wantCode:   richhelp.ExitUsage,
			wantStderr: []string{"invalid output format"},
		},
		{
			name:       "list themes",
			args:       []string{"themes"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{"Palettes", "nord", "Formats", "slim", "Combine them"},
		},
		{
			name:       "preview theme",
			args:       []string{"themes", "nord-slim", "-o", "plain"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{"Theme: nord-slim", "Usage: cloudctl sync"},
		},
		{
			name:       "preview unknown theme",
			args:       []string{"themes", "nope-nope"},
			wantCode:   richhelp.ExitFailure,
			wantStderr: []string{"Error:", "nope-nope"},
		},
		{
			name:       "config show json",
			args:       []string{"config", "show", "--format", "json"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{`"style_option": "bold cyan"`},
		},
		{
			name:       "config show cue",
			args:       []string{"config", "show"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{`usage_text: "Usage:"`},
		},
		{
			name:       "config show resolved width",
			args:       []string{"config", "show", "--resolved", "-f", "yaml"},
			wantCode:   richhelp.ExitOK,
			wantStdout: []string{"width: 100"},
		},
		{
			name:       "config show invalid format",
			args:       []string{"config", "show", "--format", "ini", "-o", "plain"},
			wantCode:   richhelp.ExitUsage,
			wantStderr: []string{"invalid config file format"},
		},
		{
			name:       "config show extra argument",
			args:       []string{"config", "show", "extra", "-o", "plain"},
			wantCode:   richhelp.ExitUsage,
			wantStderr: []string{"extra"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, stdout, stderr := run(t, defaultsProvider(), tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstdout:\n%s\nstderr:\n%s", code, tt.wantCode, stdout, stderr)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout, want) {
					t.Errorf("stdout missing %q:\n%s", want, stdout)
				}
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr, want) {
					t.Errorf("stderr missing %q:\n%s", want, stderr)
				}
			}
		})
	}
}

func TestRun_ConfigHelpKeepsPathList(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := run(t, defaultsProvider(), "config", "--help", "-o", "plain")
	if code != richhelp.ExitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	found := 0
	for _, l := range strings.Split(stdout, "\n") {
		for _, name := range []string{"Linux:", "macOS:", "Windows:"} {
			if strings.Contains(l, "- "+name) {
				found++
				if strings.Count(l, ":") > 2 {
					t.Errorf("list items joined on one line: %q", l)
				}
			}
		}
	}
	if found != 3 {
		t.Errorf("found %d path list lines, want 3:\n%s", found, stdout)
	}
}

func TestRun_ConfigLoadFailure(t *testing.T) {
	t.Parallel()

	loadErr := issue.NewErrorContext().
		WithIssue(issue.ConfigInvalidID).
		WithOperation("load configuration").
		WithResource("/etc/richhelp/config.cue").
		WithSuggestion("Check the file").
		Wrap(errors.New("width: invalid value -1")).
		BuildError()
	provider := staticProvider{err: loadErr}

	// Help still renders, with the defaults.
	code, stdout, stderr := run(t, provider, "--help", "-o", "plain")
	if code != richhelp.ExitOK {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, stderr)
	}
	if !strings.Contains(stderr, "Warning:") || !strings.Contains(stderr, "/etc/richhelp/config.cue") {
		t.Errorf("stderr should warn about the config file:\n%s", stderr)
	}
	if !strings.Contains(stdout, "Usage: richhelp") {
		t.Errorf("help missing:\n%s", stdout)
	}

	// Showing the configuration would print the defaults as if they were loaded.
	code, stdout, _ = run(t, provider, "config", "show")
	if code != richhelp.ExitFailure {
		t.Errorf("config show exit code = %d, want %d", code, richhelp.ExitFailure)
	}
	if stdout != "" {
		t.Errorf("config show printed output:\n%s", stdout)
	}
}

func TestRun_ConfigPath(t *testing.T) {
	t.Parallel()

	provider := staticProvider{cfg: &config.Config{
		Help:   theme.Defaults(),
		Path:   "/etc/richhelp/config.toml",
		Format: config.FormatTOML,
	}}
	code, stdout, _ := run(t, provider, "config", "path")
	if code != richhelp.ExitOK || strings.TrimSpace(stdout) != "/etc/richhelp/config.toml" {
		t.Errorf("config path = %d %q", code, stdout)
	}

	code, stdout, _ = run(t, defaultsProvider(), "config", "path")
	if code != richhelp.ExitOK || !strings.Contains(stdout, "using defaults") {
		t.Errorf("config path without file = %d %q", code, stdout)
	}
}

func TestRun_ConfigInit(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "richhelp")
	code, stdout, stderr := run(t, defaultsProvider(), "config", "init", "--dir", dir)
	if code != richhelp.ExitOK {
		t.Fatalf("exit code = %d\nstderr:\n%s", code, stderr)
	}
	path := filepath.Join(dir, "config.cue")
	if !strings.Contains(stdout, path) {
		t.Errorf("stdout should name %s:\n%s", path, stdout)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}

	// A regular file where the directory should be is a runtime failure.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, stderr = run(t, defaultsProvider(), "config", "init", "--dir", blocker)
	if code != richhelp.ExitFailure || !strings.Contains(stderr, "Error:") {
		t.Errorf("exit code = %d, stderr:\n%s", code, stderr)
	}
}

func TestRun_ThemeFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ocean.toml")
	content := "name = \"ocean-test\"\n\n[palette]\nstyle_option = \"bold #0077be\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := run(t, defaultsProvider(), "themes", path, "-o", "plain")
	if code != richhelp.ExitOK {
		t.Fatalf("exit code = %d\nstderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "Theme: ocean-test") {
		t.Errorf("preview header missing:\n%s", stdout)
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("boom")
	if got := formatErrorForDisplay(plain, false); got != "boom" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	ae := issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource("config.cue").
		WithSuggestion("Fix it").
		Wrap(plain).
		BuildError()
	got := formatErrorForDisplay(ae, false)
	if !strings.Contains(got, "failed to load configuration") || !strings.Contains(got, "Fix it") {
		t.Errorf("formatErrorForDisplay(actionable) = %q", got)
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := &ExitError{Code: 3, Err: cause}
	if err.Error() != "cause" || !errors.Is(err, cause) {
		t.Errorf("ExitError with cause = %q", err.Error())
	}
	if got := (&ExitError{Code: 3}).Error(); got != "exit status 3" {
		t.Errorf("ExitError without cause = %q", got)
	}
}
