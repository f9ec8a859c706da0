// SPDX-License-Identifier: MPL-2.0

package richhelp

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/invowk/richhelp/internal/tui"
	"github.com/invowk/richhelp/pkg/command"
)

func plainRenderer(opts ...Option) *Renderer {
	base := []Option{WithWidth(70), WithOverrides(map[string]any{"color_system": "none"})}
	return New(append(base, opts...)...)
}

func sampleCommand() *command.Command {
	return command.New("app").Help("Sync tool.").HelpOption().Sub(
		command.New("sync").Short("Sync files.").
			Arg("src").
			Option("--env", command.WithHelp("Target environment")).
			HelpOption(),
	).Build()
}

func TestRenderer_WriteHelp(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := plainRenderer().WriteHelp(&buf, sampleCommand(), "sync"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, " Usage: app sync [OPTIONS] SRC\n") {
		t.Errorf("usage line:\n%s", out)
	}
	if !strings.Contains(out, "Target environment") {
		t.Errorf("option row missing:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("escape sequences with color_system=none: %q", out)
	}
}

func TestRenderer_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format tui.Format
		check  func(string) bool
	}{
		{tui.FormatPlain, func(s string) bool { return !strings.Contains(s, "\x1b[") && strings.Contains(s, "Usage:") }},
		{tui.FormatHTML, func(s string) bool { return strings.HasPrefix(s, "<!DOCTYPE html>") && strings.Contains(s, "<title>app</title>") }},
		{tui.FormatSVG, func(s string) bool { return strings.Contains(s, "<svg") }},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			t.Parallel()
			out, err := New(WithWidth(60), WithFormat(tt.format)).Help(&bytes.Buffer{}, sampleCommand())
			if err != nil {
				t.Fatal(err)
			}
			if !tt.check(out) {
				t.Errorf("unexpected %s output:\n%s", tt.format, out)
			}
		})
	}

	_, err := New(WithFormat("pdf")).Help(&bytes.Buffer{}, sampleCommand())
	if !errors.Is(err, tui.ErrInvalidFormat) {
		t.Errorf("err = %v, want ErrInvalidFormat", err)
	}
}

func TestRenderer_Config(t *testing.T) {
	t.Parallel()

	r := New(
		WithConfig(Defaults()),
		WithOverrides(map[string]any{"usage_text": "USAGE:"}),
		WithTheme("nord-slim"),
		WithWidth(50),
	)
	cfg := r.Config()
	if cfg.UsageText != "USAGE:" || cfg.Width != 50 || cfg.Theme != "nord-slim" {
		t.Errorf("config = usage %q width %d theme %q", cfg.UsageText, cfg.Width, cfg.Theme)
	}
	if cfg.StyleOptionsPanelBox == Defaults().StyleOptionsPanelBox {
		t.Error("slim format was not applied")
	}
	if again := r.Config(); again.UsageText != cfg.UsageText || again.Theme != cfg.Theme {
		t.Error("Config() is not stable")
	}
}

func TestRenderer_WriteErrorAndAbort(t *testing.T) {
	t.Parallel()

	r := plainRenderer()
	var buf bytes.Buffer
	if err := r.WriteError(&buf, errors.New("No such option: --x"), sampleCommand(), "sync"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Try 'app sync --help' for help") || !strings.Contains(out, "No such option: --x") {
		t.Errorf("error screen:\n%s", out)
	}

	buf.Reset()
	if err := r.WriteAbort(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Aborted.\n" {
		t.Errorf("abort = %q", buf.String())
	}
}

func cobraTree(run func(*cobra.Command, []string) error) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	root := &cobra.Command{Use: "app", Short: "Sync tool."}
	root.AddCommand(&cobra.Command{
		Use:   "sync SRC",
		Short: "Sync files.",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	})
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	return root, &stdout, &stderr
}

func TestExecute(t *testing.T) {
	t.Parallel()

	ok := func(*cobra.Command, []string) error { return nil }

	tests := []struct {
		name     string
		args     []string
		run      func(*cobra.Command, []string) error
		code     int
		stdout   string
		stderr   []string
		sentinel error
	}{
		{name: "help", args: []string{"sync", "--help"}, run: ok, code: ExitOK, stdout: "Usage: app sync [OPTIONS] SRC"},
		{name: "unknown flag", args: []string{"sync", "a", "--bogus"}, run: ok, code: ExitUsage, stderr: []string{"Usage: app sync", "unknown flag: --bogus", "Try 'app sync --help' for help"}},
		{name: "bad arguments", args: []string{"sync"}, run: ok, code: ExitUsage, stderr: []string{"accepts 1 arg(s), received 0"}},
		{name: "unknown command", args: []string{"nope"}, run: ok, code: ExitUsage, stderr: []string{"unknown command \"nope\""}},
		{name: "aborted", args: []string{"sync", "a"}, run: func(*cobra.Command, []string) error { return context.Canceled }, code: ExitFailure, stderr: []string{"Aborted."}, sentinel: ErrAborted},
		{name: "runtime error", args: []string{"sync", "a"}, run: func(*cobra.Command, []string) error { return errors.New("disk full") }, code: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root, stdout, stderr := cobraTree(tt.run)
			root.SetArgs(tt.args)

			err := plainRenderer().Execute(context.Background(), root)
			if got := ExitCode(err); got != tt.code {
				t.Fatalf("ExitCode(%v) = %d, want %d", err, got, tt.code)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("err = %v, want %v", err, tt.sentinel)
			}
			if tt.stdout != "" && !strings.Contains(ansi.Strip(stdout.String()), tt.stdout) {
				t.Errorf("stdout missing %q:\n%s", tt.stdout, stdout.String())
			}
			for _, want := range tt.stderr {
				if !strings.Contains(ansi.Strip(stderr.String()), want) {
					t.Errorf("stderr missing %q:\n%s", want, stderr.String())
				}
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	if ExitCode(&UsageError{Err: errors.New("x")}) != ExitUsage {
		t.Error("usage error")
	}
	if ExitCode(errors.New("unknown command \"x\" for \"app\"")) != ExitUsage {
		t.Error("cobra unknown command")
	}
	if ExitCode(ErrAborted) != ExitFailure || ExitCode(nil) != ExitOK {
		t.Error("abort/nil")
	}
}
