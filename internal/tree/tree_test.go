// SPDX-License-Identifier: MPL-2.0

package tree

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/invowk/richhelp/internal/columns"
	"github.com/invowk/richhelp/internal/textflow"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/internal/tui"
	"github.com/invowk/richhelp/pkg/command"
)

func options(t *testing.T, width int, colors string) Options {
	t.Helper()
	con := tui.NewConsole(&bytes.Buffer{}, tui.ConsoleOptions{Width: width, ColorSystem: colors})
	cfg := theme.Defaults()
	sections, err := theme.HelpSections(cfg.OptionsTableHelpSections)
	if err != nil {
		t.Fatal(err)
	}
	return Options{
		Console: con,
		Columns: columns.Context{
			Config:   cfg,
			Styles:   theme.Compile(cfg, con.Renderer()),
			Flow:     textflow.Options{Markup: cfg.Markup()},
			Sections: sections,
		},
	}
}

func sample() *command.Command {
	return command.New("app").Help("Root tool.").Sub(
		command.New("sync").Short("Sync files.").
			Flag("--dry-run", command.WithHelp("Do nothing.")).
			Sub(command.New("push").Short("Push.")),
		command.New("serve").Short("Serve files over HTTP to every client on the network."),
		command.New("debug").Short("Internal.").Hide(),
	).Build()
}

func TestRender_SharedAlignment(t *testing.T) {
	t.Parallel()

	root := sample()
	o := options(t, 80, tui.ColorNone)
	o.Usage = "Usage: app sync [OPTIONS]"

	got := ansi.Strip(Render(command.Lookup(root, "sync"), o))
	want := strings.Join([]string{
		"Usage: app sync [OPTIONS]",
		"",
		"Options",
		"--dry-run     Do nothing.",
		"",
		"Commands",
		"app           Root tool.",
		"├── sync      Sync files.",
		"│   └── push  Push.",
		"└── serve     Serve files over HTTP to every client on the network.",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_WrapKeepsColumn(t *testing.T) {
	t.Parallel()

	o := options(t, 40, tui.ColorNone)
	got := ansi.Strip(Render(command.Lookup(sample()), o))

	found := false
	for _, line := range strings.Split(got, "\n") {
		if strings.TrimSpace(line) == "every client on the" {
			found = true
			if indent := len(line) - len(strings.TrimLeft(line, " ")); indent != 14 {
				t.Errorf("continuation starts at column %d, want 14: %q", indent, line)
			}
		}
	}
	if !found {
		t.Errorf("help was not wrapped as expected:\n%s", got)
	}
}

func TestRender_DepthLimit(t *testing.T) {
	t.Parallel()

	b := command.New("lvl7")
	for i := 6; i >= 0; i-- {
		b = command.New(fmt.Sprintf("lvl%d", i)).Sub(b)
	}
	got := ansi.Strip(Render(command.Lookup(b.Build()), options(t, 80, tui.ColorNone)))

	if !strings.Contains(got, "… 2 more level(s)") {
		t.Errorf("missing truncation notice:\n%s", got)
	}
	if !strings.Contains(got, "lvl5") || strings.Contains(got, "lvl6") {
		t.Errorf("depth limit not applied:\n%s", got)
	}
}

func TestRender_ActivePath(t *testing.T) {
	t.Parallel()

	o := options(t, 80, tui.ColorTrueColor)
	out := Render(command.Lookup(sample(), "sync"), o)

	for _, line := range strings.Split(out, "\n") {
		plain := ansi.Strip(line)
		switch {
		case strings.Contains(plain, "sync"):
			if !strings.Contains(line, "\x1b[1m") {
				t.Errorf("active node not bold: %q", line)
			}
		case strings.Contains(plain, "serve"):
			if !strings.Contains(line, "\x1b[2m") {
				t.Errorf("inactive node not dimmed: %q", line)
			}
		}
	}
}

func TestRender_Deprecated(t *testing.T) {
	t.Parallel()

	root := command.New("app").Sub(command.New("old").Short("Legacy.").Deprecate("")).Build()
	got := ansi.Strip(Render(command.Lookup(root), options(t, 80, tui.ColorNone)))
	if !strings.Contains(got, "└── old  [deprecated] Legacy.") {
		t.Errorf("deprecated node:\n%s", got)
	}
}
