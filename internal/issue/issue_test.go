// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/invowk/richhelp/internal/tui"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	all := Values()
	if len(all) == 0 {
		t.Fatal("empty catalog")
	}
	for i, is := range all {
		if is.ID() != ID(i+1) {
			t.Errorf("article %d has ID %d", i, is.ID())
		}
		if Get(is.ID()) != is {
			t.Errorf("Get(%d) does not return the article", is.ID())
		}
		if !strings.Contains(is.Markdown(), "# ") {
			t.Errorf("article %d has no heading", is.ID())
		}
	}
	if Get(0) != nil {
		t.Error("ID 0 must not resolve")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	con := tui.NewConsole(&bytes.Buffer{}, tui.ConsoleOptions{Width: 60, ColorSystem: tui.ColorNone})
	out, err := Get(ConfigNotFoundID).Render(con)
	if err != nil {
		t.Fatal(err)
	}
	plain := ansi.Strip(out)
	if !strings.Contains(plain, "Configuration file not found") {
		t.Errorf("heading missing:\n%s", plain)
	}
	if !strings.Contains(plain, "See also") || !strings.Contains(plain, "github.com/invowk/richhelp") {
		t.Errorf("links missing:\n%s", plain)
	}
}
