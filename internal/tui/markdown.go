// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Markdown renders src with glamour, wrapped to width cells (0 disables
// wrapping). Document margins are removed so the output can be placed inside
// panels and table cells.
func (c *Console) Markdown(src string, width int, emoji bool) (string, error) {
	cfg := markdownStyle(c.profile)
	opts := []glamour.TermRendererOption{
		glamour.WithStyles(cfg),
		glamour.WithColorProfile(c.profile),
		glamour.WithWordWrap(max(width, 0)),
	}
	if emoji {
		opts = append(opts, glamour.WithEmoji())
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(src)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return tidy(out), nil
}

func markdownStyle(profile termenv.Profile) glamouransi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if profile == termenv.Ascii {
		cfg = styles.NoTTYStyleConfig
	}
	var zero uint
	cfg.Document.Margin = &zero
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""
	cfg.Document.Color = nil
	cfg.Paragraph.Margin = &zero
	return cfg
}

var trailingPad = regexp.MustCompile(`(?:[ ]|\x1b\[[0-9;]*m)+$`)

// tidy strips trailing padding and surrounding blank lines from glamour output.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = trimPadding(l)
	}
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(ansi.Strip(lines[start])) == "" {
		start++
	}
	for end > start && strings.TrimSpace(ansi.Strip(lines[end-1])) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// trimPadding drops trailing spaces interleaved with SGR sequences, closing the
// line with a reset when any sequence was dropped.
func trimPadding(line string) string {
	loc := trailingPad.FindStringIndex(line)
	if loc == nil {
		return line
	}
	tail := line[loc[0]:]
	line = line[:loc[0]]
	if strings.Contains(tail, "\x1b[") && line != "" {
		line += "\x1b[0m"
	}
	return line
}
