// SPDX-License-Identifier: MPL-2.0

package help

import (
	"strings"

	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/internal/tui"
	"github.com/invowk/richhelp/pkg/command"
)

const (
	// DefaultOptionsMetavar stands for the options in the usage line.
	DefaultOptionsMetavar = "[OPTIONS]"
	// DefaultSubcommandMetavar stands for the subcommand in the usage line.
	DefaultSubcommandMetavar = "COMMAND [ARGS]..."
)

// UsagePieces returns the fragments following the command path in the usage
// line: the options placeholder, one fragment per argument and the
// subcommand placeholder. Optional arguments are bracketed and variadic ones
// carry an ellipsis.
func UsagePieces(n command.Node) []string {
	info := n.Info()
	var pieces []string

	hasOptions := false
	for _, p := range n.Parameters() {
		if !p.IsArgument() && !p.Hidden {
			hasOptions = true
			break
		}
	}
	if hasOptions {
		pieces = append(pieces, orDefault(info.OptionsMetavar, DefaultOptionsMetavar))
	}

	for _, p := range n.Parameters() {
		if !p.IsArgument() {
			continue
		}
		piece := p.Label()
		if !p.Required {
			piece = "[" + piece + "]"
		}
		if p.Nargs < 0 || p.Nargs > 1 {
			piece += "..."
		}
		pieces = append(pieces, piece)
	}

	if info.Group {
		pieces = append(pieces, orDefault(info.SubcommandMetavar, DefaultSubcommandMetavar))
	}
	return pieces
}

// usage renders "Usage: app sync [OPTIONS] SRC DEST".
func (c *Composer) usage(ctx Context) string {
	parts := []string{c.styles.Usage.Render(c.cfg.UsageText), c.styles.UsageCommand.Render(ctx.Path())}
	if pieces := UsagePieces(ctx.Command()); len(pieces) > 0 {
		parts = append(parts, strings.Join(pieces, " "))
	}
	return " " + strings.Join(parts, " ")
}

// Error renders the screen for a usage error: usage line, a hint pointing at
// the help option, the message in an error panel and the configured
// epilogue.
func (c *Composer) Error(ctx Context, err error) string {
	var b strings.Builder
	writeBlock(&b, c.usage(ctx)+c.suggestion(ctx))

	look := panelLook{
		border: c.styles.ErrorsPanelBorder,
		title:  c.styles.ErrorsPanelBorder,
		frame:  theme.BoxOrDefault(c.cfg.StyleErrorsPanelBox).Frame(),
		align:  alignOrDefault(c.cfg.AlignErrorsPanel),
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	writeBlock(&b, c.wrapPanel(msg, c.cfg.ErrorsPanelTitle, look))

	if c.cfg.ErrorsEpilogue != "" {
		writeBlock(&b, c.prose(c.cfg.ErrorsEpilogue, c.styles.FooterText, c.styles.FooterText, "", c.console.Width()))
	}
	return b.String()
}

// suggestion returns the hint line, prefixed by a line break, or "" when
// there is nothing to suggest.
func (c *Composer) suggestion(ctx Context) string {
	if c.cfg.ErrorsSuggestion != "" {
		text := c.prose(c.cfg.ErrorsSuggestion, c.styles.ErrorsSuggestion, c.styles.ErrorsSuggestion, "", c.console.Width()-1)
		return "\n" + tui.Indent(text, 1)
	}
	opt := helpOption(ctx.Command())
	if opt == "" {
		return ""
	}
	cmd := c.styles.ErrorsSuggestionCommand.Render("'" + ctx.Path() + " " + opt + "'")
	return "\n " + c.styles.ErrorsSuggestion.Render("Try ") + cmd + c.styles.ErrorsSuggestion.Render(" for help")
}

// helpOption returns the preferred invocation of the command's help option.
func helpOption(n command.Node) string {
	for _, p := range n.Parameters() {
		if !p.HelpOption {
			continue
		}
		for _, o := range p.Opts {
			if strings.HasPrefix(o, "--") {
				return o
			}
		}
		if len(p.Opts) > 0 {
			return p.Opts[0]
		}
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
