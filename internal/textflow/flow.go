// SPDX-License-Identifier: MPL-2.0

// Package textflow turns help prose into styled paragraphs. It honors the
// authoring escapes (a form feed truncates, a leading \b keeps line breaks)
// and renders through exactly one backend: plain text with option
// highlighting, light markup tags, or markdown.
package textflow

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/internal/tui"
)

const (
	// TruncateMarker discards itself and everything after it.
	TruncateMarker = "\f"
	// PreserveMarker at the start of a paragraph keeps its line breaks.
	PreserveMarker = "\b"

	defaultParagraphBreak = "\n\n"
)

type (
	// Options selects the backend and the styles for one piece of prose.
	Options struct {
		// Markup is the active backend; MarkupUnset behaves like MarkupANSI.
		Markup theme.TextMarkup
		// Emojis substitutes ":name:" codes.
		Emojis bool
		// ParagraphBreak splits paragraphs in plain mode. Other modes always
		// split on a blank line.
		ParagraphBreak string
		// Width is passed to the markdown backend for wrapping; 0 disables it.
		Width int

		// Style applies to every paragraph but the first.
		Style lipgloss.Style
		// FirstStyle applies to the first paragraph.
		FirstStyle lipgloss.Style

		// Highlighter classifies plain text; nil disables highlighting.
		Highlighter theme.Highlighter
		// Highlights maps span kinds to their styles.
		Highlights map[theme.HighlightKind]lipgloss.Style

		// Deprecated is prepended to the first line when not empty.
		Deprecated      string
		DeprecatedStyle lipgloss.Style

		// Markdown renders a markdown document. Nil falls back to plain text.
		Markdown func(src string, width int, emoji bool) (string, error)
		// ParseStyle compiles light-markup tags. Nil leaves tags literal.
		ParseStyle func(spec string) (lipgloss.Style, error)
	}

	// Block is one rendered paragraph.
	Block struct {
		Text string
		// First marks the paragraph styled with Options.FirstStyle.
		First bool
	}
)

// Prepare applies the truncate marker, removes the common indentation and
// trims surrounding blank lines.
func Prepare(raw string) string {
	if i := strings.Index(raw, TruncateMarker); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.Trim(dedent(raw), "\n")
}

// dedent strips leading whitespace from the first line and the common
// indentation from the remaining ones.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	indent := -1
	for _, l := range lines[1:] {
		trimmed := strings.TrimLeft(l, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(l) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}
	lines[0] = strings.TrimLeft(lines[0], " \t")
	for i := 1; i < len(lines); i++ {
		l := lines[i]
		if strings.TrimSpace(l) == "" {
			lines[i] = ""
			continue
		}
		if indent > 0 {
			lines[i] = l[min(indent, len(l)):]
		}
	}
	return strings.Join(lines, "\n")
}

// Paragraphs splits prepared text on sep, dropping blank paragraphs.
func Paragraphs(text, sep string) []string {
	if sep == "" {
		sep = defaultParagraphBreak
	}
	var out []string
	for _, p := range strings.Split(text, sep) {
		p = strings.Trim(p, "\n")
		if strings.TrimSpace(strings.TrimPrefix(p, PreserveMarker)) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FirstParagraph returns the first paragraph of raw on a single line, the
// short form used in command listings.
func FirstParagraph(raw string) string {
	ps := Paragraphs(Prepare(raw), defaultParagraphBreak)
	if len(ps) == 0 {
		return ""
	}
	return collapse(ps[0])
}

// collapse joins the lines of a paragraph, unless it starts with the preserve
// marker, in which case the marker is dropped and the lines are kept.
func collapse(p string) string {
	if rest, ok := strings.CutPrefix(p, PreserveMarker); ok {
		return strings.Trim(rest, "\n")
	}
	return strings.Join(strings.Fields(p), " ")
}

// Flow renders raw into styled paragraphs. It never fails: markup that cannot
// be interpreted is rendered literally.
func Flow(raw string, o Options) []Block {
	text := Prepare(raw)

	var blocks []Block
	switch o.Markup {
	case theme.MarkupMarkdown:
		blocks = o.flowMarkdown(text)
	case theme.MarkupRich:
		blocks = o.flowParagraphs(text, defaultParagraphBreak, o.markup)
	default:
		blocks = o.flowParagraphs(text, o.ParagraphBreak, o.plain)
	}

	if o.Deprecated == "" {
		return blocks
	}
	marker := o.DeprecatedStyle.Render(o.Deprecated)
	if len(blocks) == 0 {
		return []Block{{Text: marker, First: true}}
	}
	blocks[0].Text = marker + " " + blocks[0].Text
	return blocks
}

// Render flows raw and joins the paragraphs with sep.
func Render(raw string, o Options, sep string) string {
	return Join(Flow(raw, o), sep)
}

// Join concatenates rendered blocks with sep.
func Join(blocks []Block, sep string) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.Text
	}
	return strings.Join(parts, sep)
}

// Wrapped flows raw for a block of prose: every paragraph is word-wrapped to
// width and paragraphs are separated by a blank line.
func Wrapped(raw string, o Options, width int) string {
	o.Width = width
	blocks := Flow(raw, o)
	for i := range blocks {
		blocks[i].Text = tui.Wrap(blocks[i].Text, width)
	}
	return Join(blocks, "\n\n")
}

func (o Options) flowParagraphs(text, sep string, render func(p string, base lipgloss.Style) string) []Block {
	ps := Paragraphs(text, sep)
	blocks := make([]Block, 0, len(ps))
	for i, p := range ps {
		p = collapse(p)
		if o.Emojis {
			p = Emojize(p)
		}
		base := o.Style
		if i == 0 {
			base = o.FirstStyle
		}
		blocks = append(blocks, Block{Text: render(p, base), First: i == 0})
	}
	return blocks
}

// plain renders literal text, styling highlighted spans on their own so that
// styles never nest.
func (o Options) plain(p string, base lipgloss.Style) string {
	if o.Highlighter == nil {
		return renderLines(base, p)
	}
	var b strings.Builder
	for _, sp := range o.Highlighter.Spans(p) {
		st := base
		if sp.Kind != theme.HighlightNone {
			if hl, ok := o.Highlights[sp.Kind]; ok {
				st = hl.Inherit(base)
			}
		}
		b.WriteString(renderLines(st, sp.Text))
	}
	return b.String()
}

// renderLines styles each line separately and keeps the line breaks intact.
func renderLines(st lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = st.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}
