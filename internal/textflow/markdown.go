// SPDX-License-Identifier: MPL-2.0

package textflow

import (
	"regexp"
	"strings"
)

var (
	listItem = regexp.MustCompile(`^\s*([-*+]|\d+[.)])\s`)
	fence    = regexp.MustCompile("^\\s*(```|~~~)")
)

// flowMarkdown renders the whole document at once so lists and code blocks
// keep their structure. Without a markdown renderer, or when rendering fails,
// the text falls back to the plain backend.
func (o Options) flowMarkdown(text string) []Block {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if o.Markdown == nil {
		return o.flowParagraphs(text, defaultParagraphBreak, o.plain)
	}
	out, err := o.Markdown(normalizeMarkdown(text), o.Width, o.Emojis)
	if err != nil || strings.TrimSpace(out) == "" {
		return o.flowParagraphs(text, defaultParagraphBreak, o.plain)
	}
	return []Block{{Text: out, First: true}}
}

// normalizeMarkdown collapses soft line breaks inside ordinary paragraphs and
// turns preserve-marked paragraphs into hard breaks. Fenced code, lists,
// quotes, headings, tables and indented code keep their lines.
func normalizeMarkdown(text string) string {
	paras := strings.Split(text, defaultParagraphBreak)
	inFence := false
	for i, p := range paras {
		if rest, ok := strings.CutPrefix(p, PreserveMarker); ok && !inFence {
			paras[i] = strings.Join(strings.Split(rest, "\n"), "  \n")
			continue
		}
		paras[i], inFence = joinSoftBreaks(p, inFence)
	}
	return strings.Join(paras, defaultParagraphBreak)
}

// joinSoftBreaks joins continuation lines of one paragraph with a space. It
// tracks fenced code across paragraphs.
func joinSoftBreaks(p string, inFence bool) (string, bool) {
	lines := strings.Split(p, "\n")
	out := make([]string, 0, len(lines))
	joinable := false
	for _, l := range lines {
		if fence.MatchString(l) {
			inFence = !inFence
			out = append(out, l)
			joinable = false
			continue
		}
		if inFence || structural(l) {
			out = append(out, l)
			joinable = !inFence && listItem.MatchString(l)
			continue
		}
		if joinable && len(out) > 0 {
			out[len(out)-1] += " " + strings.TrimSpace(l)
		} else {
			out = append(out, l)
		}
		joinable = !hardBreak(l)
	}
	return strings.Join(out, "\n"), inFence
}

// structural reports whether a line starts its own markdown block.
func structural(l string) bool {
	trimmed := strings.TrimLeft(l, " ")
	switch {
	case trimmed == "":
		return true
	case strings.HasPrefix(l, "\t") || len(l)-len(trimmed) >= 4:
		return true
	case strings.HasPrefix(trimmed, "#"), strings.HasPrefix(trimmed, ">"), strings.HasPrefix(trimmed, "|"):
		return true
	}
	return listItem.MatchString(l)
}

func hardBreak(l string) bool {
	return strings.HasSuffix(l, "  ") || strings.HasSuffix(l, `\`)
}
