// SPDX-License-Identifier: MPL-2.0

package textflow

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type tag struct {
	name  string
	style lipgloss.Style
}

// markup renders light markup: "[bold red]text[/]" styles a run, "[/bold red]"
// closes the named tag, "\[" is a literal bracket. Tags whose contents are not
// a valid style stay literal, as do unmatched closing tags. Tags left open are
// closed at the end of the paragraph.
func (o Options) markup(p string, base lipgloss.Style) string {
	if o.ParseStyle == nil {
		return renderLines(base, strings.ReplaceAll(p, `\[`, "["))
	}

	var (
		out   strings.Builder
		text  strings.Builder
		stack []tag
	)
	current := func() lipgloss.Style {
		st := base
		for _, t := range stack {
			st = t.style.Inherit(st)
		}
		return st
	}
	flush := func() {
		if text.Len() > 0 {
			out.WriteString(renderLines(current(), text.String()))
			text.Reset()
		}
	}

	for i := 0; i < len(p); i++ {
		switch {
		case p[i] == '\\' && i+1 < len(p) && p[i+1] == '[':
			text.WriteByte('[')
			i++
		case p[i] == '[':
			end := strings.IndexByte(p[i+1:], ']')
			if end < 0 {
				text.WriteString(p[i:])
				i = len(p)
				continue
			}
			body := p[i+1 : i+1+end]
			if !o.applyTag(body, &stack, flush) {
				text.WriteString(p[i : i+end+2])
			}
			i += end + 1
		default:
			text.WriteByte(p[i])
		}
	}
	flush()
	return out.String()
}

// applyTag opens or closes a tag and reports whether body was a tag at all.
func (o Options) applyTag(body string, stack *[]tag, flush func()) bool {
	if name, ok := strings.CutPrefix(body, "/"); ok {
		name = strings.TrimSpace(name)
		for j := len(*stack) - 1; j >= 0; j-- {
			if name == "" || (*stack)[j].name == name {
				flush()
				*stack = (*stack)[:j]
				return true
			}
		}
		return false
	}
	name := strings.TrimSpace(body)
	if name == "" || !tagStart(name[0]) || strings.ContainsAny(name, "[\n") {
		return false
	}
	st, err := o.ParseStyle(name)
	if err != nil {
		return false
	}
	flush()
	*stack = append(*stack, tag{name: name, style: st})
	return true
}

// tagStart reports whether c may open a tag; "[1]" or "[-v]" stay literal.
func tagStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '#'
}
