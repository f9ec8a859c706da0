// SPDX-License-Identifier: MPL-2.0

package theme

import "regexp"

const (
	// HighlightNone marks text outside any highlight.
	HighlightNone HighlightKind = ""
	// HighlightOption marks a long option ("--env").
	HighlightOption HighlightKind = "option"
	// HighlightSwitch marks a short switch ("-e").
	HighlightSwitch HighlightKind = "switch"
	// HighlightMetavar marks a placeholder ("<FILE>").
	HighlightMetavar HighlightKind = "metavar"
)

type (
	// HighlightKind classifies a span of help text.
	HighlightKind string

	// Span is a run of text with one highlight kind.
	Span struct {
		Text string
		Kind HighlightKind
	}

	// Highlighter splits plain help text into classified spans. The spans must
	// concatenate back to the input.
	Highlighter interface {
		Spans(text string) []Span
	}

	optionHighlighter struct{}
)

var optionPattern = regexp.MustCompile(`(^|[^\w-])(--[\w-]+|-\w+|<[^>\s]+>)`)

// OptionHighlighter returns the built-in highlighter for options, switches and
// angle-bracket metavars.
func OptionHighlighter() Highlighter { return optionHighlighter{} }

func (optionHighlighter) Spans(text string) []Span {
	matches := optionPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Span{{Text: text}}
	}
	spans := make([]Span, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		start, end := m[4], m[5]
		if start > last {
			spans = append(spans, Span{Text: text[last:start]})
		}
		tok := text[start:end]
		kind := HighlightSwitch
		switch {
		case tok[0] == '<':
			kind = HighlightMetavar
		case len(tok) > 1 && tok[1] == '-':
			kind = HighlightOption
		}
		spans = append(spans, Span{Text: tok, Kind: kind})
		last = end
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}
