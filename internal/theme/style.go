// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrInvalidStyle is the sentinel error wrapped by InvalidStyleError.
var ErrInvalidStyle = errors.New("invalid style")

// InvalidStyleError lists the tokens of a style string that were not understood.
type InvalidStyleError struct {
	Spec   string
	Tokens []string
}

// Error implements the error interface.
func (e *InvalidStyleError) Error() string {
	return fmt.Sprintf("invalid style %q: unknown %s", e.Spec, strings.Join(e.Tokens, ", "))
}

// Unwrap returns ErrInvalidStyle for errors.Is() compatibility.
func (e *InvalidStyleError) Unwrap() error { return ErrInvalidStyle }

// ANSI color numbers for the named colors.
var namedColors = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"bright_black":   "8",
	"grey":           "8",
	"gray":           "8",
	"bright_red":     "9",
	"bright_green":   "10",
	"bright_yellow":  "11",
	"bright_blue":    "12",
	"bright_magenta": "13",
	"bright_cyan":    "14",
	"bright_white":   "15",
}

type attr int

const (
	attrBold attr = iota
	attrDim
	attrItalic
	attrUnderline
	attrStrike
	attrReverse
	attrBlink
)

var attrNames = map[string]attr{
	"bold":          attrBold,
	"b":             attrBold,
	"dim":           attrDim,
	"d":             attrDim,
	"italic":        attrItalic,
	"i":             attrItalic,
	"underline":     attrUnderline,
	"u":             attrUnderline,
	"strike":        attrStrike,
	"s":             attrStrike,
	"strikethrough": attrStrike,
	"reverse":       attrReverse,
	"r":             attrReverse,
	"blink":         attrBlink,
}

// ParseStyle builds a lipgloss style from a space-separated style string such
// as "bold cyan", "not dim", "on blue" or "#ff8800". Unknown tokens are skipped
// and reported in the returned error; the style is usable either way.
func ParseStyle(r *lipgloss.Renderer, spec string) (lipgloss.Style, error) {
	st := r.NewStyle()
	tokens := strings.Fields(strings.ToLower(spec))
	var unknown []string
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok == "none" || tok == "default" || tok == "reset":
		case tok == "on":
			if i+1 >= len(tokens) {
				unknown = append(unknown, tok)
				continue
			}
			i++
			c, ok := parseColor(tokens[i])
			if !ok {
				unknown = append(unknown, tokens[i])
				continue
			}
			st = st.Background(c)
		case tok == "not":
			if i+1 >= len(tokens) {
				unknown = append(unknown, tok)
				continue
			}
			i++
			a, ok := attrNames[tokens[i]]
			if !ok {
				unknown = append(unknown, tokens[i])
				continue
			}
			st = setAttr(st, a, false)
		case strings.HasPrefix(tok, "link="):
		default:
			if a, ok := attrNames[tok]; ok {
				st = setAttr(st, a, true)
				continue
			}
			if c, ok := parseColor(tok); ok {
				st = st.Foreground(c)
				continue
			}
			unknown = append(unknown, tok)
		}
	}
	if len(unknown) > 0 {
		return st, &InvalidStyleError{Spec: spec, Tokens: unknown}
	}
	return st, nil
}

// ValidStyle reports whether every token of spec is understood.
func ValidStyle(spec string) bool {
	_, err := ParseStyle(lipgloss.DefaultRenderer(), spec)
	return err == nil
}

func setAttr(st lipgloss.Style, a attr, on bool) lipgloss.Style {
	switch a {
	case attrBold:
		return st.Bold(on)
	case attrDim:
		return st.Faint(on)
	case attrItalic:
		return st.Italic(on)
	case attrUnderline:
		return st.Underline(on)
	case attrStrike:
		return st.Strikethrough(on)
	case attrReverse:
		return st.Reverse(on)
	case attrBlink:
		return st.Blink(on)
	}
	return st
}

func parseColor(tok string) (lipgloss.Color, bool) {
	if n, ok := namedColors[tok]; ok {
		return lipgloss.Color(n), true
	}
	if strings.HasPrefix(tok, "#") {
		hex := tok[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return "", false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		return lipgloss.Color("#" + hex), true
	}
	if inner, ok := strings.CutPrefix(tok, "color("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return "", false
		}
		return ansiIndex(inner)
	}
	if inner, ok := strings.CutPrefix(tok, "rgb("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return "", false
		}
		parts := strings.Split(inner, ",")
		if len(parts) != 3 {
			return "", false
		}
		var rgb [3]uint64
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return "", false
			}
			rgb[i] = v
		}
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])), true
	}
	return ansiIndex(tok)
}

func ansiIndex(s string) (lipgloss.Color, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return lipgloss.Color(strconv.Itoa(n)), true
}
