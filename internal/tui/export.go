// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	// FormatText keeps the rendered output as is, escape sequences included (zero value default).
	FormatText Format = "text"
	// FormatPlain strips every escape sequence.
	FormatPlain Format = "plain"
	// FormatHTML produces a standalone HTML page with inline styles.
	FormatHTML Format = "html"
	// FormatSVG produces a standalone SVG image of the terminal output.
	FormatSVG Format = "svg"
)

const (
	svgCellWidth  = 8.4
	svgLineHeight = 18
	svgPadding    = 12
	exportFg      = "#d4d4d4"
	exportBg      = "#1e1e1e"
)

// ErrInvalidFormat is the sentinel error wrapped by InvalidFormatError.
var ErrInvalidFormat = errors.New("invalid output format")

type (
	// Format selects how rendered help is exported.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	// It wraps ErrInvalidFormat for errors.Is() compatibility.
	InvalidFormatError struct {
		Value Format
	}

	// cellStyle is the SGR state applied to a run of text.
	cellStyle struct {
		fg, bg                               string
		bold, dim, italic, underline, strike bool
		reverse                              bool
	}

	run struct {
		text  string
		style cellStyle
	}
)

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// Validate returns nil if the Format is one of the defined formats.
func (f Format) Validate() error {
	switch f {
	case "", FormatText, FormatPlain, FormatHTML, FormatSVG:
		return nil
	default:
		return &InvalidFormatError{Value: f}
	}
}

// Error implements the error interface for InvalidFormatError.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: text, plain, html, svg)", e.Value)
}

// Unwrap returns ErrInvalidFormat for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// Export converts rendered terminal output into the requested format. Title
// labels the HTML page and the SVG window.
func Export(rendered string, f Format, title string) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}
	switch f {
	case FormatPlain:
		return ansi.Strip(rendered), nil
	case FormatHTML:
		return exportHTML(rendered, title), nil
	case FormatSVG:
		return exportSVG(rendered, title), nil
	default:
		return rendered, nil
	}
}

func exportHTML(rendered, title string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<pre style=\"font-family:Menlo,Consolas,monospace;background:%s;color:%s;padding:1em\">", exportBg, exportFg)
	for i, line := range parseSGR(rendered) {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, r := range line {
			css := r.style.css()
			if css == "" {
				b.WriteString(html.EscapeString(r.text))
				continue
			}
			fmt.Fprintf(&b, "<span style=\"%s\">%s</span>", css, html.EscapeString(r.text))
		}
	}
	b.WriteString("</pre>\n</body>\n</html>\n")
	return b.String()
}

func exportSVG(rendered, title string) string {
	lines := parseSGR(rendered)
	cols := Measure(ansi.Strip(rendered))
	width := float64(cols)*svgCellWidth + 2*svgPadding
	height := len(lines)*svgLineHeight + 2*svgPadding

	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%.0f\" height=\"%d\" viewBox=\"0 0 %.0f %d\">\n", width, height, width, height)
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<rect width=\"100%%\" height=\"100%%\" rx=\"6\" fill=\"%s\"/>\n", exportBg)
	b.WriteString("<g font-family=\"Menlo,Consolas,monospace\" font-size=\"14\">\n")
	for i, line := range lines {
		y := svgPadding + (i+1)*svgLineHeight - 4
		fmt.Fprintf(&b, "<text x=\"%d\" y=\"%d\" xml:space=\"preserve\" fill=\"%s\">", svgPadding, y, exportFg)
		for _, r := range line {
			attrs := r.style.svgAttrs()
			if attrs == "" {
				b.WriteString(html.EscapeString(r.text))
				continue
			}
			fmt.Fprintf(&b, "<tspan%s>%s</tspan>", attrs, html.EscapeString(r.text))
		}
		b.WriteString("</text>\n")
	}
	b.WriteString("</g>\n</svg>\n")
	return b.String()
}

// parseSGR splits rendered output into lines of styled runs. Only SGR
// sequences carry style; other escape sequences are dropped.
func parseSGR(s string) [][]run {
	var (
		lines [][]run
		line  []run
		cur   cellStyle
		text  strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			line = append(line, run{text: text.String(), style: cur})
			text.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\n':
			flush()
			lines = append(lines, line)
			line = nil
		case ch == 0x1b && i+1 < len(s) && s[i+1] == '[':
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			if j >= len(s) {
				i = len(s)
				continue
			}
			if s[j] == 'm' {
				flush()
				cur = cur.apply(s[i+2 : j])
			}
			i = j
		case ch == 0x1b:
			// Skip other escapes (OSC hyperlinks end with BEL or ST).
			j := i + 1
			if j < len(s) && s[j] == ']' {
				for j < len(s) && s[j] != 0x07 && !(s[j] == 0x1b && j+1 < len(s) && s[j+1] == '\\') {
					j++
				}
				if j < len(s) && s[j] == 0x1b {
					j++
				}
			}
			i = j
		default:
			text.WriteByte(ch)
		}
	}
	flush()
	return append(lines, line)
}

func (st cellStyle) apply(params string) cellStyle {
	if params == "" {
		return cellStyle{}
	}
	codes := strings.Split(params, ";")
	for k := 0; k < len(codes); k++ {
		n, err := strconv.Atoi(codes[k])
		if err != nil {
			continue
		}
		switch {
		case n == 0:
			st = cellStyle{}
		case n == 1:
			st.bold = true
		case n == 2:
			st.dim = true
		case n == 3:
			st.italic = true
		case n == 4:
			st.underline = true
		case n == 7:
			st.reverse = true
		case n == 9:
			st.strike = true
		case n == 22:
			st.bold, st.dim = false, false
		case n == 23:
			st.italic = false
		case n == 24:
			st.underline = false
		case n == 27:
			st.reverse = false
		case n == 29:
			st.strike = false
		case n >= 30 && n <= 37:
			st.fg = ansiHex(n - 30)
		case n >= 90 && n <= 97:
			st.fg = ansiHex(n - 90 + 8)
		case n == 39:
			st.fg = ""
		case n >= 40 && n <= 47:
			st.bg = ansiHex(n - 40)
		case n >= 100 && n <= 107:
			st.bg = ansiHex(n - 100 + 8)
		case n == 49:
			st.bg = ""
		case n == 38 || n == 48:
			color, used := extendedColor(codes[k+1:])
			k += used
			if n == 38 {
				st.fg = color
			} else {
				st.bg = color
			}
		}
	}
	return st
}

// extendedColor decodes "5;N" and "2;R;G;B" and reports how many codes it consumed.
func extendedColor(codes []string) (string, int) {
	if len(codes) == 0 {
		return "", 0
	}
	switch codes[0] {
	case "5":
		if len(codes) < 2 {
			return "", len(codes)
		}
		n, err := strconv.Atoi(codes[1])
		if err != nil {
			return "", 2
		}
		return ansiHex(n), 2
	case "2":
		if len(codes) < 4 {
			return "", len(codes)
		}
		var rgb [3]int
		for i := range 3 {
			rgb[i], _ = strconv.Atoi(codes[i+1])
		}
		return fmt.Sprintf("#%02x%02x%02x", rgb[0]&0xff, rgb[1]&0xff, rgb[2]&0xff), 4
	}
	return "", 1
}

var basicPalette = [16]string{
	"#000000", "#cd3131", "#0dbc79", "#e5e510", "#2472c8", "#bc3fbc", "#11a8cd", "#e5e5e5",
	"#666666", "#f14c4c", "#23d18b", "#f5f543", "#3b8eea", "#d670d6", "#29b8db", "#ffffff",
}

// ansiHex converts an xterm 256-color index to hex.
func ansiHex(n int) string {
	switch {
	case n < 0 || n > 255:
		return ""
	case n < 16:
		return basicPalette[n]
	case n < 232:
		n -= 16
		levels := [6]int{0, 95, 135, 175, 215, 255}
		return fmt.Sprintf("#%02x%02x%02x", levels[n/36], levels[(n/6)%6], levels[n%6])
	default:
		g := 8 + (n-232)*10
		return fmt.Sprintf("#%02x%02x%02x", g, g, g)
	}
}

func (st cellStyle) colors() (fg, bg string) {
	fg, bg = st.fg, st.bg
	if st.reverse {
		if fg == "" {
			fg = exportFg
		}
		if bg == "" {
			bg = exportBg
		}
		fg, bg = bg, fg
	}
	return fg, bg
}

func (st cellStyle) css() string {
	var parts []string
	fg, bg := st.colors()
	if fg != "" {
		parts = append(parts, "color:"+fg)
	}
	if bg != "" {
		parts = append(parts, "background-color:"+bg)
	}
	if st.bold {
		parts = append(parts, "font-weight:bold")
	}
	if st.dim {
		parts = append(parts, "opacity:0.6")
	}
	if st.italic {
		parts = append(parts, "font-style:italic")
	}
	var deco []string
	if st.underline {
		deco = append(deco, "underline")
	}
	if st.strike {
		deco = append(deco, "line-through")
	}
	if len(deco) > 0 {
		parts = append(parts, "text-decoration:"+strings.Join(deco, " "))
	}
	return strings.Join(parts, ";")
}

func (st cellStyle) svgAttrs() string {
	var b strings.Builder
	fg, _ := st.colors()
	if fg != "" {
		fmt.Fprintf(&b, " fill=\"%s\"", fg)
	}
	if st.bold {
		b.WriteString(" font-weight=\"bold\"")
	}
	if st.dim {
		b.WriteString(" opacity=\"0.6\"")
	}
	if st.italic {
		b.WriteString(" font-style=\"italic\"")
	}
	switch {
	case st.underline && st.strike:
		b.WriteString(" text-decoration=\"underline line-through\"")
	case st.underline:
		b.WriteString(" text-decoration=\"underline\"")
	case st.strike:
		b.WriteString(" text-decoration=\"line-through\"")
	}
	return b.String()
}
