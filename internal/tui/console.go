// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	// DefaultWidth is used when the output is not a terminal and COLUMNS is unset.
	DefaultWidth = 80
	// MinWidth is the narrowest layout the console produces.
	MinWidth = 20
)

// Color systems accepted by ConsoleOptions.ColorSystem.
const (
	ColorAuto      = "auto"
	ColorNone      = "none"
	ColorStandard  = "standard"
	Color256       = "256"
	ColorTrueColor = "truecolor"
)

type (
	// ConsoleOptions controls width and color detection.
	ConsoleOptions struct {
		// Width forces the layout width; 0 detects it.
		Width int
		// MaxWidth caps the detected or forced width; 0 means no cap.
		MaxWidth int
		// ColorSystem is one of auto, none, standard, 256 or truecolor.
		ColorSystem string
		// ForceTerminal overrides terminal detection for the auto color system.
		ForceTerminal *bool
	}

	// Console binds rendering to one output.
	Console struct {
		r       *lipgloss.Renderer
		width   int
		profile termenv.Profile
	}
)

// NewConsole creates a console for w.
func NewConsole(w io.Writer, opts ConsoleOptions) *Console {
	r := lipgloss.NewRenderer(w)
	profile := colorProfile(r, opts)
	r.SetColorProfile(profile)
	return &Console{r: r, width: detectWidth(w, opts), profile: profile}
}

func colorProfile(r *lipgloss.Renderer, opts ConsoleOptions) termenv.Profile {
	switch opts.ColorSystem {
	case ColorNone:
		return termenv.Ascii
	case ColorStandard:
		return termenv.ANSI
	case Color256:
		return termenv.ANSI256
	case ColorTrueColor:
		return termenv.TrueColor
	}
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	profile := r.ColorProfile()
	if opts.ForceTerminal != nil {
		switch {
		case !*opts.ForceTerminal:
			profile = termenv.Ascii
		case profile == termenv.Ascii:
			profile = termenv.ANSI256
		}
	}
	return profile
}

func detectWidth(w io.Writer, opts ConsoleOptions) int {
	width := opts.Width
	if width <= 0 {
		if f, ok := w.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
			if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
				width = cols
			}
		}
	}
	if width <= 0 {
		if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
			width = cols
		}
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if opts.MaxWidth > 0 && width > opts.MaxWidth {
		width = opts.MaxWidth
	}
	return max(width, MinWidth)
}

// Renderer returns the lipgloss renderer bound to the output.
func (c *Console) Renderer() *lipgloss.Renderer { return c.r }

// Width returns the layout width in cells.
func (c *Console) Width() int { return c.width }

// Profile returns the color profile in use.
func (c *Console) Profile() termenv.Profile { return c.profile }

// NewStyle returns an empty style bound to the console's renderer.
func (c *Console) NewStyle() lipgloss.Style { return c.r.NewStyle() }

// Measure returns the display width of the widest line of s, ignoring escape
// sequences.
func Measure(s string) int {
	widest := 0
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			widest = max(widest, ansi.StringWidth(s[start:i]))
			start = i + 1
		}
	}
	return widest
}
