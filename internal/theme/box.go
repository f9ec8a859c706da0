// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/invowk/richhelp/internal/tui"
)

const (
	// BoxRounded draws a single-line frame with rounded corners.
	BoxRounded BoxStyle = "rounded"
	// BoxSquare draws a single-line frame with square corners.
	BoxSquare BoxStyle = "square"
	// BoxHeavy draws a thick frame.
	BoxHeavy BoxStyle = "heavy"
	// BoxDouble draws a double-line frame.
	BoxDouble BoxStyle = "double"
	// BoxASCII draws a frame from plain ASCII characters.
	BoxASCII BoxStyle = "ascii"
	// BoxSimple draws horizontal rules above and below the panel.
	BoxSimple BoxStyle = "simple"
	// BoxMinimal draws a single titled rule above the panel.
	BoxMinimal BoxStyle = "minimal"
	// BoxHidden reserves the frame's space without drawing it.
	BoxHidden BoxStyle = "hidden"
	// BoxNone prints the title as a heading with no frame.
	BoxNone BoxStyle = "none"
)

// ErrInvalidBoxStyle is the sentinel error wrapped by InvalidBoxStyleError.
var ErrInvalidBoxStyle = errors.New("invalid box style")

type (
	// BoxStyle names the frame drawn around a panel.
	BoxStyle string

	// InvalidBoxStyleError is returned when a BoxStyle value is not recognized.
	// It wraps ErrInvalidBoxStyle for errors.Is() compatibility.
	InvalidBoxStyleError struct {
		Value BoxStyle
	}
)

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
	MiddleLeft: "+", MiddleRight: "+", Middle: "+", MiddleTop: "+", MiddleBottom: "+",
}

// String returns the string representation of the BoxStyle.
func (b BoxStyle) String() string { return string(b) }

// Validate returns nil if the BoxStyle is one of the defined styles.
func (b BoxStyle) Validate() error {
	switch b {
	case BoxRounded, BoxSquare, BoxHeavy, BoxDouble, BoxASCII, BoxSimple, BoxMinimal, BoxHidden, BoxNone:
		return nil
	default:
		return &InvalidBoxStyleError{Value: b}
	}
}

// Error implements the error interface for InvalidBoxStyleError.
func (e *InvalidBoxStyleError) Error() string {
	return fmt.Sprintf("invalid box style %q (valid: rounded, square, heavy, double, ascii, simple, minimal, hidden, none)", e.Value)
}

// Unwrap returns ErrInvalidBoxStyle for errors.Is() compatibility.
func (e *InvalidBoxStyleError) Unwrap() error { return ErrInvalidBoxStyle }

// Frame returns how the box is drawn. Unknown styles draw as BoxRounded.
func (b BoxStyle) Frame() tui.Frame {
	switch b {
	case BoxSquare:
		return tui.Frame{Border: lipgloss.NormalBorder(), Sides: true, Top: true, Bottom: true}
	case BoxHeavy:
		return tui.Frame{Border: lipgloss.ThickBorder(), Sides: true, Top: true, Bottom: true}
	case BoxDouble:
		return tui.Frame{Border: lipgloss.DoubleBorder(), Sides: true, Top: true, Bottom: true}
	case BoxASCII:
		return tui.Frame{Border: asciiBorder, Sides: true, Top: true, Bottom: true}
	case BoxSimple:
		return tui.Frame{Border: lipgloss.NormalBorder(), Top: true, Bottom: true}
	case BoxMinimal:
		return tui.Frame{Border: lipgloss.NormalBorder(), Top: true}
	case BoxHidden:
		return tui.Frame{Border: lipgloss.HiddenBorder(), Sides: true, Top: true, Bottom: true}
	case BoxNone:
		return tui.Frame{}
	default:
		return tui.Frame{Border: lipgloss.RoundedBorder(), Sides: true, Top: true, Bottom: true}
	}
}

// BoxOrDefault validates name and falls back to BoxRounded with a warning.
func BoxOrDefault(name string) BoxStyle {
	b := BoxStyle(name)
	if err := b.Validate(); err != nil {
		logger.Warn("unknown box style, using rounded", "box", name)
		return BoxRounded
	}
	return b
}
