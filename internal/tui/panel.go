// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type (
	// Frame describes which edges of a panel are drawn and with which characters.
	Frame struct {
		Border lipgloss.Border
		// Sides draws the left and right edges.
		Sides bool
		// Top and Bottom draw the horizontal edges.
		Top, Bottom bool
	}

	// PanelOptions configures Console.Panel.
	PanelOptions struct {
		// Title is rendered into the top edge; it may already carry styling.
		Title string
		Frame Frame
		// BorderStyle colors the frame characters.
		BorderStyle lipgloss.Style
		// Align places the title along the top edge.
		Align TextAlign
		// Width is the total panel width; 0 uses the console width.
		Width int
	}
)

// Framed reports whether any edge is drawn.
func (f Frame) Framed() bool { return f.Sides || f.Top || f.Bottom }

// Panel draws body inside a titled frame. Body lines wider than the interior
// are truncated.
func (c *Console) Panel(body string, o PanelOptions) string {
	width := o.Width
	if width <= 0 {
		width = c.width
	}
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")

	if !o.Frame.Framed() {
		out := make([]string, 0, len(lines)+1)
		if o.Title != "" {
			out = append(out, o.Title)
		}
		for _, l := range lines {
			out = append(out, ansi.Truncate(l, width, "…"))
		}
		return strings.Join(out, "\n")
	}

	b := o.Frame.Border
	bs := o.BorderStyle
	inner := width
	if o.Frame.Sides {
		inner -= 2
	}
	content := max(inner-2, 1)

	out := make([]string, 0, len(lines)+2)
	if o.Frame.Top {
		left, right := b.TopLeft, b.TopRight
		if !o.Frame.Sides {
			left, right = "", ""
		}
		out = append(out, titledEdge(o.Title, b.Top, left, right, inner, o.Align, bs))
	}
	for _, l := range lines {
		cell := ansi.Truncate(l, content, "…")
		if o.Frame.Sides {
			pad := strings.Repeat(" ", max(content-Measure(cell), 0))
			out = append(out, bs.Render(b.Left)+" "+cell+pad+" "+bs.Render(b.Right))
			continue
		}
		out = append(out, " "+cell)
	}
	if o.Frame.Bottom {
		if o.Frame.Sides {
			out = append(out, bs.Render(b.BottomLeft+repeatEdge(b.Bottom, inner)+b.BottomRight))
		} else {
			out = append(out, bs.Render(repeatEdge(b.Bottom, inner)))
		}
	}
	return strings.Join(out, "\n")
}

// titledEdge builds a horizontal edge of n cells between the corners with the
// title embedded: "╭─ Title ─────╮".
func titledEdge(title, edge, left, right string, n int, align TextAlign, bs lipgloss.Style) string {
	if title == "" {
		return bs.Render(left + repeatEdge(edge, n) + right)
	}
	seg := " " + title + " "
	if Measure(seg) > n-2 {
		seg = " " + ansi.Truncate(title, max(n-4, 1), "…") + " "
	}
	free := max(n-Measure(seg), 0)
	var before int
	switch align {
	case AlignCenter:
		before = free / 2
	case AlignRight:
		before = max(free-1, 0)
	default:
		before = min(1, free)
	}
	after := free - before
	return bs.Render(left+repeatEdge(edge, before)) + seg + bs.Render(repeatEdge(edge, after)+right)
}

func repeatEdge(edge string, n int) string {
	if edge == "" {
		edge = " "
	}
	if n <= 0 {
		return ""
	}
	w := max(ansi.StringWidth(edge), 1)
	return strings.Repeat(edge, n/w)
}
