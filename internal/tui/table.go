// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const (
	// DefaultColumnGap separates table columns.
	DefaultColumnGap = 2
	// MinWrapWidth is the narrowest a wrapped column is squeezed to.
	MinWrapWidth = 10
)

// TableOptions configures Console.Table.
type TableOptions struct {
	// Width is the width available to the table.
	Width int
	// Gap is the number of spaces between columns; 0 uses DefaultColumnGap.
	Gap int
	// WrapColumn is word-wrapped to fill the remaining width; -1 disables wrapping.
	WrapColumn int
	// Leading inserts a blank line between rows.
	Leading int
	// ShowLines draws a rule between rows.
	ShowLines bool
	// LineStyle colors the row rules.
	LineStyle lipgloss.Style
}

// Table lays rows out as borderless columns. Cells may contain styling and
// line breaks; every row must have the same number of cells.
func (c *Console) Table(rows [][]string, o TableOptions) string {
	if len(rows) == 0 {
		return ""
	}
	ncols := 0
	for _, r := range rows {
		ncols = max(ncols, len(r))
	}
	if ncols == 0 {
		return ""
	}
	gap := o.Gap
	if gap <= 0 {
		gap = DefaultColumnGap
	}
	width := o.Width
	if width <= 0 {
		width = c.width
	}

	norm := make([][]string, len(rows))
	for i, r := range rows {
		norm[i] = make([]string, ncols)
		copy(norm[i], r)
	}

	if o.WrapColumn >= 0 && o.WrapColumn < ncols {
		used := gap * (ncols - 1)
		for col := range ncols {
			if col == o.WrapColumn {
				continue
			}
			widest := 0
			for _, r := range norm {
				widest = max(widest, Measure(r[col]))
			}
			used += widest
		}
		avail := max(width-used, MinWrapWidth)
		for _, r := range norm {
			r[o.WrapColumn] = Wrap(r[o.WrapColumn], avail)
		}
	}

	widths := make([]int, ncols)
	for _, r := range norm {
		for col, cell := range r {
			widths[col] = max(widths[col], Measure(cell))
		}
	}
	total := gap * (ncols - 1)
	for _, w := range widths {
		total += w
	}

	var sep []string
	switch {
	case o.ShowLines:
		sep = []string{o.LineStyle.Render(strings.Repeat("─", total))}
	case o.Leading > 0:
		sep = make([]string, o.Leading)
	}

	var lines []string
	for i, r := range norm {
		if i > 0 {
			lines = append(lines, sep...)
		}
		lines = append(lines, tableRow(r, widths, gap)...)
	}
	return strings.Join(lines, "\n")
}

// tableRow renders one row, padding every cell line to its column width.
// The row is as tall as its tallest cell.
func tableRow(row []string, widths []int, gap int) []string {
	cells := make([][]string, len(row))
	height := 1
	for col, cell := range row {
		cells[col] = strings.Split(cell, "\n")
		height = max(height, len(cells[col]))
	}

	out := make([]string, height)
	var b strings.Builder
	for ln := range height {
		b.Reset()
		for col, cell := range cells {
			part := ""
			if ln < len(cell) {
				part = cell[ln]
			}
			b.WriteString(part)
			if col < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[col]-ansi.StringWidth(part)+gap))
			}
		}
		out[ln] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// Wrap word-wraps s to width cells, breaking words longer than the width.
// Lines only break at spaces, so hyphenated flags stay whole. Escape
// sequences are preserved.
func Wrap(s string, width int) string {
	if width <= 0 || Measure(s) <= width {
		return s
	}
	ww := wordwrap.NewWriter(width)
	ww.Breakpoints = nil
	_, _ = ww.Write([]byte(s))
	_ = ww.Close()
	return wrap.String(ww.String(), width)
}

// Indent prefixes every non-empty line of s with n spaces.
func Indent(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
