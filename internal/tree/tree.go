// SPDX-License-Identifier: MPL-2.0

// Package tree renders the tree help view: the current command's options
// followed by the whole command hierarchy, with every help text starting at
// one column shared across the hierarchy.
package tree

import (
	"fmt"
	"strings"

	"github.com/invowk/richhelp/internal/columns"
	"github.com/invowk/richhelp/internal/textflow"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/internal/tui"
	"github.com/invowk/richhelp/pkg/command"
)

// DefaultMaxDepth is the deepest level drawn when the configuration sets none.
const DefaultMaxDepth = 5

type (
	// Options carries what the tree view needs besides the command chain.
	Options struct {
		Console *tui.Console
		// Columns holds the configuration, styles and text settings used for
		// option rows and node help.
		Columns columns.Context
		// Usage is the rendered usage line.
		Usage string
	}

	// entry is a node measured by the pre-pass.
	entry struct {
		node     command.Node
		label    string
		width    int
		depth    int
		active   bool
		children []*entry
		// cut counts the levels below this entry that were not drawn.
		cut int
	}

	// optionRow is an option of the current command, measured by the pre-pass.
	optionRow struct {
		label string
		width int
		help  string
	}

	layout struct {
		o Options
		// commands is the column context for node rows.
		commands columns.Context
		align    int
		gap      int
		width    int
	}
)

// Render draws the tree view for the last command of chain. chain starts at
// the true root of the hierarchy.
func Render(chain []command.Node, o Options) string {
	if len(chain) == 0 {
		return ""
	}
	cfg := o.Columns.Config
	maxDepth := cfg.TreeMaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	// One pass over the hierarchy measures every label exactly once.
	root := collect(chain[0], 0, maxDepth, chain, true)
	opts := optionRows(chain[len(chain)-1], o.Columns)

	l := layout{o: o, commands: o.Columns, gap: max(cfg.TreeHelpGap, 1), width: o.Console.Width()}
	if sections, err := theme.HelpSections(cfg.CommandsTableHelpSections); err == nil {
		l.commands.Sections = sections
	}
	l.align = root.alignment()
	for _, r := range opts {
		l.align = max(l.align, r.width)
	}

	var parts []string
	if o.Usage != "" {
		parts = append(parts, o.Usage)
	}
	cur := chain[len(chain)-1].Info()
	flow := o.Columns.Flow
	flow.Style, flow.FirstStyle = o.Columns.Styles.Helptext, o.Columns.Styles.HelptextFirst
	flow.Deprecated, flow.DeprecatedStyle = cfg.DeprecatedMarker(cur.Deprecated), o.Columns.Styles.Deprecated
	if desc := textflow.Wrapped(cur.Help, flow, l.width-1); desc != "" {
		parts = append(parts, tui.Indent(desc, 1))
	}
	if len(opts) > 0 {
		parts = append(parts, l.options(opts))
	}
	parts = append(parts, l.tree(root))
	return strings.Join(parts, "\n\n") + "\n"
}

func collect(n command.Node, depth, maxDepth int, chain []command.Node, parentActive bool) *entry {
	info := n.Info()
	e := &entry{
		node:   n,
		label:  info.Name,
		width:  tui.Measure(info.Name),
		depth:  depth,
		active: parentActive && depth < len(chain) && chain[depth].Info().Name == info.Name,
	}
	kids := visibleChildren(n)
	if len(kids) == 0 {
		return e
	}
	if depth >= maxDepth {
		e.cut = height(n)
		return e
	}
	for _, c := range kids {
		e.children = append(e.children, collect(c, depth+1, maxDepth, chain, e.active))
	}
	return e
}

// height counts the levels of visible descendants below n.
func height(n command.Node) int {
	h := 0
	for _, c := range visibleChildren(n) {
		h = max(h, 1+height(c))
	}
	return h
}

func visibleChildren(n command.Node) []command.Node {
	var out []command.Node
	for _, c := range n.Children() {
		if !c.Info().Hidden {
			out = append(out, c)
		}
	}
	return out
}

// alignment is the widest label plus its indentation over the subtree.
func (e *entry) alignment() int {
	a := e.width + e.depth*tui.TreeIndent
	for _, c := range e.children {
		a = max(a, c.alignment())
	}
	return a
}

func optionRows(n command.Node, ctx columns.Context) []optionRow {
	var rows []optionRow
	for _, p := range n.Parameters() {
		if p.Hidden || p.IsArgument() {
			continue
		}
		label := columns.For(p, []theme.ColumnType{theme.ColumnOptAllMetavar}, ctx)[0]
		rows = append(rows, optionRow{label: label, width: tui.Measure(label), help: columns.Help(p, ctx)})
	}
	return rows
}

func (l layout) options(rows []optionRow) string {
	lines := []string{l.o.Columns.Styles.TreeHeading.Render(l.o.Columns.Config.OptionsPanelTitle)}
	for _, r := range rows {
		lines = append(lines, l.withHelp(r.label, r.width, 0, r.help))
	}
	return strings.Join(lines, "\n")
}

func (l layout) tree(root *entry) string {
	heading := l.o.Columns.Styles.TreeHeading.Render(l.o.Columns.Config.CommandsPanelTitle)
	return heading + "\n" + l.o.Console.Tree(l.node(root), l.o.Columns.Styles.TreeGuide)
}

func (l layout) node(e *entry) tui.TreeNode {
	st := l.o.Columns.Styles
	labelStyle, helpStyle := st.TreeDimmed, st.TreeDimmed
	if e.active {
		labelStyle, helpStyle = st.TreeActive, st.CommandHelp
	}

	ctx := l.commands
	ctx.Styles.CommandHelp = helpStyle
	ctx.Styles.Command = labelStyle
	cells := columns.ForCommand(e.node, []theme.ColumnType{theme.ColumnName, theme.ColumnHelp}, ctx)

	n := tui.TreeNode{Label: l.withHelp(cells[0], e.width, e.depth, cells[1])}
	for _, c := range e.children {
		n.Children = append(n.Children, l.node(c))
	}
	if e.cut > 0 {
		notice := fmt.Sprintf("… %d more level(s)", e.cut)
		n.Children = append(n.Children, tui.TreeNode{Label: st.TreeTruncated.Render(notice)})
	}
	return n
}

// withHelp places help at the shared alignment column after a label of the
// given width drawn at depth. The help wraps in the remaining space and its
// continuation lines keep the column.
func (l layout) withHelp(label string, width, depth int, help string) string {
	if help == "" {
		return label
	}
	offset := l.align - depth*tui.TreeIndent + l.gap
	helpWidth := max(l.width-l.align-l.gap, tui.MinWrapWidth)
	lines := strings.Split(tui.Wrap(help, helpWidth), "\n")
	var b strings.Builder
	b.WriteString(label)
	b.WriteString(strings.Repeat(" ", max(offset-width, 1)))
	b.WriteString(lines[0])
	for _, line := range lines[1:] {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", offset))
		b.WriteString(line)
	}
	return b.String()
}
