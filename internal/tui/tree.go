// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

// TreeIndent is the width of one nesting level, guides included.
const TreeIndent = 4

// TreeNode is one pre-rendered entry of a tree. Labels may span several lines;
// continuation lines are drawn under the guide of their node.
type TreeNode struct {
	Label    string
	Children []TreeNode
}

// Tree renders root and its descendants with box-drawing guides, each level
// indented by TreeIndent cells.
func (c *Console) Tree(root TreeNode, guide lipgloss.Style) string {
	t := buildTree(root)
	t.Enumerator(func(children tree.Children, i int) string {
		if i == children.Length()-1 {
			return guide.Render("└──") + " "
		}
		return guide.Render("├──") + " "
	}).Indenter(func(children tree.Children, i int) string {
		if i == children.Length()-1 {
			return strings.Repeat(" ", TreeIndent)
		}
		return guide.Render("│") + "   "
	}).EnumeratorStyle(c.r.NewStyle()).ItemStyle(c.r.NewStyle())

	lines := strings.Split(t.String(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

func buildTree(n TreeNode) *tree.Tree {
	t := tree.Root(n.Label)
	for _, ch := range n.Children {
		if len(ch.Children) > 0 {
			t.Child(buildTree(ch))
			continue
		}
		t.Child(ch.Label)
	}
	return t
}
