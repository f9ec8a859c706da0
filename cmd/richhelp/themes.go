// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/richhelp/internal/issue"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/pkg/command/cobracmd"
)

// previewCommand is the sample subcommand shown by theme previews.
const previewCommand = "sync"

// newThemesCommand creates `richhelp themes`.
func newThemesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "themes [THEME]...",
		Short: "List the built-in themes or preview them",
		Long: `List the built-in palettes and formats, or preview themes.

A theme joins a palette (colors) and a format (boxes and layout) with a dash,
as in nord-box. Either half alone keeps the default for the other. Each named
theme is previewed with the help of 'cloudctl sync'.`,
		GroupID: groupPreview,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listThemes(cmd.OutOrStdout())
			}
			return app.previewThemes(cmd.OutOrStdout(), args)
		},
	}
}

func listThemes(w io.Writer) error {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Palettes") + "\n")
	for _, name := range theme.PaletteNames() {
		fmt.Fprintf(&b, "  %s\n", CmdStyle.Render(name))
	}
	b.WriteString("\n" + TitleStyle.Render("Formats") + "\n")
	for _, name := range theme.FormatNames() {
		fmt.Fprintf(&b, "  %s\n", CmdStyle.Render(name))
	}
	b.WriteString("\n" + SubtitleStyle.Render("Combine them as <palette>-<format>, for example nord-box.") + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// previewThemes renders the sample help once per theme. Unknown names are
// rejected before anything is written.
func (a *App) previewThemes(w io.Writer, names []string) error {
	resolved := make([]string, 0, len(names))
	for _, name := range names {
		name, err := loadTheme(name)
		if err != nil {
			return err
		}
		if _, err := theme.Resolve(theme.Defaults(), nil, name, theme.WithEnvLookup(nil)); err != nil {
			return issue.NewErrorContext().
				WithIssue(issue.ThemeNotFoundID).
				WithOperation("preview theme").
				WithResource(name).
				WithSuggestion("Run 'richhelp themes' to list the palettes and formats").
				Wrap(err).
				BuildError()
		}
		resolved = append(resolved, name)
	}

	sample := cobracmd.Wrap(newSampleCommand())
	for i, name := range resolved {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, TitleStyle.Render("Theme: ")+CmdStyle.Render(name)); err != nil {
			return err
		}
		if err := a.newRenderer(name).WriteHelp(w, sample, previewCommand); err != nil {
			return err
		}
	}
	return nil
}
