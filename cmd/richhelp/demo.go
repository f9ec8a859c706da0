// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/richhelp/pkg/command/cobracmd"
	"github.com/invowk/richhelp/pkg/richhelp"
)

// newDemoCommand creates `richhelp demo`.
func newDemoCommand(app *App) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "demo [COMMAND]...",
		Short: "Render the help of a sample program",
		Long: `Render the help screen of cloudctl, a sample object storage client.

Name a subcommand to see its help, for example 'richhelp demo bucket create'.
The global --theme, --output and --width flags apply.`,
		GroupID: groupPreview,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.renderSample(cmd.OutOrStdout(), args, tree)
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "show the command tree instead of panels")
	return cmd
}

// renderSample writes the help of the sample command named by names.
func (a *App) renderSample(w io.Writer, names []string, tree bool) error {
	sample := newSampleCommand()
	target, rest, err := sample.Find(names)
	if err != nil || len(rest) > 0 {
		return &richhelp.UsageError{Err: fmt.Errorf("unknown sample command %q", strings.Join(names, " "))}
	}
	if tree {
		if target.Annotations == nil {
			target.Annotations = map[string]string{}
		}
		target.Annotations[cobracmd.AnnotationTree] = "true"
	}
	return a.renderer.WriteHelp(w, cobracmd.Wrap(sample), cobracmd.Path(target)...)
}
