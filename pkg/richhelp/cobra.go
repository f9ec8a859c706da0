// SPDX-License-Identifier: MPL-2.0

package richhelp

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/richhelp/pkg/command/cobracmd"
)

// Exit codes returned by ExitCode.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ErrAborted is returned by Execute when the user cancels.
var ErrAborted = errors.New("aborted")

// UsageError marks an error caused by how the program was invoked: an unknown
// flag or command, or arguments the command does not accept.
type UsageError struct {
	Err error
}

// Error implements the error interface.
func (e *UsageError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying cause error.
func (e *UsageError) Unwrap() error { return e.Err }

// Install makes root and its subcommands render help and usage errors through
// r. Cobra's own error and usage printing is silenced; Execute renders usage
// errors instead.
func (r *Renderer) Install(root *cobra.Command) {
	root.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := r.WriteHelp(c.OutOrStdout(), cobracmd.Wrap(c.Root()), cobracmd.Path(c)...); err != nil {
			c.PrintErrln(err)
		}
	})
	root.SetUsageFunc(func(c *cobra.Command) error {
		return r.WriteHelp(c.OutOrStderr(), cobracmd.Wrap(c.Root()), cobracmd.Path(c)...)
	})
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	root.SilenceErrors = true
	root.SilenceUsage = true
	wrapArgs(root)
}

// wrapArgs marks argument validation failures as usage errors.
func wrapArgs(c *cobra.Command) {
	if validate := c.Args; validate != nil {
		c.Args = func(cmd *cobra.Command, args []string) error {
			if err := validate(cmd, args); err != nil {
				return &UsageError{Err: err}
			}
			return nil
		}
	}
	for _, sub := range c.Commands() {
		wrapArgs(sub)
	}
}

// Execute installs r on root and runs it. Usage errors are rendered on the
// command's error stream and returned; an interrupt cancels the context and,
// once the command returns, prints the abort line and returns ErrAborted.
// Any other error is returned untouched for the caller to report.
func (r *Renderer) Execute(ctx context.Context, root *cobra.Command) error {
	r.Install(root)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return nil
	}
	if cmd == nil {
		cmd = root
	}

	switch {
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		if werr := r.WriteAbort(cmd.ErrOrStderr()); werr != nil {
			return errors.Join(ErrAborted, werr)
		}
		return ErrAborted
	case IsUsageError(err):
		if werr := r.WriteError(cmd.ErrOrStderr(), err, cobracmd.Wrap(cmd.Root()), cobracmd.Path(cmd)...); werr != nil {
			return errors.Join(err, werr)
		}
		var ue *UsageError
		if !errors.As(err, &ue) {
			err = &UsageError{Err: err}
		}
		return err
	default:
		return err
	}
}

// IsUsageError reports whether err came from invoking the program wrongly.
// Cobra reports unknown subcommands as plain errors, which are recognized by
// their message.
func IsUsageError(err error) bool {
	var ue *UsageError
	if errors.As(err, &ue) {
		return true
	}
	return err != nil && strings.HasPrefix(err.Error(), "unknown command ")
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsUsageError(err):
		return ExitUsage
	default:
		return ExitFailure
	}
}
