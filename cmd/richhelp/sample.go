// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/invowk/richhelp/pkg/command/cobracmd"
)

// newSampleCommand builds the program previewed by demo and themes: a small
// object storage client using most of what the help engine can show.
func newSampleCommand() *cobra.Command {
	noop := func(*cobra.Command, []string) error { return nil }

	root := &cobra.Command{
		Use:   "cloudctl",
		Short: "Manage buckets and objects in cloud storage",
		Long: `Manage buckets and objects in cloud storage.

Credentials are read from the active profile. Run 'cloudctl login' once
before using the other commands.`,
		Annotations: map[string]string{
			cobracmd.AnnotationEpilog:       "Documentation: https://example.com/cloudctl",
			cobracmd.AnnotationEnvvarPrefix: "CLOUDCTL",
		},
	}
	root.AddGroup(
		&cobra.Group{ID: "storage", Title: "Storage Commands:"},
		&cobra.Group{ID: "admin", Title: "Administration:"},
	)
	root.PersistentFlags().StringP("profile", "p", "default", "credentials `PROFILE` to use")
	root.PersistentFlags().String("region", "", "override the profile's region")
	_ = root.PersistentFlags().SetAnnotation("profile", cobracmd.AnnotationEnvvar, []string{"CLOUDCTL_PROFILE"})

	bucket := &cobra.Command{
		Use:     "bucket",
		Short:   "Create, list and delete buckets",
		GroupID: "storage",
	}
	bucket.AddCommand(&cobra.Command{
		Use:     "list",
		Short:   "List buckets",
		Aliases: []string{"ls"},
		RunE:    noop,
	})
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a bucket",
		Long:  "Create a bucket. Names must be globally unique.",
		Args:  cobra.ExactArgs(1),
		RunE:  noop,
	}
	create.Flags().Bool("public", false, "allow anonymous reads")
	create.Flags().String("class", "standard", "storage `CLASS`: standard, cold or archive")
	create.Flags().StringSlice("tag", nil, "`KEY=VALUE` label, repeatable")
	create.Flags().Int("retention-days", 0, "keep objects for at least `DAYS`")
	create.Flags().Bool("lock", false, "make retention irrevocable")
	_ = create.Flags().SetAnnotation("retention-days", cobracmd.AnnotationPanel, []string{"Retention"})
	_ = create.Flags().SetAnnotation("lock", cobracmd.AnnotationPanel, []string{"Retention"})
	bucket.AddCommand(create)
	bucket.AddCommand(&cobra.Command{
		Use:     "delete NAME...",
		Short:   "Delete empty buckets",
		Aliases: []string{"rm"},
		Args:    cobra.MinimumNArgs(1),
		RunE:    noop,
	})

	syncCmd := &cobra.Command{
		Use:     "sync SRC DEST",
		Short:   "Synchronize a local directory with a bucket",
		Long:    "Synchronize a local directory with a bucket.\n\nOnly changed files are transferred. Use --dry-run to see what would change.",
		Example: "  cloudctl sync ./site s3://www --delete",
		Aliases: []string{"s"},
		GroupID: "storage",
		Args:    cobra.ExactArgs(2),
		RunE:    noop,
	}
	syncCmd.Flags().BoolP("dry-run", "n", false, "show what would be transferred")
	syncCmd.Flags().Bool("delete", false, "delete files missing from SRC")
	syncCmd.Flags().StringSlice("exclude", nil, "skip files matching `GLOB`")
	syncCmd.Flags().IntP("jobs", "j", 4, "transfer with `N` parallel jobs")
	syncCmd.Flags().CountP("verbose", "v", "increase verbosity")
	syncCmd.Flags().String("checksum", "", "verify transfers with `ALGO`")
	syncCmd.Flags().Bool("no-progress", false, "hide the progress bar")
	_ = syncCmd.MarkFlagRequired("checksum")
	_ = syncCmd.Flags().SetAnnotation("checksum", cobracmd.AnnotationEnvvar, []string{"CLOUDCTL_CHECKSUM"})
	_ = syncCmd.Flags().SetAnnotation("jobs", cobracmd.AnnotationPanel, []string{"Performance"})
	_ = syncCmd.Flags().MarkDeprecated("no-progress", "use --verbose=0")

	user := &cobra.Command{
		Use:     "user",
		Short:   "Manage users and their keys",
		GroupID: "admin",
		Annotations: map[string]string{
			cobracmd.AnnotationTree: "true",
		},
	}
	user.AddCommand(&cobra.Command{Use: "add NAME", Short: "Add a user", Args: cobra.ExactArgs(1), RunE: noop})
	user.AddCommand(&cobra.Command{Use: "remove NAME", Short: "Remove a user", Aliases: []string{"rm"}, Args: cobra.ExactArgs(1), RunE: noop})
	keys := &cobra.Command{Use: "keys", Short: "Manage access keys"}
	keys.AddCommand(&cobra.Command{Use: "rotate USER", Short: "Issue a new key and revoke the old one", RunE: noop})
	keys.AddCommand(&cobra.Command{Use: "list USER", Short: "List a user's keys", RunE: noop})
	user.AddCommand(keys)

	root.AddCommand(bucket, syncCmd, user)
	root.AddCommand(&cobra.Command{
		Use:   "login",
		Short: "Store credentials for a profile",
		RunE:  noop,
	})
	root.AddCommand(&cobra.Command{
		Use:        "copy SRC DEST",
		Short:      "Copy objects between buckets",
		Deprecated: "use sync",
		RunE:       noop,
	})
	root.AddCommand(&cobra.Command{
		Use:    "debug",
		Short:  "Dump internal state",
		Hidden: true,
		RunE:   noop,
	})
	return root
}
