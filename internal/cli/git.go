package cli

import (
	"context"

	"github.com/spf13/cobra"

	"githelper.dev/githelper/internal/actions"
	"githelper.dev/githelper/internal/cli/helpers"
	"githelper.dev/githelper/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "status",
		Short:        "Show the short status of the repository",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.StatusAction)
		},
	}
}

// newPushCmd creates the push command
func newPushCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Stage everything, commit and push",
		Long: `Stage all changes, commit them and push the current branch.

Without --message the commit message is asked for; an empty answer uses
"Update YYYY-MM-DD HH:MM". When nothing is staged the commit is skipped and
the push still runs.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				return actions.PushAction(ctx, rc, actions.PushOptions{
					Message: message,
					Prompt:  message == "",
				})
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")

	return cmd
}

// newQuickPushCmd creates the quick-push command
func newQuickPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "quick-push",
		Aliases:      []string{"qp"},
		Short:        "Commit everything as \"Update <timestamp>\" and push",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.QuickPushAction)
		},
	}
}

// newPullCmd creates the pull command
func newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "pull",
		Short:        "Pull the current branch",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.PullAction)
		},
	}
}

// newLogCmd creates the log command
func newLogCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:          "log",
		Short:        "Show the recent history as a graph",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				return actions.LogAction(ctx, rc, n)
			})
		},
	}

	cmd.Flags().IntVarP(&n, "number", "n", 0, "Number of commits (default repo.log_limit)")

	return cmd
}

// newAddCmd creates the add command
func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "add",
		Short:        "Pick one changed file and stage it",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.AddOneAction)
		},
	}
}

// newUndoCmd creates the undo command
func newUndoCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Undo the last commit, keeping its changes",
		Long: `Remove the last commit with a soft reset. The files are not touched and the
changes of the removed commit stay staged.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				return actions.UndoAction(ctx, rc, actions.UndoOptions{Force: force})
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}

// newBranchCmd creates the branch command
func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "branch",
		Short:        "Show branches and the remote",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.BranchInfoAction)
		},
	}
}

// newFilesCmd creates the files command
func newFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "files",
		Short:        "List tracked files",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.ListFilesAction)
		},
	}
}

// newFixRemoteCmd creates the fix-remote command
func newFixRemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fix-remote [url]",
		Short: "Set the remote URL by hand",
		Long: `Point the remote at a new URL. Without an argument the current URL is shown and
a new one is asked for; an empty answer runs the automatic "repository moved" check.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := ""
			if len(args) == 1 {
				url = args[0]
			}
			return helpers.Run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				return actions.FixRemoteAction(ctx, rc, url)
			})
		},
	}
}
