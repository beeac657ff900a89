package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"githelper.dev/githelper/internal/actions"
	"githelper.dev/githelper/internal/cli/helpers"
	"githelper.dev/githelper/internal/output"
	"githelper.dev/githelper/internal/runtime"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "githelper",
		Short: "A menu for everyday git on Termux",
		Long: `githelper sets up SSH access to GitHub and a working repository on an
Android phone running Termux, then wraps the everyday git commands in a numbered menu.

Run without arguments to open the menu. Every menu entry is also available as a
subcommand.

When GitHub reports "This repository moved." during a fetch, pull or push, githelper
points the remote at the new location and retries once.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			output.ConfigureColors()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				err := actions.MenuAction(ctx, rc)
				if errors.Is(err, context.Canceled) {
					rc.Splog.Newline()
					return nil
				}
				return err
			})
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/githelper/config.toml, or $GITHELPER_CONFIG)")
	rootCmd.PersistentFlags().String("repo", "", "Repository folder (overrides repo.folder)")
	rootCmd.PersistentFlags().Bool("debug", false, "Print the commands githelper runs")

	rootCmd.AddCommand(
		newStatusCmd(),
		newPushCmd(),
		newQuickPushCmd(),
		newPullCmd(),
		newLogCmd(),
		newAddCmd(),
		newUndoCmd(),
		newBranchCmd(),
		newFilesCmd(),
		newBrowseCmd(),
		newSSHCmd(),
		newInitCmd(),
		newDeviceScriptCmd(),
		newFixRemoteCmd(),
		newConfigCmd(),
		newVersionCmd(version, commit, date),
	)

	return rootCmd
}
