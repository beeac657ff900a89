package cli

import (
	"context"

	"github.com/spf13/cobra"

	"githelper.dev/githelper/internal/actions"
	"githelper.dev/githelper/internal/cli/helpers"
	"githelper.dev/githelper/internal/runtime"
)

// newBrowseCmd creates the browse command
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "browse [dir]",
		Short:        "Browse folders and open files in a viewer",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return helpers.Run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				return actions.BrowseAction(ctx, rc, dir)
			})
		},
	}
}

// newSSHCmd creates the ssh command
func newSSHCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ssh",
		Short:        "Manage the SSH key used for GitHub",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.SSHMenuAction)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the key fingerprint and public key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return helpers.Run(cmd, func(_ context.Context, rc *runtime.Context) error {
					return actions.SSHShowAction(rc)
				})
			},
		},
		&cobra.Command{
			Use:   "generate",
			Short: "Generate a new key pair",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return helpers.Run(cmd, actions.SSHGenerateAction)
			},
		},
		&cobra.Command{
			Use:   "copy",
			Short: "Copy the public key to the clipboard",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return helpers.Run(cmd, func(_ context.Context, rc *runtime.Context) error {
					return actions.SSHCopyAction(rc)
				})
			},
		},
		&cobra.Command{
			Use:   "open",
			Short: "Open GitHub's new SSH key page",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return helpers.Run(cmd, actions.SSHOpenGitHubAction)
			},
		},
		&cobra.Command{
			Use:   "upload",
			Short: "Add the public key to your GitHub account (needs GITHUB_TOKEN or gh)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return helpers.Run(cmd, actions.SSHUploadAction)
			},
		},
		&cobra.Command{
			Use:   "test",
			Short: "Check that GitHub accepts the key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return helpers.Run(cmd, actions.SSHTestAction)
			},
		},
	)

	return cmd
}

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configured repository",
		Long: `Create repo.folder (default ~/storage/shared/GitHub/<repo.name>), initialize git,
write .gitignore and README.md, make the first commit and add the origin remote
git@<host>:<github_user>/<repo.name>.git.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.InitRepoAction)
		},
	}
}

// newDeviceScriptCmd creates the device-script command
func newDeviceScriptCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:          "device-script",
		Short:        "Write a bash script that sets up another Termux device",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(_ context.Context, rc *runtime.Context) error {
				return actions.DeviceScriptAction(rc, out)
			})
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", actions.DefaultDeviceScriptName, "Where to write the script")

	return cmd
}
