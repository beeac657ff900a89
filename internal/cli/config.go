package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"githelper.dev/githelper/internal/config"
	"githelper.dev/githelper/internal/output"
	"githelper.dev/githelper/internal/prompt"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and inspect the githelper configuration",
		Long: `Create and inspect the githelper configuration.

Examples:
  githelper config init
  githelper config show
  githelper config path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

// configPath resolves --config, then GITHELPER_CONFIG, then the default location
func configPath(cmd *cobra.Command) (string, error) {
	if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
		return config.ExpandPath(f.Value.String())
	}
	return config.Path()
}

// newConfigInitCmd creates the config init command
func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "init",
		Short:        "Ask for your identity and repository and save them",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
			if err := runConfigWizard(p, &cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}

			splog := output.NewSplogWithWriter(cmd.OutOrStdout())
			splog.Success("Saved %s", path)
			if missing := cfg.Missing(); len(missing) > 0 {
				splog.Warn("Still missing: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

func runConfigWizard(p prompt.Prompter, cfg *config.Config) error {
	questions := []struct {
		label string
		value *string
	}{
		{"Your name (for commits)", &cfg.Identity.Name},
		{"Your email (for commits and the SSH key)", &cfg.Identity.Email},
		{"GitHub user name", &cfg.Identity.GitHubUser},
		{"Repository name", &cfg.Repo.Name},
	}
	for _, q := range questions {
		answer, err := p.Input(q.label, *q.value)
		if err != nil {
			return err
		}
		*q.value = strings.TrimSpace(answer)
	}

	folder := cfg.Repo.Folder
	if folder == "" {
		folder = config.DefaultFolderRoot + "/" + cfg.Repo.Name
	}
	answer, err := p.Input("Repository folder", folder)
	if err != nil {
		return err
	}
	if answer != config.DefaultFolderRoot+"/"+cfg.Repo.Name {
		cfg.Repo.Folder = answer
	}

	keyType, err := p.Select("SSH key type", []string{"ed25519", "rsa", "ecdsa"}, cfg.SSH.KeyType)
	if err != nil {
		return err
	}
	if keyType != cfg.SSH.KeyType {
		cfg.SSH.KeyType = keyType
		cfg.SSH.KeyPath = "~/.ssh/id_" + keyType
	}
	return nil
}

// newConfigShowCmd creates the config show command
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "show",
		Short:        "Print the effective configuration",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}
}

// newConfigPathCmd creates the config path command
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configPath(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}
