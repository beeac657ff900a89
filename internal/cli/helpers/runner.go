// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"githelper.dev/githelper/internal/runtime"
)

// Options reads the persistent root flags
func Options(cmd *cobra.Command) (runtime.Options, error) {
	opts := runtime.Options{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
	}
	if f := cmd.Flag("config"); f != nil {
		opts.ConfigPath = f.Value.String()
	}
	if f := cmd.Flag("repo"); f != nil && f.Value.String() != "" {
		dir, err := filepath.Abs(f.Value.String())
		if err != nil {
			return opts, err
		}
		opts.RepoDir = dir
	}
	if f := cmd.Flag("debug"); f != nil {
		opts.Debug = f.Value.String() == "true"
	}
	return opts, nil
}

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx context.Context, rc *runtime.Context) error) error {
	opts, err := Options(cmd)
	if err != nil {
		return err
	}
	rc, err := runtime.New(opts)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Splog.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, rc)
}
