package actions

import (
	"context"
	"errors"
	"fmt"

	gherrors "githelper.dev/githelper/internal/errors"
	"githelper.dev/githelper/internal/runner"
	"githelper.dev/githelper/internal/runtime"
)

// prepare runs before every action that mutates the repository or talks to the remote
func prepare(ctx context.Context, rc *runtime.Context) error {
	if err := rc.Git.RequireRepository(); err != nil {
		return err
	}
	_, err := rc.Repair.Preflight(ctx, func(ctx context.Context) (runner.Result, error) {
		return rc.Git.Fetch(ctx, rc.Config.Repo.Remote)
	})
	return remoteError(err)
}

// remoteError adds the way out to errors about an unusable remote
func remoteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gherrors.ErrInvalidRemote):
		return fmt.Errorf("%w (use \"Fix remote URL manually\" to set a valid one)", err)
	case errors.Is(err, gherrors.ErrNoReplacementURL):
		return fmt.Errorf("%w (use \"Fix remote URL manually\" to set it)", err)
	}
	return err
}

// show prints a command's output
func show(rc *runtime.Context, res runner.Result) {
	if out := res.Trimmed(); out != "" {
		rc.Splog.Page(out)
	}
}

// check turns a failed command result into an error carrying its output
func check(res runner.Result, err error) error {
	if err != nil {
		return gherrors.NewCommandError(res.Command, res.Args, res.Output, res.ExitCode, err)
	}
	if !res.Success() {
		return gherrors.NewCommandError(res.Command, res.Args, res.Output, res.ExitCode, nil)
	}
	return nil
}

// currentBranch falls back to the configured branch on a detached HEAD
func currentBranch(rc *runtime.Context) string {
	if branch, err := rc.Git.CurrentBranch(); err == nil && branch != "" {
		return branch
	}
	return rc.Config.Repo.Branch
}
