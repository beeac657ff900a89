package actions

import (
	"context"

	"githelper.dev/githelper/internal/runner"
	"githelper.dev/githelper/internal/runtime"
)

// DefaultMessageLayout formats the timestamp in automatic commit messages
const DefaultMessageLayout = "2006-01-02 15:04"

// PushOptions contains options for the push actions
type PushOptions struct {
	// Message is used as-is when set
	Message string
	// Prompt asks for a message when Message is empty
	Prompt bool
}

// DefaultCommitMessage returns "Update YYYY-MM-DD HH:MM" for the current time
func DefaultCommitMessage(rc *runtime.Context) string {
	return "Update " + rc.Now().Format(DefaultMessageLayout)
}

// PushAction stages everything, commits and pushes the current branch.
// When nothing is staged the commit is skipped and the push still runs, so earlier
// local commits reach the remote.
func PushAction(ctx context.Context, rc *runtime.Context, opts PushOptions) error {
	if err := prepare(ctx, rc); err != nil {
		return err
	}
	splog := rc.Splog

	if err := rc.Git.AddAll(ctx); err != nil {
		return err
	}
	staged, err := rc.Git.HasStagedChanges(ctx)
	if err != nil {
		return err
	}

	if staged {
		message := opts.Message
		if message == "" {
			message = DefaultCommitMessage(rc)
			if opts.Prompt {
				message, err = rc.Prompter.Input("Commit message", message)
				if err != nil {
					return err
				}
				if message == "" {
					message = DefaultCommitMessage(rc)
				}
			}
		}
		if err := rc.Git.Commit(ctx, message); err != nil {
			return err
		}
		splog.Success("Committed: %s", message)
	} else {
		splog.Info("Nothing to commit, pushing existing commits.")
	}

	return push(ctx, rc)
}

// QuickPushAction commits everything with the timestamp message and pushes
func QuickPushAction(ctx context.Context, rc *runtime.Context) error {
	return PushAction(ctx, rc, PushOptions{})
}

func push(ctx context.Context, rc *runtime.Context) error {
	remote := rc.Config.Repo.Remote
	branch := currentBranch(rc)

	err := withRepair(ctx, rc, func(ctx context.Context) (runner.Result, error) {
		return rc.Git.Push(ctx, remote, branch)
	})
	if err != nil {
		return err
	}
	rc.Splog.Success("Pushed %s to %s.", branch, remote)
	return nil
}

// PullAction pulls the current branch from the remote
func PullAction(ctx context.Context, rc *runtime.Context) error {
	if err := prepare(ctx, rc); err != nil {
		return err
	}
	remote := rc.Config.Repo.Remote
	branch := currentBranch(rc)

	err := withRepair(ctx, rc, func(ctx context.Context) (runner.Result, error) {
		return rc.Git.Pull(ctx, remote, branch)
	})
	if err != nil {
		return err
	}
	rc.Splog.Success("Pulled %s from %s.", branch, remote)
	return nil
}

// withRepair runs a remote operation under the repair policy and shows its output
func withRepair(ctx context.Context, rc *runtime.Context, op func(context.Context) (runner.Result, error)) error {
	res, _, err := rc.Repair.Do(ctx, op)
	show(rc, res)
	if err != nil {
		return remoteError(err)
	}
	return check(res, nil)
}
