package actions

import (
	"context"
	"errors"

	gherrors "githelper.dev/githelper/internal/errors"
	"githelper.dev/githelper/internal/runtime"
)

// UndoOptions contains options for the undo action
type UndoOptions struct {
	// Force skips the confirmation
	Force bool
}

// UndoAction removes the last commit and keeps its changes staged
func UndoAction(ctx context.Context, rc *runtime.Context, opts UndoOptions) error {
	if err := prepare(ctx, rc); err != nil {
		return err
	}

	message, err := rc.Git.HeadMessage()
	if err != nil {
		if errors.Is(err, gherrors.ErrNoCommits) {
			return gherrors.ErrNoCommits
		}
		return err
	}

	if !opts.Force {
		ok, err := rc.Prompter.Confirm("Undo the last commit \""+message+"\"? Your files stay as they are.", false)
		if err != nil {
			return err
		}
		if !ok {
			rc.Splog.Info("Nothing changed.")
			return nil
		}
	}

	if err := rc.Git.UndoLastCommit(ctx); err != nil {
		return err
	}
	rc.Splog.Success("Undid \"%s\". The changes are still staged.", message)
	return nil
}
