package git

import (
	"context"
	"fmt"

	gherrors "githelper.dev/githelper/internal/errors"
)

// UndoLastCommit removes the last commit and keeps its changes staged (soft reset).
// The first commit of a repository has no parent, so HEAD is unborn again instead.
func (c *Client) UndoLastCommit(ctx context.Context) error {
	count, err := c.CommitCount()
	if err != nil {
		return err
	}

	switch count {
	case 0:
		return gherrors.ErrNoCommits
	case 1:
		if _, err := c.run(ctx, "update-ref", "-d", "HEAD"); err != nil {
			return fmt.Errorf("failed to undo the initial commit: %w", err)
		}
	default:
		if _, err := c.run(ctx, "reset", "-q", "--soft", "HEAD~1"); err != nil {
			return fmt.Errorf("failed to undo the last commit: %w", err)
		}
	}
	return nil
}
