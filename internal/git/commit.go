package git

import (
	"context"
	"fmt"

	"githelper.dev/githelper/internal/runner"
)

// Commit creates a commit with the given message from the staged changes
func (c *Client) Commit(ctx context.Context, message string) error {
	if _, err := c.run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Log returns the decorated one-line graph of the last n commits
func (c *Client) Log(ctx context.Context, n int) (runner.Result, error) {
	return c.Exec(ctx, "log", "--oneline", "--graph", "--decorate", "-n", fmt.Sprint(n))
}

// Branches returns `git branch -vv`
func (c *Client) Branches(ctx context.Context) (runner.Result, error) {
	return c.Exec(ctx, "branch", "-vv")
}
