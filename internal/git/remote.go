package git

import (
	"context"

	"githelper.dev/githelper/internal/runner"
)

// Fetch fetches from the remote; the result carries any "repository moved" notice
func (c *Client) Fetch(ctx context.Context, remote string) (runner.Result, error) {
	return c.Exec(ctx, "fetch", remote)
}

// Push pushes branch to remote and sets it as upstream
func (c *Client) Push(ctx context.Context, remote, branch string) (runner.Result, error) {
	return c.Exec(ctx, "push", "-u", remote, branch)
}

// Pull pulls branch from remote into the current branch
func (c *Client) Pull(ctx context.Context, remote, branch string) (runner.Result, error) {
	return c.Exec(ctx, "pull", "--no-rebase", remote, branch)
}
