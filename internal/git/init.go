package git

import (
	"context"
	"fmt"
)

// Init creates a repository in the client's folder with branch as the initial branch
func (c *Client) Init(ctx context.Context, branch string) error {
	if _, err := c.run(ctx, "init", "-q"); err != nil {
		return fmt.Errorf("failed to init repository: %w", err)
	}
	// symbolic-ref works on git versions that predate `init -b`
	if _, err := c.run(ctx, "symbolic-ref", "HEAD", "refs/heads/"+branch); err != nil {
		return fmt.Errorf("failed to set initial branch %s: %w", branch, err)
	}
	return nil
}

// SetLocalConfig sets a repository-local git config value
func (c *Client) SetLocalConfig(ctx context.Context, key, value string) error {
	if _, err := c.run(ctx, "config", key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
