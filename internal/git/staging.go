package git

import (
	"context"
	"fmt"
	"strings"

	"githelper.dev/githelper/internal/runner"
)

// Status returns `git status --short --branch` output
func (c *Client) Status(ctx context.Context) (runner.Result, error) {
	return c.Exec(ctx, "status", "--short", "--branch")
}

// ChangedFiles returns the paths with staged, unstaged or untracked changes.
// Paths are read NUL-separated so names are never quoted or escaped.
func (c *Client) ChangedFiles(ctx context.Context) ([]string, error) {
	fields, err := c.runFields(ctx, "status", "--porcelain", "-z", "--untracked-files=all")
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files: %w", err)
	}

	var files []string
	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if len(entry) < 4 {
			continue
		}
		files = append(files, entry[3:])
		// renames and copies are followed by their source path
		if strings.ContainsAny(entry[:2], "RC") {
			i++
		}
	}
	return files, nil
}

// ModifiedFiles returns tracked files with unstaged modifications
func (c *Client) ModifiedFiles(ctx context.Context) ([]string, error) {
	files, err := c.runFields(ctx, "diff", "--name-only", "-z")
	if err != nil {
		return nil, fmt.Errorf("failed to list modified files: %w", err)
	}
	return files, nil
}

// TrackedFiles returns `git ls-files`
func (c *Client) TrackedFiles(ctx context.Context) ([]string, error) {
	files, err := c.runFields(ctx, "ls-files", "-z")
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked files: %w", err)
	}
	return files, nil
}

// AddAll stages all changes including untracked files
func (c *Client) AddAll(ctx context.Context) error {
	if _, err := c.run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage all changes: %w", err)
	}
	return nil
}

// Add stages a single path
func (c *Client) Add(ctx context.Context, path string) error {
	if _, err := c.run(ctx, "add", "--", path); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	return nil
}

// HasStagedChanges checks if there are staged changes
func (c *Client) HasStagedChanges(ctx context.Context) (bool, error) {
	res, err := c.Exec(ctx, "diff", "--cached", "--quiet")
	if err != nil {
		return false, fmt.Errorf("failed to check staged changes: %w", err)
	}
	switch res.ExitCode {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("failed to check staged changes: %s", res.Trimmed())
	}
}
