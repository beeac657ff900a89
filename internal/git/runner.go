package git

import (
	"context"
	"strings"

	gherrors "githelper.dev/githelper/internal/errors"
	"githelper.dev/githelper/internal/runner"
)

// Client runs git commands inside one repository folder
type Client struct {
	dir    string
	runner runner.Runner
}

// NewClient creates a Client for dir using r to execute git
func NewClient(dir string, r runner.Runner) *Client {
	return &Client{dir: dir, runner: r}
}

// Dir returns the repository folder
func (c *Client) Dir() string {
	return c.dir
}

// Exec runs a git command and returns its captured result, whatever the exit status
func (c *Client) Exec(ctx context.Context, args ...string) (runner.Result, error) {
	return c.runner.Run(ctx, c.dir, "git", args...)
}

// run executes a git command and turns a non-zero exit into a CommandError
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	res, err := c.Exec(ctx, args...)
	if err != nil {
		return "", gherrors.NewCommandError("git", args, res.Output, res.ExitCode, err)
	}
	if !res.Success() {
		return "", gherrors.NewCommandError("git", args, res.Output, res.ExitCode, nil)
	}
	return strings.TrimSpace(res.Output), nil
}

// runFields executes a git command run with -z and returns its NUL-separated fields.
// The output is not trimmed: porcelain entries may start with a space.
func (c *Client) runFields(ctx context.Context, args ...string) ([]string, error) {
	res, err := c.Exec(ctx, args...)
	if err != nil {
		return nil, gherrors.NewCommandError("git", args, res.Output, res.ExitCode, err)
	}
	if !res.Success() {
		return nil, gherrors.NewCommandError("git", args, res.Output, res.ExitCode, nil)
	}
	var fields []string
	for _, f := range strings.Split(res.Output, "\x00") {
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields, nil
}
