// Package runner executes external commands (git, ssh, ssh-keygen, am) and captures
// their combined output and exit status.
package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result is the captured outcome of one command invocation
type Result struct {
	Command  string
	Args     []string
	Output   string
	ExitCode int
}

// Success reports whether the command exited with status 0
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Trimmed returns the output without surrounding whitespace
func (r Result) Trimmed() string {
	return strings.TrimSpace(r.Output)
}

// Lines returns the non-empty output lines
func (r Result) Lines() []string {
	var lines []string
	for _, line := range strings.Split(r.Output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Runner runs a command in a directory and captures its result.
// A non-zero exit status is reported in the Result, not as an error; the error is
// reserved for commands that could not be started at all.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// Interactive is implemented by runners that can attach a command to the terminal
type Interactive interface {
	RunInteractive(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// RunAttached runs the command attached to the terminal when r supports it.
// The bool reports whether the output already reached the terminal.
func RunAttached(ctx context.Context, r Runner, dir, name string, args ...string) (Result, bool, error) {
	if ir, ok := r.(Interactive); ok {
		res, err := ir.RunInteractive(ctx, dir, name, args...)
		return res, true, err
	}
	res, err := r.Run(ctx, dir, name, args...)
	return res, false, err
}

// Logger receives a line per executed command
type Logger interface {
	Debug(format string, args ...interface{})
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	// Env is appended to the process environment
	Env []string
	Log Logger
}

// NewExecRunner creates a new ExecRunner
func NewExecRunner(log Logger) *ExecRunner {
	return &ExecRunner{Log: log}
}

// Run executes the command and captures stdout and stderr together
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	return r.run(ctx, dir, false, name, args...)
}

// RunInteractive executes the command attached to the terminal while still capturing
// what it prints, for commands that may prompt (ssh host key confirmation).
func (r *ExecRunner) RunInteractive(ctx context.Context, dir, name string, args ...string) (Result, error) {
	return r.run(ctx, dir, true, name, args...)
}

func (r *ExecRunner) run(ctx context.Context, dir string, attach bool, name string, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.Log != nil {
		r.Log.Debug("$ %s %s", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	var combined bytes.Buffer
	if attach {
		cmd.Stdin = os.Stdin
		cmd.Stdout = io.MultiWriter(os.Stdout, &combined)
		cmd.Stderr = io.MultiWriter(os.Stderr, &combined)
	} else {
		cmd.Stdout = &combined
		cmd.Stderr = &combined
	}

	err := cmd.Run()
	res := Result{Command: name, Args: args, Output: combined.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	case ctx.Err() != nil:
		res.ExitCode = -1
		return res, ctx.Err()
	default:
		res.ExitCode = -1
		return res, err
	}
}
