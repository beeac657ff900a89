// Package errors provides sentinel errors and custom error types for githelper.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates that the working folder has no .git directory yet
	ErrNotARepository = errors.New("not a git repository yet")

	// ErrNoRemote indicates that the repository has no origin remote configured
	ErrNoRemote = errors.New("no remote configured")

	// ErrInvalidRemote indicates that the remote URL is not a usable locator
	ErrInvalidRemote = errors.New("invalid remote locator")

	// ErrNoReplacementURL indicates that a move marker was seen but no new location could be determined
	ErrNoReplacementURL = errors.New("repository moved but the new location could not be determined")

	// ErrNoCommits indicates an operation that needs at least one commit
	ErrNoCommits = errors.New("repository has no commits")

	// ErrAlreadyInitialized indicates that the target folder already holds a repository
	ErrAlreadyInitialized = errors.New("repository already initialized")

	// ErrCanceled indicates the user declined a confirmation
	ErrCanceled = errors.New("canceled")

	// ErrNoToken indicates that no GitHub token could be found
	ErrNoToken = errors.New("no GitHub token found, set GITHUB_TOKEN or run 'gh auth login'")

	// ErrNoKey indicates that the SSH key pair does not exist yet
	ErrNoKey = errors.New("ssh key not found")
)

// NotARepositoryError reports the folder that was expected to be a repository
type NotARepositoryError struct {
	Dir string
}

func (e *NotARepositoryError) Error() string {
	return fmt.Sprintf("%s is not a git repository yet, run \"Init repository\" first", e.Dir)
}

// Is returns true if the target error is ErrNotARepository
func (e *NotARepositoryError) Is(target error) bool {
	return target == ErrNotARepository
}

// NewNotARepositoryError creates a new NotARepositoryError
func NewNotARepositoryError(dir string) *NotARepositoryError {
	return &NotARepositoryError{Dir: dir}
}

// InvalidRemoteError represents a remote URL that does not parse as host:owner/repo
type InvalidRemoteError struct {
	URL string
}

func (e *InvalidRemoteError) Error() string {
	if e.URL == "" {
		return "remote URL is empty"
	}
	return fmt.Sprintf("remote %q is not a valid host:owner/repo locator", e.URL)
}

// Is returns true if the target error is ErrInvalidRemote
func (e *InvalidRemoteError) Is(target error) bool {
	return target == ErrInvalidRemote
}

// NewInvalidRemoteError creates a new InvalidRemoteError
func NewInvalidRemoteError(url string) *InvalidRemoteError {
	return &InvalidRemoteError{URL: url}
}

// CommandError represents a failed external command execution
type CommandError struct {
	Command  string
	Args     []string
	Output   string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s command failed", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(": %s %s", e.Command, strings.Join(e.Args, " "))
	}
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError
func NewCommandError(command string, args []string, output string, exitCode int, err error) *CommandError {
	return &CommandError{
		Command:  command,
		Args:     args,
		Output:   output,
		ExitCode: exitCode,
		Err:      err,
	}
}
