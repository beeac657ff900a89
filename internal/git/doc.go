// Package git provides the git operations githelper needs.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Working tree state (status, changed files, tracked files)
//   - Commit operations (add, commit, soft undo)
//   - Remote operations (fetch, push, pull, remote URL read/write)
//   - Repository setup (init, local config)
//
// Mutating commands run through the git binary so the user's credentials, hooks and
// ssh setup apply; repository reads (existence, remote URL, commit count) use go-git.
// This package should be the only place where git commands are executed.
package git
