// Package testhelpers provides testing utilities for githelper,
// including a scene system, Git repository helpers, a mock GitHub server, and custom assertions.
package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// ExpectCommitCount asserts the number of commits reachable from HEAD.
func ExpectCommitCount(t *testing.T, repo *GitRepo, expected int) {
	t.Helper()

	count, err := repo.CommitCount()
	require.NoError(t, err, "Failed to count commits")
	require.Equal(t, expected, count, "Commit count does not match")
}

// ExpectHeadMessage asserts the subject of the HEAD commit.
func ExpectHeadMessage(t *testing.T, repo *GitRepo, expected string) {
	t.Helper()

	msg, err := repo.HeadMessage()
	require.NoError(t, err, "Failed to read HEAD message")
	require.Equal(t, expected, msg, "HEAD message does not match")
}

// ExpectClean asserts that the working tree has no staged, unstaged, or untracked changes.
func ExpectClean(t *testing.T, repo *GitRepo) {
	t.Helper()

	out, err := repo.RunGitCommandAndGetOutput("status", "--porcelain")
	require.NoError(t, err, "Failed to read status")
	require.Empty(t, out, "Working tree is not clean")
}

// ExpectRemoteURL asserts the URL configured for a remote.
func ExpectRemoteURL(t *testing.T, repo *GitRepo, remote, expected string) {
	t.Helper()

	url, err := repo.RemoteURL(remote)
	require.NoError(t, err, "Failed to read remote URL")
	require.Equal(t, expected, url, "Remote URL does not match")
}

// ExpectRemoteCommitCount asserts the number of commits on a branch of a bare remote.
func ExpectRemoteCommitCount(t *testing.T, remoteDir, branch string, expected int) {
	t.Helper()

	count, err := RemoteCommitCount(remoteDir, branch)
	require.NoError(t, err, "Failed to count remote commits")
	require.Equal(t, expected, count, "Remote commit count does not match")
}
