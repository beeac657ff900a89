package git

import (
	"testing"

	"github.com/stretchr/testify/require"

	gherrors "githelper.dev/githelper/internal/errors"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  Endpoint
		isSSH string
	}{
		{
			name:  "scp form",
			raw:   "git@github.com:owner/repo.git",
			want:  Endpoint{Raw: "git@github.com:owner/repo.git", Scheme: "scp", User: "git", Host: "github.com", Owner: "owner", Repo: "repo"},
			isSSH: "git@github.com:owner/repo.git",
		},
		{
			name:  "scp form without suffix or user",
			raw:   "github.com:owner/my.repo",
			want:  Endpoint{Raw: "github.com:owner/my.repo", Scheme: "scp", Host: "github.com", Owner: "owner", Repo: "my.repo"},
			isSSH: "git@github.com:owner/my.repo.git",
		},
		{
			name:  "https form",
			raw:   "https://github.com/owner/repo.git",
			want:  Endpoint{Raw: "https://github.com/owner/repo.git", Scheme: "https", Host: "github.com", Owner: "owner", Repo: "repo"},
			isSSH: "git@github.com:owner/repo.git",
		},
		{
			name:  "ssh url with port",
			raw:   "ssh://git@ssh.github.com:443/owner/repo.git",
			want:  Endpoint{Raw: "ssh://git@ssh.github.com:443/owner/repo.git", Scheme: "ssh", User: "git", Host: "ssh.github.com", Owner: "owner", Repo: "repo"},
			isSSH: "git@ssh.github.com:owner/repo.git",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := ParseEndpoint(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, ep)
			require.Equal(t, tt.isSSH, ep.SSH())
			require.Equal(t, tt.want.Owner+"/"+tt.want.Repo, ep.FullName())
		})
	}

	for _, raw := range []string{"", "not a url", "/local/path/repo", "https://github.com/only-owner", "git@github.com:repo.git", "file:///tmp/x/y"} {
		t.Run("invalid "+raw, func(t *testing.T) {
			_, err := ParseEndpoint(raw)
			require.ErrorIs(t, err, gherrors.ErrInvalidRemote)
		})
	}
}

func TestContainsLocator(t *testing.T) {
	require.True(t, ContainsLocator("remote:   git@github.com:newowner/newrepo.git"))
	require.True(t, ContainsLocator("remote:   https://github.com/newowner/newrepo.git"))
	require.False(t, ContainsLocator("remote: This repository moved. Please use the new location:"))
	require.False(t, ContainsLocator("Everything up-to-date"))
}

func TestCheckTransport(t *testing.T) {
	require.NoError(t, CheckTransport("git@github.com:owner/repo.git"))
	require.NoError(t, CheckTransport("/data/mirror/repo.git"))
	require.NoError(t, CheckTransport("file:///data/mirror/repo.git"))
	require.ErrorIs(t, CheckTransport("github.com/owner"), gherrors.ErrInvalidRemote)
}
