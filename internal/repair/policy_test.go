package repair

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"githelper.dev/githelper/internal/config"
	gherrors "githelper.dev/githelper/internal/errors"
	"githelper.dev/githelper/internal/git"
	"githelper.dev/githelper/internal/output"
	"githelper.dev/githelper/internal/runner"
	"githelper.dev/githelper/testhelpers"
)

const movedOutput = `remote: This repository moved. Please use the new location:
remote:   git@github.com:newowner/newrepo.git
To github.com:oldowner/oldrepo.git
 ! [rejected]        main -> main (fetch first)
error: failed to push some refs to 'github.com:oldowner/oldrepo.git'`

type fakeRemote struct {
	url  string
	sets []string
}

func (f *fakeRemote) RemoteURL(string) (string, error) {
	if f.url == "" {
		return "", gherrors.ErrNoRemote
	}
	return f.url, nil
}

func (f *fakeRemote) SetRemoteURL(_ string, url string) error {
	f.sets = append(f.sets, url)
	f.url = url
	return nil
}

type fakeResolver struct {
	url string
	err error
}

func (f *fakeResolver) Resolve(context.Context, git.Endpoint) (string, error) {
	return f.url, f.err
}

func newPolicy(t *testing.T, remote *fakeRemote) *Policy {
	t.Helper()
	cfg := config.Default()
	cfg.Identity.GitHubUser = "oldowner"
	cfg.Repo.Name = "oldrepo"
	splog, err := output.NewSplogWithConfig(io.Discard, "", false)
	require.NoError(t, err)
	return New(&cfg, remote, nil, splog)
}

// scripted returns an operation that hands out results in order and counts calls;
// the last result repeats
func scripted(calls *int, results ...runner.Result) Operation {
	return func(context.Context) (runner.Result, error) {
		idx := *calls
		if idx >= len(results) {
			idx = len(results) - 1
		}
		*calls++
		return results[idx], nil
	}
}

func TestRepair(t *testing.T) {
	ctx := context.Background()

	t.Run("sets the remote to the locator from the output", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		p := newPolicy(t, remote)

		outcome, err := p.Repair(ctx, movedOutput)
		require.NoError(t, err)
		require.True(t, outcome.Moved)
		require.Equal(t, "git@github.com:newowner/newrepo.git", remote.url)
		require.Equal(t, []string{"git@github.com:newowner/newrepo.git"}, remote.sets)
		require.Equal(t, SourceOutput, outcome.Source)
		require.Equal(t, "git@github.com:oldowner/oldrepo.git", outcome.OldURL)
		require.Equal(t, "newrepo", outcome.Endpoint.Repo)
	})

	t.Run("output without marker is a no-op", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		p := newPolicy(t, remote)

		outcome, err := p.Repair(ctx, "To github.com:oldowner/oldrepo.git\n   abc..def  main -> main\nremote: see git@github.com:other/place.git")
		require.NoError(t, err)
		require.False(t, outcome.Moved)
		require.Empty(t, remote.sets)
		require.Equal(t, "git@github.com:oldowner/oldrepo.git", remote.url)
	})

	t.Run("marker without locator fails loudly", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		p := newPolicy(t, remote)

		_, err := p.Repair(ctx, "remote: This repository moved. Please use the new location:")
		require.ErrorIs(t, err, gherrors.ErrNoReplacementURL)
		require.Empty(t, remote.sets)
	})

	t.Run("resolver supplies the location when the output does not", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		p := newPolicy(t, remote)
		p.Resolver = &fakeResolver{url: "git@github.com:api/located.git"}

		outcome, err := p.Repair(ctx, "remote: This repository moved.")
		require.NoError(t, err)
		require.Equal(t, SourceResolver, outcome.Source)
		require.Equal(t, "git@github.com:api/located.git", remote.url)
	})

	t.Run("fallback is used only when enabled", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		cfg := config.Default()
		cfg.Identity.GitHubUser = "me"
		cfg.Repo.Name = "guess"
		cfg.Repair.AllowFallback = true
		p := New(&cfg, remote, &fakeResolver{err: errors.New("no token")}, output.NewSplog())
		p.Log, _ = output.NewSplogWithConfig(io.Discard, "", false)

		outcome, err := p.Repair(ctx, "remote: This repository moved.")
		require.NoError(t, err)
		require.Equal(t, SourceFallback, outcome.Source)
		require.Equal(t, "git@github.com:me/guess.git", remote.url)
	})

	t.Run("fallback reflects the current repository name", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:me/guess.git"}
		cfg := config.Default()
		cfg.Identity.GitHubUser = "me"
		cfg.Repo.Name = "guess"
		cfg.Repair.AllowFallback = true
		splog, err := output.NewSplogWithConfig(io.Discard, "", false)
		require.NoError(t, err)
		p := New(&cfg, remote, nil, splog)

		cfg.Repo.Name = "renamed"
		outcome, err := p.Repair(ctx, "remote: This repository moved.")
		require.NoError(t, err)
		require.Equal(t, SourceFallback, outcome.Source)
		require.Equal(t, "git@github.com:me/renamed.git", remote.url)
	})

	t.Run("custom signatures", func(t *testing.T) {
		remote := &fakeRemote{url: "git@gitea.local:me/old.git"}
		p := newPolicy(t, remote)
		p.Signatures = []config.Signature{{Name: "gitea", Marker: "has been renamed to"}}

		outcome, err := p.Repair(ctx, "remote: has been renamed to\nremote: git@gitea.local:me/new.git")
		require.NoError(t, err)
		require.Equal(t, "gitea", outcome.Signature)
		require.Equal(t, "git@gitea.local:me/new.git", remote.url)

		outcome, err = p.Repair(ctx, movedOutput)
		require.NoError(t, err)
		require.False(t, outcome.Moved)
	})

	t.Run("unchanged remote is not rewritten", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:newowner/newrepo.git"}
		p := newPolicy(t, remote)
		repaired := 0
		p.OnRepaired = func(Outcome) { repaired++ }

		outcome, err := p.Repair(ctx, movedOutput)
		require.NoError(t, err)
		require.True(t, outcome.Moved)
		require.Empty(t, remote.sets)
		require.Zero(t, repaired)
	})

	t.Run("on repaired hook receives the outcome", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		p := newPolicy(t, remote)
		var got Outcome
		p.OnRepaired = func(o Outcome) { got = o }

		_, err := p.Repair(ctx, movedOutput)
		require.NoError(t, err)
		require.Equal(t, "newrepo", got.Endpoint.Repo)
		require.Equal(t, "newowner", got.Endpoint.Owner)
	})
}

func TestExtractLocator(t *testing.T) {
	url, ok := ExtractLocator(movedOutput)
	require.True(t, ok)
	require.Equal(t, "git@github.com:newowner/newrepo.git", url)

	url, ok = ExtractLocator("remote: moved\nremote:   https://github.com/newowner/newrepo")
	require.True(t, ok)
	require.Equal(t, "https://github.com/newowner/newrepo", url)

	_, ok = ExtractLocator("nothing useful here")
	require.False(t, ok)
}

func TestDo(t *testing.T) {
	ctx := context.Background()
	moved := runner.Result{ExitCode: 1, Output: movedOutput}

	t.Run("failed push with marker is repaired and retried once", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		p := newPolicy(t, remote)
		calls := 0

		res, outcome, err := p.Do(ctx, scripted(&calls, moved, runner.Result{Output: "ok"}))
		require.NoError(t, err)
		require.True(t, res.Success())
		require.True(t, outcome.Moved)
		require.Equal(t, 2, calls)
		require.Len(t, remote.sets, 1)
	})

	t.Run("second failure does not trigger a second repair", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		p := newPolicy(t, remote)
		stillMoved := runner.Result{ExitCode: 1, Output: "remote: This repository moved.\nremote: git@github.com:third/place.git"}
		calls := 0

		res, _, err := p.Do(ctx, scripted(&calls, moved, stillMoved, runner.Result{Output: "never"}))
		require.NoError(t, err)
		require.False(t, res.Success())
		require.Equal(t, stillMoved.Output, res.Output)
		require.Equal(t, 2, calls)
		require.Equal(t, []string{"git@github.com:newowner/newrepo.git"}, remote.sets)
	})

	t.Run("failure with marker but unchanged remote is not retried", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:newowner/newrepo.git"}
		p := newPolicy(t, remote)
		calls := 0

		res, outcome, err := p.Do(ctx, scripted(&calls, moved, runner.Result{Output: "never"}))
		require.NoError(t, err)
		require.True(t, outcome.Moved)
		require.False(t, res.Success())
		require.Equal(t, movedOutput, res.Output)
		require.Equal(t, 1, calls)
		require.Empty(t, remote.sets)
	})

	t.Run("generic failure is returned verbatim without retry", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		p := newPolicy(t, remote)
		failure := runner.Result{ExitCode: 128, Output: "fatal: Could not read from remote repository."}
		calls := 0

		res, outcome, err := p.Do(ctx, scripted(&calls, failure, runner.Result{}))
		require.NoError(t, err)
		require.False(t, outcome.Moved)
		require.Equal(t, failure.Output, res.Output)
		require.Equal(t, 1, calls)
		require.Empty(t, remote.sets)
	})

	t.Run("successful push with marker is repaired without retry", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		p := newPolicy(t, remote)
		calls := 0

		res, outcome, err := p.Do(ctx, scripted(&calls, runner.Result{Output: movedOutput}, runner.Result{}))
		require.NoError(t, err)
		require.True(t, res.Success())
		require.True(t, outcome.Moved)
		require.Equal(t, 1, calls)
		require.Len(t, remote.sets, 1)
	})

	t.Run("unlocatable move returns the error and the original result", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		p := newPolicy(t, remote)
		calls := 0

		res, _, err := p.Do(ctx, scripted(&calls, runner.Result{ExitCode: 1, Output: "remote: This repository moved."}))
		require.ErrorIs(t, err, gherrors.ErrNoReplacementURL)
		require.Equal(t, 1, res.ExitCode)
		require.Equal(t, 1, calls)
	})
}

func TestPreflight(t *testing.T) {
	ctx := context.Background()

	t.Run("no remote skips the fetch", func(t *testing.T) {
		p := newPolicy(t, &fakeRemote{})
		calls := 0

		outcome, err := p.Preflight(ctx, scripted(&calls, runner.Result{}))
		require.NoError(t, err)
		require.False(t, outcome.Moved)
		require.Zero(t, calls)
	})

	t.Run("invalid remote is refused before fetching", func(t *testing.T) {
		p := newPolicy(t, &fakeRemote{url: "not a locator"})
		calls := 0

		_, err := p.Preflight(ctx, scripted(&calls, runner.Result{}))
		require.ErrorIs(t, err, gherrors.ErrInvalidRemote)
		require.Zero(t, calls)
	})

	t.Run("fetch output with marker repairs the remote", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		p := newPolicy(t, remote)
		calls := 0

		outcome, err := p.Preflight(ctx, scripted(&calls, runner.Result{Output: movedOutput}))
		require.NoError(t, err)
		require.True(t, outcome.Moved)
		require.Equal(t, "git@github.com:newowner/newrepo.git", remote.url)
	})

	t.Run("failed fetch without marker is not an error", func(t *testing.T) {
		remote := &fakeRemote{url: "git@github.com:oldowner/oldrepo.git"}
		p := newPolicy(t, remote)
		calls := 0

		_, err := p.Preflight(ctx, scripted(&calls, runner.Result{ExitCode: 128, Output: "fatal: unable to access"}))
		require.NoError(t, err)
		require.Empty(t, remote.sets)
	})
}

func TestRepairRealRepository(t *testing.T) {
	scene := testhelpers.NewScene(t, nil)
	client := git.NewClient(scene.Dir, scene.Runner)
	require.NoError(t, client.SetRemoteURL("origin", "git@github.com:oldowner/oldrepo.git"))

	p := newPolicy(t, nil)
	p.Remote = client

	_, err := p.Repair(context.Background(), movedOutput)
	require.NoError(t, err)

	url, err := scene.Repo.RemoteURL("origin")
	require.NoError(t, err)
	require.Equal(t, "git@github.com:newowner/newrepo.git", url)
}
