package actions

import (
	"context"
	"errors"
	"strings"

	gherrors "githelper.dev/githelper/internal/errors"
	"githelper.dev/githelper/internal/git"
	"githelper.dev/githelper/internal/runtime"
)

// FixRemoteAction sets the remote URL by hand. With no URL given it shows the current
// one and asks; an empty answer runs the automatic check instead.
func FixRemoteAction(ctx context.Context, rc *runtime.Context, url string) error {
	if err := rc.Git.RequireRepository(); err != nil {
		return err
	}
	splog := rc.Splog
	remote := rc.Config.Repo.Remote

	current, err := rc.Git.RemoteURL(remote)
	switch {
	case err == nil:
		splog.Info("Current %s: %s", remote, current)
	case errors.Is(err, gherrors.ErrNoRemote):
		splog.Info("No %s remote yet. Suggested: %s", remote, rc.Config.RemoteURL())
	default:
		return err
	}

	if url == "" {
		url, err = rc.Prompter.Input("New remote URL (empty to check automatically)", "")
		if err != nil {
			return err
		}
		url = strings.TrimSpace(url)
	}

	if url == "" {
		if current == "" {
			splog.Info("Nothing to check without a remote.")
			return nil
		}
		if err := prepare(ctx, rc); err != nil {
			return err
		}
		splog.Success("Remote %s checked.", remote)
		return nil
	}

	if err := git.CheckTransport(url); err != nil {
		return err
	}
	if err := rc.Git.SetRemoteURL(remote, url); err != nil {
		return err
	}
	splog.Success("%s now points at %s.", remote, url)
	return nil
}
