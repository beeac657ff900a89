package actions

import (
	"context"
	"fmt"
	"strings"

	"githelper.dev/githelper/internal/git"
	"githelper.dev/githelper/internal/output"
	"githelper.dev/githelper/internal/runtime"
)

// StatusAction shows `git status --short --branch`
func StatusAction(ctx context.Context, rc *runtime.Context) error {
	if err := rc.Git.RequireRepository(); err != nil {
		return err
	}
	res, err := rc.Git.Status(ctx)
	show(rc, res)
	return check(res, err)
}

// LogAction shows the last n commits as a graph; n <= 0 uses repo.log_limit
func LogAction(ctx context.Context, rc *runtime.Context, n int) error {
	if err := rc.Git.RequireRepository(); err != nil {
		return err
	}
	if n <= 0 {
		n = rc.Config.Repo.LogLimit
	}
	count, err := rc.Git.CommitCount()
	if err != nil {
		return err
	}
	if count == 0 {
		rc.Splog.Info("No commits yet.")
		return nil
	}
	res, err := rc.Git.Log(ctx, n)
	if err := check(res, err); err != nil {
		return err
	}
	lines := strings.Split(res.Trimmed(), "\n")
	for i, line := range lines {
		lines[i] = output.FormatLogLine(line)
	}
	rc.Splog.Page(strings.Join(lines, "\n"))
	return nil
}

// BranchInfoAction shows the current branch, all branches and the parsed remote
func BranchInfoAction(ctx context.Context, rc *runtime.Context) error {
	if err := rc.Git.RequireRepository(); err != nil {
		return err
	}
	splog := rc.Splog

	branch, err := rc.Git.CurrentBranch()
	if err != nil {
		splog.Warn("%v", err)
	} else {
		splog.Info("Current branch: %s", output.Key(branch))
	}

	res, err := rc.Git.Branches(ctx)
	if err := check(res, err); err != nil {
		return err
	}
	if res.Trimmed() == "" {
		splog.Info("No branches yet (make a first commit).")
	} else {
		show(rc, res)
	}

	remote := rc.Config.Repo.Remote
	url, err := rc.Git.RemoteURL(remote)
	if err != nil {
		splog.Info("Remote %s: %v", remote, err)
		return nil
	}
	splog.Info("Remote %s: %s", remote, url)
	if ep, err := git.ParseEndpoint(url); err == nil {
		splog.Info("%s", output.Dim(fmt.Sprintf("  host %s, owner %s, repository %s", ep.Host, ep.Owner, ep.Repo)))
	} else if !git.IsLocalPath(url) {
		splog.Warn("%v", remoteError(err))
	}
	return nil
}

// ListFilesAction shows the tracked files
func ListFilesAction(ctx context.Context, rc *runtime.Context) error {
	if err := rc.Git.RequireRepository(); err != nil {
		return err
	}
	files, err := rc.Git.TrackedFiles(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		rc.Splog.Info("No tracked files.")
		return nil
	}
	rc.Splog.Page(strings.Join(files, "\n"))
	rc.Splog.Info("%s", output.Dim(fmt.Sprintf("%d files", len(files))))
	return nil
}
