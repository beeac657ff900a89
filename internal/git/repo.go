package git

import (
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	gherrors "githelper.dev/githelper/internal/errors"
)

// open opens the repository at the client's folder without searching parents
func (c *Client) open() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpen(c.dir)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, gherrors.NewNotARepositoryError(c.dir)
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return repo, nil
}

// IsRepository reports whether the folder has a git metadata directory
func (c *Client) IsRepository() bool {
	_, err := c.open()
	return err == nil
}

// RequireRepository returns a NotARepositoryError when the folder is not a repository
func (c *Client) RequireRepository() error {
	_, err := c.open()
	return err
}

// RemoteURL returns the first URL of the named remote
func (c *Client) RemoteURL(name string) (string, error) {
	repo, err := c.open()
	if err != nil {
		return "", err
	}
	remote, err := repo.Remote(name)
	if err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return "", fmt.Errorf("%w: %s", gherrors.ErrNoRemote, name)
		}
		return "", fmt.Errorf("failed to read remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: %s has no URL", gherrors.ErrNoRemote, name)
	}
	return urls[0], nil
}

// SetRemoteURL points the named remote at url, creating the remote if needed
func (c *Client) SetRemoteURL(name, url string) error {
	repo, err := c.open()
	if err != nil {
		return err
	}
	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read repository config: %w", err)
	}

	if remote, ok := cfg.Remotes[name]; ok {
		remote.URLs = []string{url}
	} else {
		cfg.Remotes[name] = &gitconfig.RemoteConfig{
			Name:  name,
			URLs:  []string{url},
			Fetch: []gitconfig.RefSpec{gitconfig.RefSpec(fmt.Sprintf(gitconfig.DefaultFetchRefSpec, name))},
		}
	}

	if err := repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to set remote %s: %w", name, err)
	}
	return nil
}

// CommitCount returns the number of commits reachable from HEAD (0 on an unborn branch)
func (c *Client) CommitCount() (int, error) {
	repo, err := c.open()
	if err != nil {
		return 0, err
	}
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	iter, err := repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return 0, fmt.Errorf("failed to walk history: %w", err)
	}
	defer iter.Close()

	count := 0
	err = iter.ForEach(func(_ *object.Commit) error {
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to walk history: %w", err)
	}
	return count, nil
}

// CurrentBranch returns the branch HEAD points at, including an unborn one
func (c *Client) CurrentBranch() (string, error) {
	repo, err := c.open()
	if err != nil {
		return "", err
	}
	ref, err := repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if ref.Type() != plumbing.SymbolicReference {
		return "", fmt.Errorf("HEAD is detached at %s", ref.Hash().String()[:7])
	}
	return ref.Target().Short(), nil
}

// HeadMessage returns the subject line of the HEAD commit
func (c *Client) HeadMessage() (string, error) {
	repo, err := c.open()
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", gherrors.ErrNoCommits
		}
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD commit: %w", err)
	}
	subject, _, _ := strings.Cut(commit.Message, "\n")
	return subject, nil
}
