// Package github talks to the GitHub REST API: uploading SSH keys and looking up
// where a moved repository lives now.
package github

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	gherrors "githelper.dev/githelper/internal/errors"
	"githelper.dev/githelper/internal/git"
	"githelper.dev/githelper/internal/runner"
)

// Client wraps the go-github client for the few calls githelper makes
type Client struct {
	api *github.Client
}

// Key is an SSH key registered on the account
type Key struct {
	ID    int64
	Title string
	URL   string
}

// Token returns a GitHub token from GITHUB_TOKEN, GH_TOKEN or the gh CLI
func Token(ctx context.Context, r runner.Runner) (string, error) {
	for _, name := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if token := os.Getenv(name); token != "" {
			return token, nil
		}
	}

	res, err := r.Run(ctx, "", "gh", "auth", "token")
	if err != nil || !res.Success() {
		return "", gherrors.ErrNoToken
	}
	token := res.Trimmed()
	if token == "" {
		return "", gherrors.ErrNoToken
	}
	return token, nil
}

// NewClient creates an authenticated client. Hosts other than github.com are
// treated as GitHub Enterprise servers.
func NewClient(ctx context.Context, host, token string) (*Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	api := github.NewClient(oauth2.NewClient(ctx, ts))

	if host != "" && host != "github.com" {
		var err error
		base := "https://" + host + "/api/v3/"
		api, err = api.WithEnterpriseURLs(base, "https://"+host+"/api/uploads/")
		if err != nil {
			return nil, fmt.Errorf("failed to configure GitHub Enterprise host %s: %w", host, err)
		}
	}
	return &Client{api: api}, nil
}

// Discover finds a token and creates a client for host
func Discover(ctx context.Context, r runner.Runner, host string) (*Client, error) {
	token, err := Token(ctx, r)
	if err != nil {
		return nil, err
	}
	return NewClient(ctx, host, token)
}

// NewClientWithAPI wraps an existing go-github client
func NewClientWithAPI(api *github.Client) *Client {
	return &Client{api: api}
}

// Resolve returns the SSH URL GitHub reports for the repository behind ep.
// GitHub answers requests for a renamed or transferred repository with a redirect
// to its new home, so the returned URL reflects the current owner and name.
func (c *Client) Resolve(ctx context.Context, ep git.Endpoint) (string, error) {
	if ep.Owner == "" || ep.Repo == "" {
		return "", fmt.Errorf("cannot look up %q on GitHub: %w", ep.Raw, gherrors.ErrInvalidRemote)
	}

	repo, _, err := c.api.Repositories.Get(ctx, ep.Owner, ep.Repo)
	if err != nil {
		return "", fmt.Errorf("failed to look up %s: %w", ep.FullName(), err)
	}

	if url := repo.GetSSHURL(); url != "" {
		return url, nil
	}
	if full := repo.GetFullName(); full != "" {
		host := ep.Host
		if host == "" {
			host = "github.com"
		}
		return fmt.Sprintf("git@%s:%s.git", host, full), nil
	}
	return "", fmt.Errorf("GitHub returned no location for %s", ep.FullName())
}

// UploadKey registers a public key on the authenticated account
func (c *Client) UploadKey(ctx context.Context, title, publicKey string) (*Key, error) {
	key, _, err := c.api.Users.CreateKey(ctx, &github.Key{
		Title: github.String(title),
		Key:   github.String(strings.TrimSpace(publicKey)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload ssh key: %w", err)
	}
	return &Key{ID: key.GetID(), Title: key.GetTitle(), URL: key.GetURL()}, nil
}

// Login returns the authenticated user's login
func (c *Client) Login(ctx context.Context) (string, error) {
	user, _, err := c.api.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get GitHub user: %w", err)
	}
	return user.GetLogin(), nil
}
