package runtime

import (
	"context"
	"io"
	"os"
	"time"

	"githelper.dev/githelper/internal/browser"
	"githelper.dev/githelper/internal/config"
	"githelper.dev/githelper/internal/git"
	"githelper.dev/githelper/internal/github"
	"githelper.dev/githelper/internal/output"
	"githelper.dev/githelper/internal/prompt"
	"githelper.dev/githelper/internal/repair"
	"githelper.dev/githelper/internal/runner"
	"githelper.dev/githelper/internal/sshkey"
)

// Context provides configuration and collaborators to actions
type Context struct {
	Config     *config.Config
	ConfigPath string
	Git        *git.Client
	Splog      *output.Splog
	Prompter   prompt.Prompter
	Runner     runner.Runner
	Opener     *browser.Opener
	Keys       *sshkey.Manager
	Repair     *repair.Policy
	Now        func() time.Time

	github    *github.Client
	githubErr error
}

// Options control how New builds a Context
type Options struct {
	// ConfigPath overrides the default config location
	ConfigPath string
	// RepoDir overrides the configured repository folder
	RepoDir string
	Debug   bool
	In      io.Reader
	Out     io.Writer
}

// New loads the configuration and wires the real collaborators
func New(opts Options) (*Context, error) {
	path := opts.ConfigPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return nil, err
		}
		path = p
	} else {
		p, err := config.ExpandPath(path)
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	logFile, err := config.ExpandPath(cfg.Log.File)
	if err != nil {
		return nil, err
	}
	splog, err := output.NewSplogWithConfig(out, logFile, opts.Debug || os.Getenv("DEBUG") != "")
	if err != nil {
		return nil, err
	}

	c, err := NewWithConfig(&cfg, splog, prompt.New(in, out), runner.NewExecRunner(splog), opts.RepoDir)
	if err != nil {
		return nil, err
	}
	c.ConfigPath = path
	return c, nil
}

// NewWithConfig wires a Context around an already loaded configuration.
// repoDir overrides the configured folder when set.
func NewWithConfig(cfg *config.Config, splog *output.Splog, p prompt.Prompter, r runner.Runner, repoDir string) (*Context, error) {
	dir := repoDir
	if dir == "" {
		d, err := cfg.RepoDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	keyPath, err := cfg.KeyPath()
	if err != nil {
		return nil, err
	}

	c := &Context{
		Config:   cfg,
		Git:      git.NewClient(dir, r),
		Splog:    splog,
		Prompter: p,
		Runner:   r,
		Opener:   browser.NewOpener(r, cfg.Viewer.Component, splog),
		Keys:     sshkey.New(r, keyPath, cfg.SSH.KeyType, cfg.Identity.Email, cfg.Repo.Host),
		Now:      time.Now,
	}
	c.Repair = repair.New(cfg, c.Git, &lazyResolver{ctx: c}, splog)
	c.Repair.OnRepaired = c.persistRepoName
	return c, nil
}

// SetGitHub installs a GitHub client, skipping token discovery
func (c *Context) SetGitHub(client *github.Client) {
	c.github = client
	c.githubErr = nil
}

// GitHub returns a client for the configured host, discovering a token on first use
func (c *Context) GitHub(ctx context.Context) (*github.Client, error) {
	if c.github == nil && c.githubErr == nil {
		c.github, c.githubErr = github.Discover(ctx, c.Runner, c.Config.Repo.Host)
	}
	return c.github, c.githubErr
}

// persistRepoName records the repository's new name after a repair so menu headers
// and later remotes use it. The folder is pinned first because the default folder
// is derived from the name.
func (c *Context) persistRepoName(o repair.Outcome) {
	if o.Endpoint.Repo == "" || o.Endpoint.Repo == c.Config.Repo.Name {
		return
	}
	if c.Config.Repo.Folder == "" {
		c.Config.Repo.Folder = c.Git.Dir()
	}
	c.Config.Repo.Name = o.Endpoint.Repo
	c.Splog.Debug("repository name is now %s", o.Endpoint.Repo)

	if c.ConfigPath == "" {
		return
	}
	name, folder := c.Config.Repo.Name, c.Config.Repo.Folder
	err := config.Update(c.ConfigPath, func(cfg *config.Config) {
		cfg.Repo.Name = name
		cfg.Repo.Folder = folder
	})
	if err != nil {
		c.Splog.Warn("Could not save the new repository name: %v", err)
	}
}

// lazyResolver defers GitHub token discovery until a repair needs it
type lazyResolver struct {
	ctx *Context
}

func (r *lazyResolver) Resolve(ctx context.Context, current git.Endpoint) (string, error) {
	client, err := r.ctx.GitHub(ctx)
	if err != nil {
		return "", err
	}
	return client.Resolve(ctx, current)
}
