// Package setup creates the working repository and the device setup script.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"githelper.dev/githelper/internal/config"
	gherrors "githelper.dev/githelper/internal/errors"
	"githelper.dev/githelper/internal/git"
	"githelper.dev/githelper/internal/runner"
	"githelper.dev/githelper/internal/sshkey"
)

// InitialCommitMessage is the message of the first commit in a new repository
const InitialCommitMessage = "Initial commit via githelper"

// InitResult describes a newly created repository
type InitResult struct {
	Dir    string
	Remote string
	// Written lists the template files that were created
	Written []string
}

// InitRepo creates the repository folder dir (repo.folder when empty), initializes
// git in it, writes the starter files, makes the first commit and adds the origin
// remote. A folder that already holds a repository is left alone.
func InitRepo(ctx context.Context, r runner.Runner, cfg *config.Config, dir string, now time.Time) (InitResult, error) {
	if missing := cfg.Missing(); len(missing) > 0 {
		return InitResult{}, fmt.Errorf("missing configuration: %s (run 'githelper config init')", strings.Join(missing, ", "))
	}
	if dir == "" {
		d, err := cfg.RepoDir()
		if err != nil {
			return InitResult{}, err
		}
		dir = d
	}

	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		return InitResult{}, fmt.Errorf("%s: %w", dir, gherrors.ErrAlreadyInitialized)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return InitResult{}, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	client := git.NewClient(dir, r)
	if err := client.Init(ctx, cfg.Repo.Branch); err != nil {
		return InitResult{}, err
	}
	if err := client.SetLocalConfig(ctx, "user.name", cfg.Identity.Name); err != nil {
		return InitResult{}, err
	}
	if err := client.SetLocalConfig(ctx, "user.email", cfg.Identity.Email); err != nil {
		return InitResult{}, err
	}

	res := InitResult{Dir: dir, Remote: cfg.RemoteURL()}
	data := newTemplateData(cfg, now)
	for _, f := range []struct{ name, template string }{
		{".gitignore", "gitignore.tmpl"},
		{"README.md", "readme.md.tmpl"},
	} {
		written, err := writeIfMissing(filepath.Join(dir, f.name), f.template, data)
		if err != nil {
			return res, err
		}
		if written {
			res.Written = append(res.Written, f.name)
		}
	}

	if err := client.AddAll(ctx); err != nil {
		return res, err
	}
	if err := client.Commit(ctx, InitialCommitMessage); err != nil {
		return res, err
	}
	if err := client.SetRemoteURL(cfg.Repo.Remote, res.Remote); err != nil {
		return res, err
	}
	return res, nil
}

func writeIfMissing(path, tmpl string, data templateData) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	content, err := render(tmpl, data)
	if err != nil {
		return false, fmt.Errorf("failed to render %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// DeviceScript renders the bash script that prepares a fresh Termux install
func DeviceScript(cfg *config.Config, now time.Time) ([]byte, error) {
	if missing := cfg.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("missing configuration: %s (run 'githelper config init')", strings.Join(missing, ", "))
	}
	return render("device.sh.tmpl", newTemplateData(cfg, now))
}

// WriteDeviceScript renders the device script to path as an executable file
func WriteDeviceScript(path string, cfg *config.Config, now time.Time) error {
	script, err := DeviceScript(cfg, now)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, script, 0o755); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// WriteFile only applies the mode to new files and is subject to umask
	return os.Chmod(path, 0o755)
}

func newTemplateData(cfg *config.Config, now time.Time) templateData {
	folder := cfg.Repo.Folder
	if folder == "" {
		folder = config.DefaultFolderRoot + "/" + cfg.Repo.Name
	}
	return templateData{
		Name:        cfg.Identity.Name,
		Email:       cfg.Identity.Email,
		User:        cfg.Identity.GitHubUser,
		Repo:        cfg.Repo.Name,
		Host:        cfg.Repo.Host,
		Branch:      cfg.Repo.Branch,
		Remote:      cfg.RemoteURL(),
		Folder:      folder,
		KeyPath:     cfg.SSH.KeyPath,
		KeyType:     cfg.SSH.KeyType,
		SettingsURL: sshkey.SettingsURL,
		Created:     now,
	}
}
