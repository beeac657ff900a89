package actions

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"githelper.dev/githelper/internal/runtime"
	"githelper.dev/githelper/internal/setup"
)

// DefaultDeviceScriptName is the file name the device script is written to by default
const DefaultDeviceScriptName = "githelper-device-setup.sh"

// InitRepoAction creates the repository in the git client's folder, which is
// repo.folder unless --repo overrode it
func InitRepoAction(ctx context.Context, rc *runtime.Context) error {
	splog := rc.Splog

	res, err := setup.InitRepo(ctx, rc.Runner, rc.Config, rc.Git.Dir(), rc.Now())
	if err != nil {
		return err
	}

	splog.Success("Initialized %s", res.Dir)
	if len(res.Written) > 0 {
		splog.Info("Created %s", strings.Join(res.Written, ", "))
	}
	splog.Info("Committed \"%s\"", setup.InitialCommitMessage)
	splog.Info("%s → %s", rc.Config.Repo.Remote, res.Remote)
	splog.Tip("Create the empty repository %s/%s on GitHub, then use Quick push.", rc.Config.Identity.GitHubUser, rc.Config.Repo.Name)
	return nil
}

// DeviceScriptAction writes the Termux setup script. An empty path asks for one,
// defaulting to the parent of the repository folder.
func DeviceScriptAction(rc *runtime.Context, path string) error {
	if path == "" {
		def := filepath.Join(filepath.Dir(rc.Git.Dir()), DefaultDeviceScriptName)
		answer, err := rc.Prompter.Input("Write the script to", def)
		if err != nil {
			return err
		}
		path = answer
	}

	if err := setup.WriteDeviceScript(path, rc.Config, rc.Now()); err != nil {
		return err
	}
	rc.Splog.Success("Wrote %s", path)
	rc.Splog.Tip("Copy it to the new device and run: bash %s", filepath.Base(path))
	return nil
}

// missingConfig reports identity settings that must be filled in first
func missingConfig(rc *runtime.Context) error {
	if missing := rc.Config.Missing(); len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s (run 'githelper config init')", strings.Join(missing, ", "))
	}
	return nil
}
