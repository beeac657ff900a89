package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"githelper.dev/githelper/internal/config"
	gherrors "githelper.dev/githelper/internal/errors"
	"githelper.dev/githelper/internal/prompt"
	"githelper.dev/githelper/testhelpers"
)

// execute runs the root command in-process with isolated git and config
func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_TERMINAL_PROMPT", "0")
	t.Setenv("GITHELPER_CONFIG", filepath.Join(t.TempDir(), "default.toml"))

	var out bytes.Buffer
	cmd := NewRootCmd("1.2.3", "abc123", "2026-10-15")
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, cfg config.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func identityConfig() config.Config {
	cfg := config.Default()
	cfg.Identity = config.Identity{Name: "Ada", Email: "ada@example.com", GitHubUser: "ada"}
	cfg.Repo.Name = "notes"
	return cfg
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	require.Equal(t, "githelper 1.2.3 (commit abc123, built 2026-10-15)\n", out)
}

func TestConfigPathCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")

	out, err := execute(t, "", "config", "path", "--config", path)
	require.NoError(t, err)
	require.Equal(t, path+"\n", out)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	input := strings.Join([]string{
		"Ada Lovelace",
		"ada@example.com",
		"ada",
		"notes",
		"",
		"2",
	}, "\n") + "\n"

	out, err := execute(t, input, "config", "init", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "Saved "+path)
	require.NotContains(t, out, "Still missing")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", cfg.Identity.Name)
	require.Equal(t, "ada@example.com", cfg.Identity.Email)
	require.Equal(t, "ada", cfg.Identity.GitHubUser)
	require.Equal(t, "notes", cfg.Repo.Name)
	require.Empty(t, cfg.Repo.Folder)
	require.Equal(t, "rsa", cfg.SSH.KeyType)
	require.Equal(t, "~/.ssh/id_rsa", cfg.SSH.KeyPath)

	out, err = execute(t, "", "config", "show", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, `name = "Ada Lovelace"`)
	require.Contains(t, out, `key_type = "rsa"`)
}

func TestConfigInitRejectsInvalidEmail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	input := "Ada\nnot-an-email\nada\nnotes\n\n1\n"

	_, err := execute(t, input, "config", "init", "--config", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "identity.email")
	require.NoFileExists(t, path)
}

func TestRunConfigWizardKeepsCustomFolder(t *testing.T) {
	cfg := identityConfig()
	var out bytes.Buffer
	p := prompt.NewLinePrompter(strings.NewReader("\n\n\n\n/sdcard/notes\ned25519\n"), &out)

	require.NoError(t, runConfigWizard(p, &cfg))
	require.Equal(t, "Ada", cfg.Identity.Name)
	require.Equal(t, "/sdcard/notes", cfg.Repo.Folder)
	require.Equal(t, "ed25519", cfg.SSH.KeyType)
	require.Equal(t, "~/.ssh/id_ed25519", cfg.SSH.KeyPath)
}

func TestMenuExits(t *testing.T) {
	path := writeConfig(t, identityConfig())

	out, err := execute(t, "0\n", "--config", path, "--repo", t.TempDir())
	require.NoError(t, err)
	require.Contains(t, out, "ada/notes")
	require.Contains(t, out, "not initialized")
	require.Contains(t, out, "Choose an option")
}

func TestMenuExitsOnEOF(t *testing.T) {
	path := writeConfig(t, identityConfig())

	_, err := execute(t, "", "--config", path, "--repo", t.TempDir())
	require.NoError(t, err)
}

func TestStatusRequiresRepository(t *testing.T) {
	path := writeConfig(t, identityConfig())

	_, err := execute(t, "", "status", "--config", path, "--repo", t.TempDir())
	require.ErrorIs(t, err, gherrors.ErrNotARepository)
}

func TestPushCmd(t *testing.T) {
	var remoteDir string
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.CreateChangeAndCommit("first", ""); err != nil {
			return err
		}
		dir, err := s.Repo.CreateBareRemote("origin")
		if err != nil {
			return err
		}
		remoteDir = dir
		return s.Repo.PushBranch("origin", "main")
	})
	require.NoError(t, scene.Repo.WriteFile("notes.md", "hello"))
	path := writeConfig(t, identityConfig())

	_, err := execute(t, "", "push", "-m", "Add notes", "--config", path, "--repo", scene.Dir)
	require.NoError(t, err)

	testhelpers.ExpectCommitCount(t, scene.Repo, 2)
	testhelpers.ExpectHeadMessage(t, scene.Repo, "Add notes")
	testhelpers.ExpectClean(t, scene.Repo)
	testhelpers.ExpectRemoteCommitCount(t, remoteDir, "main", 2)
}

func TestInitAndDeviceScriptCmds(t *testing.T) {
	cfg := identityConfig()
	repoDir := filepath.Join(t.TempDir(), "notes")
	cfg.Repo.Folder = repoDir
	path := writeConfig(t, cfg)

	_, err := execute(t, "", "init", "--config", path)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(repoDir, ".gitignore"))
	require.FileExists(t, filepath.Join(repoDir, "README.md"))

	repo := &testhelpers.GitRepo{Dir: repoDir}
	testhelpers.ExpectCommitCount(t, repo, 1)
	testhelpers.ExpectRemoteURL(t, repo, "origin", "git@github.com:ada/notes.git")

	script := filepath.Join(t.TempDir(), "setup.sh")
	_, err = execute(t, "", "device-script", "-o", script, "--config", path)
	require.NoError(t, err)
	require.FileExists(t, script)
}
