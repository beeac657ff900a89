package setup_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"githelper.dev/githelper/internal/config"
	gherrors "githelper.dev/githelper/internal/errors"
	"githelper.dev/githelper/internal/setup"
	"githelper.dev/githelper/testhelpers"
)

var created = time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Identity = config.Identity{Name: "Ada Lovelace", Email: "ada@example.com", GitHubUser: "ada"}
	cfg.Repo.Name = "notes"
	cfg.Repo.Folder = filepath.Join(t.TempDir(), "GitHub", "notes")
	return &cfg
}

func TestInitRepo(t *testing.T) {
	t.Run("explicit folder wins over repo.folder", func(t *testing.T) {
		cfg := testConfig(t)
		dir := filepath.Join(t.TempDir(), "elsewhere")

		res, err := setup.InitRepo(context.Background(), testhelpers.NewRunner(), cfg, dir, created)
		require.NoError(t, err)
		require.Equal(t, dir, res.Dir)
		require.DirExists(t, filepath.Join(dir, ".git"))
		require.NoDirExists(t, filepath.Join(cfg.Repo.Folder, ".git"))
	})

	t.Run("creates repository, starter files, commit and origin", func(t *testing.T) {
		cfg := testConfig(t)

		res, err := setup.InitRepo(context.Background(), testhelpers.NewRunner(), cfg, "", created)
		require.NoError(t, err)
		require.Equal(t, cfg.Repo.Folder, res.Dir)
		require.Equal(t, []string{".gitignore", "README.md"}, res.Written)
		require.Equal(t, "git@github.com:ada/notes.git", res.Remote)

		repo := &testhelpers.GitRepo{Dir: res.Dir}
		count, err := repo.CommitCount()
		require.NoError(t, err)
		require.Equal(t, 1, count)

		msg, err := repo.HeadMessage()
		require.NoError(t, err)
		require.Equal(t, setup.InitialCommitMessage, msg)

		url, err := repo.RemoteURL("origin")
		require.NoError(t, err)
		require.Equal(t, "git@github.com:ada/notes.git", url)

		branch, err := repo.RunGitCommandAndGetOutput("symbolic-ref", "--short", "HEAD")
		require.NoError(t, err)
		require.Equal(t, "main", branch)

		name, err := repo.RunGitCommandAndGetOutput("config", "user.name")
		require.NoError(t, err)
		require.Equal(t, "Ada Lovelace", name)

		readme, err := repo.ReadFile("README.md")
		require.NoError(t, err)
		require.Contains(t, readme, "# notes")
		require.Contains(t, readme, "2026-03-14 09:26")
		require.Contains(t, readme, "Ada Lovelace (ada@example.com)")

		ignore, err := repo.ReadFile(".gitignore")
		require.NoError(t, err)
		require.Contains(t, ignore, "*.log")
	})

	t.Run("existing files are kept", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.MkdirAll(cfg.Repo.Folder, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(cfg.Repo.Folder, "README.md"), []byte("mine\n"), 0o644))

		res, err := setup.InitRepo(context.Background(), testhelpers.NewRunner(), cfg, "", created)
		require.NoError(t, err)
		require.Equal(t, []string{".gitignore"}, res.Written)

		data, err := os.ReadFile(filepath.Join(res.Dir, "README.md"))
		require.NoError(t, err)
		require.Equal(t, "mine\n", string(data))
	})

	t.Run("refuses an initialized folder", func(t *testing.T) {
		cfg := testConfig(t)
		_, err := testhelpers.NewGitRepo(cfg.Repo.Folder)
		require.NoError(t, err)

		_, err = setup.InitRepo(context.Background(), testhelpers.NewRunner(), cfg, "", created)
		require.ErrorIs(t, err, gherrors.ErrAlreadyInitialized)
	})

	t.Run("missing identity", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Identity.GitHubUser = ""

		_, err := setup.InitRepo(context.Background(), testhelpers.NewRunner(), cfg, "", created)
		require.ErrorContains(t, err, "identity.github_user")
		_, statErr := os.Stat(cfg.Repo.Folder)
		require.True(t, os.IsNotExist(statErr))
	})
}

func TestDeviceScript(t *testing.T) {
	t.Run("renders setup steps", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Repo.Folder = ""

		script, err := setup.DeviceScript(cfg, created)
		require.NoError(t, err)
		s := string(script)

		require.True(t, strings.HasPrefix(s, "#!/data/data/com.termux/files/usr/bin/bash\n"))
		require.Contains(t, s, "pkg install -y git openssh")
		require.Contains(t, s, "termux-setup-storage")
		require.Contains(t, s, `git config --global user.name "Ada Lovelace"`)
		require.Contains(t, s, `KEY="$HOME/.ssh/id_ed25519"`)
		require.Contains(t, s, `ssh-keygen -t ed25519 -C "ada@example.com" -f "$KEY" -N ""`)
		require.Contains(t, s, `DEST="$HOME/storage/shared/GitHub/notes"`)
		require.Contains(t, s, `git clone "git@github.com:ada/notes.git" "$DEST"`)
		require.Contains(t, s, "https://github.com/settings/ssh/new")
	})

	t.Run("quotes shell metacharacters", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Identity.Name = "Bob \"$(rm)\" `x`"

		script, err := setup.DeviceScript(cfg, created)
		require.NoError(t, err)
		require.Contains(t, string(script), `user.name "Bob \"\$(rm)\" \`+"`"+`x\`+"`"+`"`)
	})

	t.Run("writes an executable file", func(t *testing.T) {
		cfg := testConfig(t)
		path := filepath.Join(t.TempDir(), "setup.sh")

		require.NoError(t, setup.WriteDeviceScript(path, cfg, created))
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	})
}
