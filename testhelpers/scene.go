package testhelpers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"githelper.dev/githelper/internal/runner"
)

// Scene represents a test scene with a temporary Git repository.
type Scene struct {
	Dir    string
	Repo   *GitRepo
	Runner *runner.ExecRunner
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a repository in t.TempDir() and runs setup on it.
// The scene's Runner executes commands isolated from the user's git config.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "repo")
	repo, err := NewGitRepo(dir)
	require.NoError(t, err, "failed to create git repo")

	scene := &Scene{
		Dir:    dir,
		Repo:   repo,
		Runner: NewRunner(),
	}

	if setup != nil {
		require.NoError(t, setup(scene), "scene setup failed")
	}
	return scene
}

// NewRunner returns an ExecRunner isolated from global git configuration.
func NewRunner() *runner.ExecRunner {
	r := runner.NewExecRunner(nil)
	r.Env = GitEnvOverrides()
	return r
}
