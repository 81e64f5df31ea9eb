package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository.
// The process environment is pointed away from the user's git and tool configuration.
// Scenes use t.Setenv and therefore cannot be used from parallel tests.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "repo")
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatalf("Failed to create repo dir: %v", err)
	}

	isolateEnvironment(t, root)

	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  dir,
		Repo: repo,
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// isolateEnvironment keeps tests from reading the developer's configuration.
func isolateEnvironment(t *testing.T, root string) {
	t.Helper()
	t.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("RENAME_LAST_COMMIT_CONFIG", filepath.Join(root, "config.yaml"))
	t.Setenv("RENAME_LAST_COMMIT_LOG_FILE", filepath.Join(root, "logs", "rename-last-commit.log"))
	t.Setenv("RENAME_LAST_COMMIT_TEST_NO_INTERACTIVE", "1")
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("foo", "1")
}

// PushedSceneSetup creates a single commit and pushes it to a bare "origin" remote.
func PushedSceneSetup(scene *Scene) error {
	if err := BasicSceneSetup(scene); err != nil {
		return err
	}
	if _, err := scene.Repo.CreateBareRemote("origin"); err != nil {
		return err
	}
	return scene.Repo.PushBranch("origin", "main")
}
