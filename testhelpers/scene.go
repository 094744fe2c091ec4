package testhelpers

import (
	"os"
	"strconv"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
// Unlike a chdir-based fixture it leaves the process working directory alone.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository.
// It automatically handles cleanup using t.Cleanup(); set DEBUG to keep the directory.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "gitwrap-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  tmpDir,
		Repo: repo,
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			os.RemoveAll(tmpDir)
			t.Fatalf("Setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		if os.Getenv("DEBUG") == "" {
			os.RemoveAll(tmpDir)
		} else {
			t.Logf("keeping scene directory %s", tmpDir)
		}
	})

	return scene
}

// BasicSceneSetup creates a single commit on main.
func BasicSceneSetup(scene *Scene) error {
	_, err := scene.Repo.Commit("1")
	return err
}

// LinearHistorySetup returns a setup that creates n commits on main with
// messages "commit 1" through "commit n".
func LinearHistorySetup(n int) SceneSetup {
	return func(scene *Scene) error {
		for i := 1; i <= n; i++ {
			if _, err := scene.Repo.Commit(commitMessage(i)); err != nil {
				return err
			}
		}
		return nil
	}
}

func commitMessage(i int) string {
	return "commit " + strconv.Itoa(i)
}
