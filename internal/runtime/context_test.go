package runtime_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitwrap.dev/gitwrap/internal/runtime"
	gitwraperrors "gitwrap.dev/gitwrap/pkg/errors"
	"gitwrap.dev/gitwrap/testhelpers"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestNewContext(t *testing.T) {
	t.Setenv("GITWRAP_GIT", "")
	t.Setenv("GITWRAP_LOG_FILE", "")
	t.Setenv("DEBUG", "")

	t.Run("opens the repository with config applied", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		var stdout, stderr bytes.Buffer

		rt, err := runtime.NewContext(runtime.Options{
			RepoPath:   scene.Dir,
			ConfigPath: writeConfig(t, "timeout: 30s\n"),
			Stdout:     &stdout,
			Stderr:     &stderr,
		})
		require.NoError(t, err)
		defer func() { require.NoError(t, rt.Close()) }()

		require.NotNil(t, rt.Repo)
		require.Equal(t, 30*time.Second, rt.Config.Timeout)
		require.False(t, rt.Config.DebugEnabled())
		require.Empty(t, stderr.String())
	})

	t.Run("debug flag overrides config", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		var stderr bytes.Buffer

		rt, err := runtime.NewContext(runtime.Options{
			RepoPath:   scene.Dir,
			ConfigPath: writeConfig(t, "debug: false\n"),
			Debug:      true,
			Stdout:     &bytes.Buffer{},
			Stderr:     &stderr,
		})
		require.NoError(t, err)
		defer func() { require.NoError(t, rt.Close()) }()

		require.True(t, rt.Config.DebugEnabled())
		require.Contains(t, stderr.String(), "opened repository")
	})

	t.Run("log file uses configured rotation", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		logFile := filepath.Join(t.TempDir(), "logs", "gitwrap.log")

		rt, err := runtime.NewContext(runtime.Options{
			RepoPath:   scene.Dir,
			ConfigPath: writeConfig(t, "log_file: "+logFile+"\nlog_rotation:\n  max_size_mb: 4\n"),
			Stdout:     &bytes.Buffer{},
			Stderr:     &bytes.Buffer{},
		})
		require.NoError(t, err)
		require.Equal(t, 4, rt.Config.LogRotation.MaxSizeMB)

		_, err = rt.Repo.Tags(context.Background())
		require.NoError(t, err)
		require.NoError(t, rt.Close())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		require.Contains(t, string(data), "git command finished")
	})

	t.Run("missing repository", func(t *testing.T) {
		_, err := runtime.NewContext(runtime.Options{
			RepoPath:   filepath.Join(t.TempDir(), "missing"),
			ConfigPath: writeConfig(t, ""),
			Stdout:     &bytes.Buffer{},
			Stderr:     &bytes.Buffer{},
		})
		require.ErrorIs(t, err, gitwraperrors.ErrRepositoryNotFound)
	})

	t.Run("invalid config", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		_, err := runtime.NewContext(runtime.Options{
			RepoPath:   scene.Dir,
			ConfigPath: writeConfig(t, "timeout: -1s\n"),
			Stdout:     &bytes.Buffer{},
			Stderr:     &bytes.Buffer{},
		})
		require.Error(t, err)
	})
}

func TestCommandContext(t *testing.T) {
	t.Setenv("DEBUG", "")
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	t.Run("applies the configured timeout", func(t *testing.T) {
		rt, err := runtime.NewContext(runtime.Options{
			RepoPath:   scene.Dir,
			ConfigPath: writeConfig(t, "timeout: 1m\n"),
			Stdout:     &bytes.Buffer{},
			Stderr:     &bytes.Buffer{},
		})
		require.NoError(t, err)

		ctx, cancel := rt.CommandContext(context.Background())
		defer cancel()
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		require.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
	})

	t.Run("no timeout by default", func(t *testing.T) {
		rt, err := runtime.NewContext(runtime.Options{
			RepoPath:   scene.Dir,
			ConfigPath: writeConfig(t, ""),
			Stdout:     &bytes.Buffer{},
			Stderr:     &bytes.Buffer{},
		})
		require.NoError(t, err)

		ctx, cancel := rt.CommandContext(context.Background())
		defer cancel()
		_, ok := ctx.Deadline()
		require.False(t, ok)
	})
}
