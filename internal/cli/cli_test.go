package cli_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitwrap.dev/gitwrap/internal/cli"
	"gitwrap.dev/gitwrap/internal/config"
	gitwraperrors "gitwrap.dev/gitwrap/pkg/errors"
	"gitwrap.dev/gitwrap/testhelpers"
)

// runCLI executes the root command in-process against dir
func runCLI(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("GITWRAP_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("GITWRAP_GIT", "")
	t.Setenv("GITWRAP_LOG_FILE", "")
	t.Setenv("DEBUG", "")

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test", "none", "unknown")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"-C", dir}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func outputLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestLogCommand(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.LinearHistorySetup(3))

	t.Run("newest first", func(t *testing.T) {
		stdout, _, err := runCLI(t, scene.Dir, "log")
		require.NoError(t, err)

		lines := outputLines(stdout)
		require.Len(t, lines, 3)
		require.True(t, strings.HasSuffix(lines[0], "commit 3"), lines[0])
		require.True(t, strings.HasSuffix(lines[2], "commit 1"), lines[2])
		require.Contains(t, lines[0], testhelpers.DefaultAuthorName)
	})

	t.Run("limit", func(t *testing.T) {
		stdout, _, err := runCLI(t, scene.Dir, "log", "-n", "2")
		require.NoError(t, err)
		require.Len(t, outputLines(stdout), 2)
	})

	t.Run("reverse with limit keeps the oldest", func(t *testing.T) {
		stdout, _, err := runCLI(t, scene.Dir, "log", "--reverse", "--max-count", "1")
		require.NoError(t, err)

		lines := outputLines(stdout)
		require.Len(t, lines, 1)
		require.True(t, strings.HasSuffix(lines[0], "commit 1"), lines[0])
	})

	t.Run("negative limit is rejected", func(t *testing.T) {
		_, _, err := runCLI(t, scene.Dir, "log", "--max-count=-1")
		require.Error(t, err)
	})

	t.Run("no color when not a terminal", func(t *testing.T) {
		stdout, _, err := runCLI(t, scene.Dir, "log")
		require.NoError(t, err)
		require.NotContains(t, stdout, "\x1b[")
	})
}

func TestRemoteCommands(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	_, stderr, err := runCLI(t, scene.Dir, "remote", "add", "origin", "https://example.com/project.git")
	require.NoError(t, err)
	require.Contains(t, stderr, "Added remote origin.")

	stdout, _, err := runCLI(t, scene.Dir, "remote", "list")
	require.NoError(t, err)
	require.Equal(t, []string{
		"origin\thttps://example.com/project.git (fetch)",
		"origin\thttps://example.com/project.git (push)",
	}, outputLines(stdout))

	stdout, _, err = runCLI(t, scene.Dir, "remote")
	require.NoError(t, err)
	require.Len(t, outputLines(stdout), 2)

	_, _, err = runCLI(t, scene.Dir, "remote", "add", "origin", "https://example.com/other.git")
	require.ErrorIs(t, err, gitwraperrors.ErrRemoteAlreadyExists)

	_, _, err = runCLI(t, scene.Dir, "remote", "remove", "origin")
	require.NoError(t, err)

	stdout, _, err = runCLI(t, scene.Dir, "remote", "list")
	require.NoError(t, err)
	require.Empty(t, stdout)

	_, _, err = runCLI(t, scene.Dir, "remote", "rm", "origin")
	require.ErrorIs(t, err, gitwraperrors.ErrCouldNotRemove)
}

func TestRemoteUpdateCommand(t *testing.T) {
	upstream := testhelpers.NewScene(t, testhelpers.LinearHistorySetup(1))
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	_, _, err := runCLI(t, scene.Dir, "remote", "add", "upstream", upstream.Dir)
	require.NoError(t, err)

	_, stderr, err := runCLI(t, scene.Dir, "remote", "update")
	require.NoError(t, err)
	require.Contains(t, stderr, "Remotes updated.")
}

func TestBranchCommand(t *testing.T) {
	t.Run("prints the branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := testhelpers.BasicSceneSetup(s); err != nil {
				return err
			}
			return s.Repo.CreateAndCheckoutBranch("feature/x")
		})

		stdout, _, err := runCLI(t, scene.Dir, "branch")
		require.NoError(t, err)
		require.Equal(t, "feature/x\n", stdout)
	})

	t.Run("detached head", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := testhelpers.BasicSceneSetup(s); err != nil {
				return err
			}
			return s.Repo.DetachHead()
		})

		stdout, stderr, err := runCLI(t, scene.Dir, "branch")
		require.ErrorIs(t, err, gitwraperrors.ErrNotOnBranch)
		require.Empty(t, stdout)
		require.Contains(t, stderr, "warning: HEAD is detached.")
	})
}

func TestTagsCommand(t *testing.T) {
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if err := testhelpers.BasicSceneSetup(s); err != nil {
			return err
		}
		if err := s.Repo.CreateTag("v2.0.0"); err != nil {
			return err
		}
		return s.Repo.CreateTag("v1.0.0")
	})

	stdout, _, err := runCLI(t, scene.Dir, "tags")
	require.NoError(t, err)
	require.Equal(t, "v1.0.0\nv2.0.0\n", stdout)
}

func TestDiffAndCheckoutCommands(t *testing.T) {
	var first, second string
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		var err error
		if first, err = s.Repo.Commit("alpha"); err != nil {
			return err
		}
		second, err = s.Repo.Commit("beta")
		return err
	})

	stdout, _, err := runCLI(t, scene.Dir, "diff", first, second)
	require.NoError(t, err)
	require.Contains(t, stdout, "+beta")
	require.True(t, strings.HasSuffix(stdout, "\n"))

	_, _, err = runCLI(t, scene.Dir, "diff", first)
	require.Error(t, err)

	_, stderr, err := runCLI(t, scene.Dir, "checkout", first)
	require.NoError(t, err)
	require.Contains(t, stderr, "Checked out "+first+".")

	head, err := scene.Repo.RunGitCommandAndGetOutput("rev-parse", "HEAD")
	require.NoError(t, err)
	require.Equal(t, first, head)

	_, _, err = runCLI(t, scene.Dir, "checkout", "--", "-x")
	require.ErrorIs(t, err, gitwraperrors.ErrInvalidRevision)
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitwrap", "config.yaml")
	notARepo := t.TempDir()

	stdout, _, err := runCLI(t, notARepo, "--config", path, "config", "init")
	require.NoError(t, err)
	require.Equal(t, "Wrote "+path+"\n", stdout)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)

	_, _, err = runCLI(t, notARepo, "--config", path, "config", "init")
	require.ErrorContains(t, err, "already exists")

	_, _, err = runCLI(t, notARepo, "--config", path, "config", "init", "--force")
	require.NoError(t, err)
}

func TestRepositoryFlag(t *testing.T) {
	_, _, err := runCLI(t, filepath.Join(t.TempDir(), "missing"), "log")
	require.ErrorIs(t, err, gitwraperrors.ErrRepositoryNotFound)
}

func TestDebugFlagLogsInvocations(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	_, stderr, err := runCLI(t, scene.Dir, "--debug", "tags")
	require.NoError(t, err)
	require.Contains(t, stderr, "git command finished")
}
