package cli_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	rlcerrors "renamecommit.dev/renamecommit/internal/errors"
	"renamecommit.dev/renamecommit/testhelpers"
)

// getBinary returns the path to the pre-built rename-last-commit binary.
func getBinary(t *testing.T) string {
	t.Helper()
	binaryPath := testhelpers.GetSharedBinaryPath()
	if binaryPath == "" {
		if err := testhelpers.GetBinaryError(); err != nil {
			t.Fatalf("failed to build rename-last-commit binary: %v", err)
		}
		t.Fatal("rename-last-commit binary not built")
	}
	return binaryPath
}

type runResult struct {
	exitCode int
	stdout   string
	stderr   string
}

// runBinary runs the binary in dir with the scene's isolated environment.
func runBinary(t *testing.T, dir, stdin string, args ...string) runResult {
	t.Helper()

	cmd := exec.Command(getBinary(t), args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := runResult{stdout: stdout.String(), stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		require.True(t, errors.As(err, &exitErr), "unexpected error running binary: %v", err)
		result.exitCode = exitErr.ExitCode()
	}
	return result
}

func TestRenameLastCommitCommand(t *testing.T) {
	t.Run("renames an unpushed commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		before := testhelpers.TakeHistorySnapshot(t, scene.Repo)

		result := runBinary(t, scene.Dir, "", "--message", "bar")
		require.Equal(t, rlcerrors.ExitOK, result.exitCode, result.stderr)
		require.Contains(t, result.stderr, "Commit message successfully changed.")

		testhelpers.ExpectCommitMessage(t, scene.Repo, "HEAD", "bar")
		testhelpers.ExpectOnlyMessageRewritten(t, scene.Repo, before)
	})

	t.Run("refuses when everything is pushed", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.PushedSceneSetup)
		before := testhelpers.TakeHistorySnapshot(t, scene.Repo)

		result := runBinary(t, scene.Dir, "", "--message", "bar")
		require.Equal(t, rlcerrors.ExitNoUnpushedCommits, result.exitCode)
		require.Contains(t, result.stderr, "no unpushed commits")

		testhelpers.ExpectHeadUnchanged(t, scene.Repo, before)
		testhelpers.ExpectCommitMessage(t, scene.Repo, "HEAD", "foo")
	})

	t.Run("rejects a blank message", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		before := testhelpers.TakeHistorySnapshot(t, scene.Repo)

		for _, message := range []string{"", "   ", "\n\n"} {
			result := runBinary(t, scene.Dir, "", "--message", message)
			require.Equal(t, rlcerrors.ExitBlankMessage, result.exitCode)
		}

		testhelpers.ExpectHeadUnchanged(t, scene.Repo, before)
	})

	t.Run("blank message wins over a missing repository", func(t *testing.T) {
		testhelpers.NewScene(t, nil)
		result := runBinary(t, t.TempDir(), "", "--message", " ")
		require.Equal(t, rlcerrors.ExitBlankMessage, result.exitCode)
	})

	t.Run("reports a missing repository", func(t *testing.T) {
		testhelpers.NewScene(t, nil)
		outside := t.TempDir()

		result := runBinary(t, outside, "", "--message", "bar")
		require.Equal(t, rlcerrors.ExitRepositoryNotFound, result.exitCode)
		require.Contains(t, result.stderr, "no git repository found")
	})

	t.Run("--repo selects the repository", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		result := runBinary(t, t.TempDir(), "", "--repo", scene.Dir, "--message", "bar")
		require.Equal(t, rlcerrors.ExitOK, result.exitCode, result.stderr)
		testhelpers.ExpectCommitMessage(t, scene.Repo, "HEAD", "bar")
	})

	t.Run("--repo accepts a subdirectory", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		sub := filepath.Join(scene.Dir, "nested", "dir")
		require.NoError(t, os.MkdirAll(sub, 0750))

		result := runBinary(t, sub, "", "--message", "bar")
		require.Equal(t, rlcerrors.ExitOK, result.exitCode, result.stderr)
		testhelpers.ExpectCommitMessage(t, scene.Repo, "HEAD", "bar")
	})

	t.Run("keeps a multi-line message verbatim", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		message := "Subject\n\nBody line one\nBody line two\n\n# not a comment"

		result := runBinary(t, scene.Dir, "", "--message", message)
		require.Equal(t, rlcerrors.ExitOK, result.exitCode, result.stderr)
		testhelpers.ExpectCommitMessage(t, scene.Repo, "HEAD", message)
	})

	t.Run("reads the message from stdin", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		result := runBinary(t, scene.Dir, "from stdin\n\nwith body\n")
		require.Equal(t, rlcerrors.ExitOK, result.exitCode, result.stderr)
		testhelpers.ExpectCommitMessage(t, scene.Repo, "HEAD", "from stdin\n\nwith body")
	})

	t.Run("no message and no terminal is blank", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		before := testhelpers.TakeHistorySnapshot(t, scene.Repo)

		result := runBinary(t, scene.Dir, "")
		require.Equal(t, rlcerrors.ExitBlankMessage, result.exitCode)
		testhelpers.ExpectHeadUnchanged(t, scene.Repo, before)
	})

	t.Run("dry run leaves the commit alone", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		before := testhelpers.TakeHistorySnapshot(t, scene.Repo)

		result := runBinary(t, scene.Dir, "", "--message", "bar", "--dry-run")
		require.Equal(t, rlcerrors.ExitOK, result.exitCode, result.stderr)
		require.Contains(t, result.stdout, "Current message:\n    foo\n")
		require.Contains(t, result.stdout, "New message:\n    bar\n")

		testhelpers.ExpectHeadUnchanged(t, scene.Repo, before)
	})

	t.Run("go-git backend renames the commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		before := testhelpers.TakeHistorySnapshot(t, scene.Repo)

		result := runBinary(t, scene.Dir, "", "--backend", "go-git", "--message", "bar")
		require.Equal(t, rlcerrors.ExitOK, result.exitCode, result.stderr)

		testhelpers.ExpectCommitMessage(t, scene.Repo, "HEAD", "bar")
		testhelpers.ExpectOnlyMessageRewritten(t, scene.Repo, before)
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		result := runBinary(t, scene.Dir, "", "--backend", "svn", "--message", "bar")
		require.Equal(t, rlcerrors.ExitOther, result.exitCode)
		require.Contains(t, result.stderr, "invalid backend")
	})

	t.Run("missing git binary fails the check", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		t.Setenv("RENAME_LAST_COMMIT_GIT", "git-binary-that-does-not-exist")

		result := runBinary(t, scene.Dir, "", "--message", "bar")
		require.Equal(t, rlcerrors.ExitToolFailure, result.exitCode)
		testhelpers.ExpectCommitMessage(t, scene.Repo, "HEAD", "foo")
	})

	t.Run("renames the tip of a feature branch with an unpushed base", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := testhelpers.PushedSceneSetup(s); err != nil {
				return err
			}
			if err := s.Repo.CreateAndCheckoutBranch("feature"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("feature work", "2")
		})

		result := runBinary(t, scene.Dir, "", "-m", "Feature work, renamed")
		require.Equal(t, rlcerrors.ExitOK, result.exitCode, result.stderr)
		testhelpers.ExpectCommitMessage(t, scene.Repo, "HEAD", "Feature work, renamed")
		testhelpers.ExpectCommitMessage(t, scene.Repo, "main", "foo")
	})

	for _, backend := range []string{"exec", "go-git"} {
		t.Run(backend+" backend renames from a linked worktree", func(t *testing.T) {
			scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
			worktree := testhelpers.Must(scene.Repo.AddWorktree("side"))
			before := testhelpers.TakeHistorySnapshot(t, worktree)

			result := runBinary(t, worktree.Dir, "", "--backend", backend, "--message", "baz")
			require.Equal(t, rlcerrors.ExitOK, result.exitCode, result.stderr)

			testhelpers.ExpectCommitMessage(t, worktree, "HEAD", "baz")
			testhelpers.ExpectOnlyMessageRewritten(t, worktree, before)
			testhelpers.ExpectCommitMessage(t, scene.Repo, "main", "foo")
		})
	}

	t.Run("dry run in a linked worktree names the commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		worktree := testhelpers.Must(scene.Repo.AddWorktree("side"))
		head, err := worktree.GetRevision("HEAD")
		require.NoError(t, err)

		result := runBinary(t, worktree.Dir, "", "--message", "baz", "--dry-run")
		require.Equal(t, rlcerrors.ExitOK, result.exitCode, result.stderr)
		require.Contains(t, result.stdout, "Would amend "+head[:7])
	})

	t.Run("go-git backend warns that it does not sign", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.RunGitCommand("config", "commit.gpgsign", "true"))

		result := runBinary(t, scene.Dir, "", "--backend", "go-git", "--message", "bar")
		require.Equal(t, rlcerrors.ExitOK, result.exitCode, result.stderr)
		require.Contains(t, result.stderr, "does not sign commits")
		testhelpers.ExpectCommitMessage(t, scene.Repo, "HEAD", "bar")
	})

	t.Run("failures are recorded in the log file", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.PushedSceneSetup)

		result := runBinary(t, scene.Dir, "", "--message", "bar")
		require.Equal(t, rlcerrors.ExitNoUnpushedCommits, result.exitCode)

		logged, err := os.ReadFile(os.Getenv("RENAME_LAST_COMMIT_LOG_FILE"))
		require.NoError(t, err)
		require.Contains(t, string(logged), "no unpushed commits")
		require.Contains(t, string(logged), "exit=2")
	})

	t.Run("blank message is recorded in the log file", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		result := runBinary(t, scene.Dir, "", "--message", " ")
		require.Equal(t, rlcerrors.ExitBlankMessage, result.exitCode)

		logged, err := os.ReadFile(os.Getenv("RENAME_LAST_COMMIT_LOG_FILE"))
		require.NoError(t, err)
		require.Contains(t, string(logged), "must not be blank")
		require.Contains(t, string(logged), "exit=3")
	})

	t.Run("prints the version", func(t *testing.T) {
		testhelpers.NewScene(t, nil)
		result := runBinary(t, t.TempDir(), "", "--version")
		require.Equal(t, rlcerrors.ExitOK, result.exitCode)
		require.Contains(t, result.stdout, "rename-last-commit dev")
	})
}
