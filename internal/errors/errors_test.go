package errors_test

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	rlcerrors "renamecommit.dev/renamecommit/internal/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, rlcerrors.ExitOK},
		{"repository not found", fmt.Errorf("open /tmp/x: %w", rlcerrors.ErrRepositoryNotFound), rlcerrors.ExitRepositoryNotFound},
		{"nothing pending", rlcerrors.ErrNoUnpushedCommits, rlcerrors.ExitNoUnpushedCommits},
		{"blank message", fmt.Errorf("from --message: %w", rlcerrors.ErrBlankMessage), rlcerrors.ExitBlankMessage},
		{"amend failed", rlcerrors.NewAmendFailedError("fatal: boom", errors.New("exit status 128")), rlcerrors.ExitAmendFailed},
		{"tool unavailable", fmt.Errorf("%w: %w", rlcerrors.ErrToolUnavailable, exec.ErrNotFound), rlcerrors.ExitToolFailure},
		{"check failed", fmt.Errorf("%w: exit status 128", rlcerrors.ErrCheckFailed), rlcerrors.ExitToolFailure},
		{"cancelled", rlcerrors.ErrPromptCancelled, rlcerrors.ExitOther},
		{"anything else", errors.New("unknown flag: --nope"), rlcerrors.ExitOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, rlcerrors.ExitCode(tt.err))
		})
	}
}

func TestAmendFailedError(t *testing.T) {
	t.Run("includes stderr in message", func(t *testing.T) {
		err := rlcerrors.NewAmendFailedError("fatal: could not lock HEAD", errors.New("exit status 128"))
		require.Contains(t, err.Error(), "fatal: could not lock HEAD")
		require.ErrorIs(t, err, rlcerrors.ErrAmendFailed)
	})

	t.Run("falls back to the cause without stderr", func(t *testing.T) {
		cause := errors.New("exit status 1")
		err := rlcerrors.NewAmendFailedError("", cause)
		require.Contains(t, err.Error(), "exit status 1")
		require.ErrorIs(t, err, cause)
	})
}

func TestGitCommandError(t *testing.T) {
	cause := errors.New("exit status 128")
	err := rlcerrors.NewGitCommandError("git", []string{"log", "-1"}, "", "fatal: bad revision", cause)

	require.Contains(t, err.Error(), "git command failed: git [log -1]")
	require.Contains(t, err.Error(), "stderr: fatal: bad revision")
	require.ErrorIs(t, err, cause)

	var gitErr *rlcerrors.GitCommandError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &gitErr)
	require.Equal(t, "fatal: bad revision", gitErr.Stderr)
}
