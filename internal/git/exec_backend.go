package git

import (
	"context"
	"fmt"
	"strings"

	rlcerrors "renamecommit.dev/renamecommit/internal/errors"
)

// ExecBackend implements Backend by running the git executable
type ExecBackend struct {
	runner *CommandRunner
}

// NewExecBackend creates an ExecBackend using runner
func NewExecBackend(runner *CommandRunner) *ExecBackend {
	return &ExecBackend{runner: runner}
}

// Name implements Backend
func (b *ExecBackend) Name() string {
	return BackendExec
}

// CheckUnpushed lists commits on local branches that no remote-tracking branch contains
func (b *ExecBackend) CheckUnpushed(ctx context.Context) (UnpushedStatus, error) {
	output, err := b.runner.Run(ctx, "log", "--branches", "--not", "--remotes", "--oneline")
	if err != nil {
		return CheckFailed, fmt.Errorf("%w: %w", rlcerrors.ErrCheckFailed, err)
	}
	if output == "" {
		return NonePending, nil
	}
	return Unpushed, nil
}

// HeadIsPublished implements Backend
func (b *ExecBackend) HeadIsPublished(ctx context.Context) (bool, error) {
	output, err := b.runner.Run(ctx, "branch", "--remotes", "--contains", "HEAD")
	if err != nil {
		return false, err
	}
	return output != "", nil
}

// LastCommitMessage implements Backend
func (b *ExecBackend) LastCommitMessage(ctx context.Context) (string, error) {
	output, err := b.runner.RunRaw(ctx, "log", "-1", "--format=%B", "HEAD")
	if err != nil {
		return NoCommitMessagePlaceholder, err
	}
	message := strings.TrimRight(output, "\n")
	if strings.TrimSpace(message) == "" {
		return NoCommitMessagePlaceholder, fmt.Errorf("HEAD has an empty message")
	}
	return message, nil
}

// AmendMessage amends HEAD with exactly message. Staged changes are left staged.
func (b *ExecBackend) AmendMessage(ctx context.Context, message string) (CommandResult, error) {
	result, err := b.runner.RunResult(ctx,
		"commit", "--amend", "--only", "--allow-empty", "--cleanup=verbatim", "-m", message)
	if err != nil {
		return result, rlcerrors.NewAmendFailedError(result.Stderr, err)
	}
	return result, nil
}
