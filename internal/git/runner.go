package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	rlcerrors "renamecommit.dev/renamecommit/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// DefaultGitBinary is the executable looked up on PATH when none is configured
const DefaultGitBinary = "git"

// CommandResult is the outcome of a single git invocation.
type CommandResult struct {
	Success bool
	Stdout  []string
	Stderr  string
	// Warnings lists caveats about how the command ran that the operator should see
	Warnings []string
}

// Output returns the captured stdout lines joined with newlines.
func (r CommandResult) Output() string {
	return strings.Join(r.Stdout, "\n")
}

// CommandRunner handles execution of git commands
type CommandRunner struct {
	gitBinary  string
	workingDir string
	timeout    time.Duration
}

// RunnerOption configures a CommandRunner
type RunnerOption func(*CommandRunner)

// WithGitBinary overrides the git executable
func WithGitBinary(binary string) RunnerOption {
	return func(r *CommandRunner) {
		if binary != "" {
			r.gitBinary = binary
		}
	}
}

// WithTimeout overrides the per-command timeout applied when the context has no deadline
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *CommandRunner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string, opts ...RunnerOption) *CommandRunner {
	r := &CommandRunner{
		gitBinary:  DefaultGitBinary,
		workingDir: workingDir,
		timeout:    DefaultCommandTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WorkingDir returns the directory commands run in
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes a git command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	res, err := r.runInternal(ctx, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.stdout), nil
}

// RunRaw executes a git command and returns the raw output (no trimming)
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	res, err := r.runInternal(ctx, args...)
	if err != nil {
		return "", err
	}
	return res.stdout, nil
}

// RunResult executes a git command and returns its captured output as a CommandResult.
// The result is populated on failure as well.
func (r *CommandRunner) RunResult(ctx context.Context, args ...string) (CommandResult, error) {
	res, err := r.runInternal(ctx, args...)
	result := CommandResult{
		Success: err == nil,
		Stdout:  splitLines(res.stdout),
		Stderr:  strings.TrimSpace(res.stderr),
	}
	return result, err
}

type rawOutput struct {
	stdout string
	stderr string
}

func (r *CommandRunner) runInternal(ctx context.Context, args ...string) (rawOutput, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.gitBinary, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := rawOutput{stdout: stdout.String(), stderr: stderr.String()}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = ctx.Err()
		}
		gitErr := rlcerrors.NewGitCommandError(r.gitBinary, args, out.stdout, strings.TrimSpace(out.stderr), err)
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return out, fmt.Errorf("%w: %w", rlcerrors.ErrToolUnavailable, gitErr)
		}
		return out, gitErr
	}
	return out, nil
}

func splitLines(output string) []string {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return []string{}
	}
	return strings.Split(output, "\n")
}
