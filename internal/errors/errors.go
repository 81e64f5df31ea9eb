// Package errors provides sentinel errors and custom error types for rename-last-commit.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrRepositoryNotFound indicates that the path is not inside a git repository
	ErrRepositoryNotFound = errors.New("no git repository found")

	// ErrNoUnpushedCommits indicates that every local commit is already on a remote
	ErrNoUnpushedCommits = errors.New("no unpushed commits found; only unpushed commits can be renamed")

	// ErrBlankMessage indicates that the replacement message is empty or whitespace only
	ErrBlankMessage = errors.New("commit message must not be blank")

	// ErrAmendFailed indicates that the amend operation did not succeed
	ErrAmendFailed = errors.New("failed to rename commit")

	// ErrToolUnavailable indicates that the git executable could not be started
	ErrToolUnavailable = errors.New("git is not available")

	// ErrCheckFailed indicates that the unpushed-commit query could not run
	ErrCheckFailed = errors.New("could not determine unpushed commits")

	// ErrPromptCancelled indicates that the operator aborted an interactive prompt
	ErrPromptCancelled = errors.New("canceled")
)

// Process exit codes
const (
	ExitOK                 = 0
	ExitRepositoryNotFound = 1
	ExitNoUnpushedCommits  = 2
	ExitBlankMessage       = 3
	ExitAmendFailed        = 4
	ExitToolFailure        = 5
	ExitOther              = 6
)

// ExitCode maps an error returned by the command to its process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrRepositoryNotFound):
		return ExitRepositoryNotFound
	case errors.Is(err, ErrNoUnpushedCommits):
		return ExitNoUnpushedCommits
	case errors.Is(err, ErrBlankMessage):
		return ExitBlankMessage
	case errors.Is(err, ErrAmendFailed):
		return ExitAmendFailed
	case errors.Is(err, ErrToolUnavailable), errors.Is(err, ErrCheckFailed):
		return ExitToolFailure
	default:
		return ExitOther
	}
}

// AmendFailedError represents a failed amend along with the tool's diagnostic output
type AmendFailedError struct {
	Stderr string
	Err    error
}

func (e *AmendFailedError) Error() string {
	msg := ErrAmendFailed.Error()
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	} else if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Is returns true if the target error is ErrAmendFailed
func (e *AmendFailedError) Is(target error) bool {
	return target == ErrAmendFailed
}

func (e *AmendFailedError) Unwrap() error {
	return e.Err
}

// NewAmendFailedError creates a new AmendFailedError
func NewAmendFailedError(stderr string, err error) *AmendFailedError {
	return &AmendFailedError{Stderr: stderr, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
