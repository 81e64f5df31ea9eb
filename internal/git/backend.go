package git

import (
	"context"
	"fmt"
)

// NoCommitMessagePlaceholder is returned by LastCommitMessage when HEAD has no readable message
const NoCommitMessagePlaceholder = "No commit message found"

// Backend names accepted by NewBackend
const (
	BackendExec  = "exec"
	BackendGoGit = "go-git"
)

// UnpushedStatus is the outcome of the unpushed-commit check
type UnpushedStatus int

const (
	// CheckFailed means the query could not run; the accompanying error says why
	CheckFailed UnpushedStatus = iota
	// NonePending means every local commit is reachable from a remote-tracking branch
	NonePending
	// Unpushed means at least one local commit is absent from every remote
	Unpushed
)

func (s UnpushedStatus) String() string {
	switch s {
	case Unpushed:
		return "unpushed"
	case NonePending:
		return "none-pending"
	default:
		return "check-failed"
	}
}

// Backend defines the version-control primitives used by the rename flow.
// Both the git CLI and go-git implement it.
type Backend interface {
	// Name identifies the backend in logs
	Name() string

	// CheckUnpushed reports whether local branches carry commits absent from all remotes
	CheckUnpushed(ctx context.Context) (UnpushedStatus, error)

	// HeadIsPublished reports whether HEAD is reachable from any remote-tracking branch
	HeadIsPublished(ctx context.Context) (bool, error)

	// LastCommitMessage returns HEAD's full message. The returned string is always usable:
	// on failure it is NoCommitMessagePlaceholder and err describes the cause.
	LastCommitMessage(ctx context.Context) (string, error)

	// AmendMessage rewrites HEAD's message, keeping its tree, parents and author
	AmendMessage(ctx context.Context, message string) (CommandResult, error)
}

// NewBackend returns the backend with the given name operating on repo
func NewBackend(name string, repo *Repository, runner *CommandRunner) (Backend, error) {
	switch name {
	case "", BackendExec:
		return NewExecBackend(runner), nil
	case BackendGoGit:
		return NewGoGitBackend(repo), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (expected %q or %q)", name, BackendExec, BackendGoGit)
	}
}
