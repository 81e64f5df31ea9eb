// Package git provides the version-control primitives rename-last-commit depends on.
//
// It wraps git command execution and go-git repository access behind a small Backend
// interface:
//   - Unpushed-commit check (local branches minus remote-tracking branches)
//   - HEAD message retrieval
//   - HEAD message amend
//
// This package should be the only place where git commands are executed.
package git
