package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	rlcerrors "renamecommit.dev/renamecommit/internal/errors"
)

// Repository wraps a go-git repository
type Repository struct {
	*gogit.Repository
	root string
}

// CommitInfo describes a single commit
type CommitInfo struct {
	Hash         string
	TreeHash     string
	ParentHashes []string
	Subject      string
	Message      string
}

// ShortHash returns the abbreviated commit hash
func (c CommitInfo) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// OpenRepository opens the git repository containing path and resolves its root.
// Any failure is reported as ErrRepositoryNotFound.
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve path %s: %w", rlcerrors.ErrRepositoryNotFound, path, err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
		// Linked worktrees keep their refs and objects in the main repository
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %w", rlcerrors.ErrRepositoryNotFound, absPath, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, gogit.ErrIsBareRepository) {
			return nil, fmt.Errorf("%w: %s is a bare repository", rlcerrors.ErrRepositoryNotFound, absPath)
		}
		return nil, fmt.Errorf("%w: failed to get worktree: %w", rlcerrors.ErrRepositoryNotFound, err)
	}

	return &Repository{
		Repository: repo,
		root:       worktree.Filesystem.Root(),
	}, nil
}

// Root returns the root directory of the working copy
func (r *Repository) Root() string {
	return r.root
}

// HeadCommit returns information about the commit HEAD points to
func (r *Repository) HeadCommit() (CommitInfo, error) {
	head, err := r.Head()
	if err != nil {
		return CommitInfo{}, fmt.Errorf("failed to get HEAD: %w", err)
	}
	commit, err := r.CommitObject(head.Hash())
	if err != nil {
		return CommitInfo{}, fmt.Errorf("failed to read commit %s: %w", head.Hash(), err)
	}
	return newCommitInfo(commit), nil
}

// RemoteNames returns the configured remote names, sorted
func (r *Repository) RemoteNames() ([]string, error) {
	remotes, err := r.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		names = append(names, remote.Config().Name)
	}
	sort.Strings(names)
	return names, nil
}

// branchTips returns the commit hashes of local branches and remote-tracking branches
func (r *Repository) branchTips() (local, remote []plumbing.Hash, err error) {
	refs, err := r.References()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list references: %w", err)
	}
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		switch {
		case ref.Name().IsBranch():
			local = append(local, ref.Hash())
		case ref.Name().IsRemote():
			remote = append(remote, ref.Hash())
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to iterate references: %w", err)
	}
	return local, remote, nil
}

func newCommitInfo(c *object.Commit) CommitInfo {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}
	message := strings.TrimRight(c.Message, "\n")
	subject, _, _ := strings.Cut(message, "\n")
	return CommitInfo{
		Hash:         c.Hash.String(),
		TreeHash:     c.TreeHash.String(),
		ParentHashes: parents,
		Subject:      subject,
		Message:      message,
	}
}
