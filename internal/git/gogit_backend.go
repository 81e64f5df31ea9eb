package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	rlcerrors "renamecommit.dev/renamecommit/internal/errors"
)

// GoGitBackend implements Backend in-process with go-git.
// Amends made through it do not write a reflog entry, run hooks or sign commits.
type GoGitBackend struct {
	repo *Repository
	now  func() time.Time
}

// NewGoGitBackend creates a GoGitBackend for repo
func NewGoGitBackend(repo *Repository) *GoGitBackend {
	return &GoGitBackend{repo: repo, now: time.Now}
}

// Name implements Backend
func (b *GoGitBackend) Name() string {
	return BackendGoGit
}

// CheckUnpushed implements Backend. A local branch tip that is not reachable from any
// remote-tracking branch is itself an unpushed commit, so only tips need testing.
func (b *GoGitBackend) CheckUnpushed(ctx context.Context) (UnpushedStatus, error) {
	local, remote, err := b.repo.branchTips()
	if err != nil {
		return CheckFailed, fmt.Errorf("%w: %w", rlcerrors.ErrCheckFailed, err)
	}
	published, err := b.reachable(ctx, remote)
	if err != nil {
		return CheckFailed, fmt.Errorf("%w: %w", rlcerrors.ErrCheckFailed, err)
	}
	for _, tip := range local {
		if !published[tip] {
			return Unpushed, nil
		}
	}
	return NonePending, nil
}

// HeadIsPublished implements Backend
func (b *GoGitBackend) HeadIsPublished(ctx context.Context) (bool, error) {
	head, err := b.repo.Head()
	if err != nil {
		return false, fmt.Errorf("failed to get HEAD: %w", err)
	}
	_, remote, err := b.repo.branchTips()
	if err != nil {
		return false, err
	}
	published, err := b.reachable(ctx, remote)
	if err != nil {
		return false, err
	}
	return published[head.Hash()], nil
}

// LastCommitMessage implements Backend
func (b *GoGitBackend) LastCommitMessage(_ context.Context) (string, error) {
	info, err := b.repo.HeadCommit()
	if err != nil {
		return NoCommitMessagePlaceholder, err
	}
	if strings.TrimSpace(info.Message) == "" {
		return NoCommitMessagePlaceholder, fmt.Errorf("HEAD has an empty message")
	}
	return info.Message, nil
}

// AmendMessage writes a copy of HEAD with the new message and moves the ref HEAD resolves to.
func (b *GoGitBackend) AmendMessage(_ context.Context, message string) (CommandResult, error) {
	head, err := b.repo.Head()
	if err != nil {
		return CommandResult{Stderr: err.Error()}, rlcerrors.NewAmendFailedError("", fmt.Errorf("failed to get HEAD: %w", err))
	}
	commit, err := b.repo.CommitObject(head.Hash())
	if err != nil {
		return CommandResult{Stderr: err.Error()}, rlcerrors.NewAmendFailedError("", err)
	}
	cfg, err := b.repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		err = fmt.Errorf("failed to read git config: %w", err)
		return CommandResult{Stderr: err.Error()}, rlcerrors.NewAmendFailedError(err.Error(), err)
	}
	committer, err := b.committer(cfg)
	if err != nil {
		return CommandResult{Stderr: err.Error()}, rlcerrors.NewAmendFailedError(err.Error(), err)
	}

	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}
	amended := &object.Commit{
		Author:       commit.Author,
		Committer:    committer,
		Message:      message,
		TreeHash:     commit.TreeHash,
		ParentHashes: commit.ParentHashes,
		Encoding:     commit.Encoding,
	}

	obj := b.repo.Storer.NewEncodedObject()
	if err := amended.Encode(obj); err != nil {
		return CommandResult{Stderr: err.Error()}, rlcerrors.NewAmendFailedError("", fmt.Errorf("failed to encode commit: %w", err))
	}
	hash, err := b.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return CommandResult{Stderr: err.Error()}, rlcerrors.NewAmendFailedError("", fmt.Errorf("failed to store commit: %w", err))
	}

	ref := plumbing.NewHashReference(head.Name(), hash)
	if err := b.repo.Storer.CheckAndSetReference(ref, head); err != nil {
		return CommandResult{Stderr: err.Error()}, rlcerrors.NewAmendFailedError("", fmt.Errorf("failed to update %s: %w", head.Name(), err))
	}

	subject, _, _ := strings.Cut(message, "\n")
	return CommandResult{
		Success:  true,
		Stdout:   []string{fmt.Sprintf("[%s %s] %s", head.Name().Short(), hash.String()[:7], subject)},
		Warnings: amendCaveats(cfg),
	}, nil
}

// amendCaveats lists settings git would honor on amend that this backend does not
func amendCaveats(cfg *config.Config) []string {
	var caveats []string
	if sign, err := strconv.ParseBool(cfg.Raw.Section("commit").Option("gpgsign")); err == nil && sign {
		caveats = append(caveats, "commit.gpgsign is set but the go-git backend does not sign commits; use --backend exec to keep the signature")
	}
	if os.Getenv("GIT_COMMITTER_DATE") != "" {
		caveats = append(caveats, "GIT_COMMITTER_DATE is ignored by the go-git backend; the committer date is the current time")
	}
	return caveats
}

// reachable returns every commit reachable from the given tips
func (b *GoGitBackend) reachable(ctx context.Context, tips []plumbing.Hash) (map[plumbing.Hash]bool, error) {
	seen := make(map[plumbing.Hash]bool)
	for _, tip := range tips {
		if seen[tip] {
			continue
		}
		commit, err := b.repo.CommitObject(tip)
		if err != nil {
			// Remote-tracking refs may point at objects that were never fetched
			if errors.Is(err, plumbing.ErrObjectNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to read commit %s: %w", tip, err)
		}
		iter := object.NewCommitPreorderIter(commit, seen, nil)
		err = iter.ForEach(func(c *object.Commit) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seen[c.Hash] = true
			return nil
		})
		iter.Close()
		if err != nil && !errors.Is(err, storer.ErrStop) {
			return nil, fmt.Errorf("failed to walk history from %s: %w", tip, err)
		}
	}
	return seen, nil
}

// committer resolves the committer identity the way git does: environment first, then config
func (b *GoGitBackend) committer(cfg *config.Config) (object.Signature, error) {
	name := firstNonEmpty(os.Getenv("GIT_COMMITTER_NAME"), cfg.Committer.Name, cfg.User.Name)
	email := firstNonEmpty(os.Getenv("GIT_COMMITTER_EMAIL"), cfg.Committer.Email, cfg.User.Email)

	if name == "" || email == "" {
		return object.Signature{}, fmt.Errorf("committer identity unknown: set user.name and user.email")
	}
	return object.Signature{Name: name, Email: email, When: b.now()}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
