package runtime

import (
	"context"

	"renamecommit.dev/renamecommit/internal/config"
	"renamecommit.dev/renamecommit/internal/git"
	"renamecommit.dev/renamecommit/internal/tui"
)

// Context provides access to the repository, backend and output for commands
type Context struct {
	context.Context
	Repo    *git.Repository
	Backend git.Backend
	Splog   *tui.Splog
	Config  *config.Config
}

// NewContext creates a new context from already constructed parts
func NewContext(ctx context.Context, repo *git.Repository, backend git.Backend, splog *tui.Splog, cfg *config.Config) *Context {
	if splog == nil {
		splog = tui.NewSplog()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Context{
		Context: ctx,
		Repo:    repo,
		Backend: backend,
		Splog:   splog,
		Config:  cfg,
	}
}

// Open resolves the repository containing repoPath and builds the configured backend for it.
// A path outside any repository yields an error wrapping errors.ErrRepositoryNotFound.
func Open(ctx context.Context, repoPath string, cfg *config.Config, splog *tui.Splog) (*Context, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	repo, err := git.OpenRepository(repoPath)
	if err != nil {
		return nil, err
	}

	runner := git.NewCommandRunner(repo.Root(), cfg.RunnerOptions()...)
	backend, err := git.NewBackend(cfg.Backend, repo, runner)
	if err != nil {
		return nil, err
	}

	return NewContext(ctx, repo, backend, splog, cfg), nil
}
