package actions

import (
	"fmt"
	"strings"

	rlcerrors "renamecommit.dev/renamecommit/internal/errors"
	"renamecommit.dev/renamecommit/internal/git"
	"renamecommit.dev/renamecommit/internal/runtime"
	"renamecommit.dev/renamecommit/internal/tui"
	"renamecommit.dev/renamecommit/internal/utils"
)

// RenameCommitOptions contains options for the rename-last-commit command
type RenameCommitOptions struct {
	// Message is the replacement passed with --message; MessageSet records whether the flag was given
	Message    string
	MessageSet bool
	// StdinMessage is the replacement read from piped stdin, if any
	StdinMessage string
	UseEditor    bool
	Interactive  bool
	Yes          bool
	DryRun       bool
	Prompter     Prompter
}

// ValidateMessageFlag checks an explicit --message before anything touches the repository
func ValidateMessageFlag(opts RenameCommitOptions) error {
	if !opts.MessageSet {
		return nil
	}
	if err := utils.ValidateCommitMessage(opts.Message); err != nil {
		return fmt.Errorf("--message: %w", err)
	}
	return nil
}

// RenameCommitAction amends the message of HEAD when the local branches carry unpushed commits
func RenameCommitAction(ctx *runtime.Context, opts RenameCommitOptions) error {
	splog := ctx.Splog
	backend := ctx.Backend

	if err := ValidateMessageFlag(opts); err != nil {
		return err
	}

	splog.Debug("Using %s backend in %s", backend.Name(), repoRoot(ctx))

	status, err := backend.CheckUnpushed(ctx)
	switch status {
	case git.Unpushed:
		logRemotes(ctx)
	case git.NonePending:
		return rlcerrors.ErrNoUnpushedCommits
	default:
		if err == nil {
			err = rlcerrors.ErrCheckFailed
		}
		return err
	}

	if published, err := backend.HeadIsPublished(ctx); err != nil {
		splog.Debug("Could not tell whether HEAD is on a remote: %v", err)
	} else if published {
		splog.Warn("HEAD is already on a remote-tracking branch; renaming it rewrites published history.")
	}

	current, err := backend.LastCommitMessage(ctx)
	if err != nil {
		splog.Debug("Could not read the current message: %v", err)
	}

	var before *git.CommitInfo
	if ctx.Repo != nil {
		if info, err := ctx.Repo.HeadCommit(); err == nil {
			before = &info
		} else {
			splog.Debug("Could not read HEAD before amending: %v", err)
		}
	}

	newMessage, err := obtainMessage(ctx, opts, current)
	if err != nil {
		return err
	}
	if err := utils.ValidateCommitMessage(newMessage); err != nil {
		return err
	}

	if newMessage == current && !opts.Yes && !opts.DryRun && opts.Interactive {
		proceed, err := opts.Prompter.Confirm("The message is unchanged. Amend anyway?", false)
		if err != nil {
			return err
		}
		if !proceed {
			splog.Info("Commit message left unchanged.")
			return nil
		}
	}

	if opts.DryRun {
		splog.Page(describeDryRun(before, current, newMessage))
		return nil
	}

	result, err := backend.AmendMessage(ctx, newMessage)
	if err != nil {
		splog.Tip("The amend may have partially applied. Inspect the repository with `git status` and `git reflog` before retrying.")
		return err
	}
	for _, line := range result.Stdout {
		splog.Debug("%s", line)
	}
	for _, warning := range result.Warnings {
		splog.Warn("%s", warning)
	}

	verifyAmend(ctx, before)
	splog.Success("Commit message successfully changed.")
	return nil
}

// obtainMessage picks the replacement from the flag, stdin, the editor or the prompt, in that order
func obtainMessage(ctx *runtime.Context, opts RenameCommitOptions, current string) (string, error) {
	switch {
	case opts.MessageSet:
		return opts.Message, nil
	case opts.StdinMessage != "":
		ctx.Splog.Debug("Read new message from stdin")
		return opts.StdinMessage, nil
	case !opts.Interactive:
		return "", fmt.Errorf("%w: pass --message or pipe the message on stdin in non-interactive mode", rlcerrors.ErrBlankMessage)
	case opts.Prompter == nil:
		return "", fmt.Errorf("no prompter available")
	case opts.UseEditor:
		return opts.Prompter.EditMessage(current)
	default:
		return opts.Prompter.PromptMessage(current)
	}
}

// verifyAmend warns if the amended HEAD does not share its predecessor's tree and parents
func verifyAmend(ctx *runtime.Context, before *git.CommitInfo) {
	if before == nil || ctx.Repo == nil {
		return
	}
	after, err := ctx.Repo.HeadCommit()
	if err != nil {
		ctx.Splog.Debug("Could not read HEAD after amending: %v", err)
		return
	}
	if after.TreeHash != before.TreeHash {
		ctx.Splog.Warn("Tree changed from %s to %s while amending; check `git reflog`.", before.TreeHash, after.TreeHash)
	}
	if strings.Join(after.ParentHashes, " ") != strings.Join(before.ParentHashes, " ") {
		ctx.Splog.Warn("Parents of HEAD changed while amending; check `git reflog`.")
	}
	ctx.Splog.Debug("Amended %s -> %s", before.ShortHash(), after.ShortHash())
}

func describeDryRun(before *git.CommitInfo, current, newMessage string) string {
	var b strings.Builder
	if before != nil {
		fmt.Fprintf(&b, "Would amend %s\n", tui.ColorCyan(before.ShortHash()))
	} else {
		b.WriteString("Would amend HEAD\n")
	}
	b.WriteString("\nCurrent message:\n")
	b.WriteString(indent(current))
	b.WriteString("\nNew message:\n")
	b.WriteString(indent(newMessage))
	return b.String()
}

func indent(message string) string {
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n") + "\n"
}

func logRemotes(ctx *runtime.Context) {
	if ctx.Repo == nil {
		return
	}
	remotes, err := ctx.Repo.RemoteNames()
	switch {
	case err != nil:
		ctx.Splog.Debug("Could not list remotes: %v", err)
	case len(remotes) == 0:
		ctx.Splog.Debug("No remotes configured; every local commit counts as unpushed")
	default:
		ctx.Splog.Debug("Checked against remotes: %s", strings.Join(remotes, ", "))
	}
}

func repoRoot(ctx *runtime.Context) string {
	if ctx.Repo == nil {
		return "."
	}
	return ctx.Repo.Root()
}
