// Package cli wires the rename-last-commit command line onto the actions package.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"renamecommit.dev/renamecommit/internal/actions"
	"renamecommit.dev/renamecommit/internal/config"
	rlcerrors "renamecommit.dev/renamecommit/internal/errors"
	"renamecommit.dev/renamecommit/internal/git"
	"renamecommit.dev/renamecommit/internal/runtime"
	"renamecommit.dev/renamecommit/internal/tui"
	"renamecommit.dev/renamecommit/internal/utils"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var (
		message   string
		repoPath  string
		useEditor bool
		yes       bool
		dryRun    bool
		backend   string
	)

	rootCmd := &cobra.Command{
		Use:   "rename-last-commit",
		Short: "Change the message of the most recent commit, as long as it has not been pushed",
		Long: `Change the message of the most recent commit, as long as it has not been pushed.

The new message comes from --message, from standard input when it is piped,
from your editor with --editor, or from an interactive prompt pre-filled with
the current message. Only the message changes: the tree, parents and author of
the commit are kept, and staged changes are not folded into it.

Exit codes:
  0  the message was changed
  1  no git repository was found
  2  there are no unpushed commits
  3  the new message is blank
  4  git failed to amend the commit
  5  git is unavailable or the unpushed check failed
  6  any other error`,
		Args:          cobra.NoArgs,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			opts := actions.RenameCommitOptions{
				Message:    message,
				MessageSet: cmd.Flags().Changed("message"),
				UseEditor:  useEditor,
				Yes:        yes,
				DryRun:     dryRun,
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			splog, err := newSplog(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err != nil {
					splog.Record("run failed", "error", err.Error(), "exit", rlcerrors.ExitCode(err))
				}
				_ = splog.Close()
			}()

			// A blank --message is rejected before git is touched
			if err := actions.ValidateMessageFlag(opts); err != nil {
				return err
			}

			if cmd.Flags().Changed("backend") {
				cfg.Backend = backend
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			ctx, err := runtime.Open(cmd.Context(), repoPath, cfg, splog)
			if err != nil {
				return err
			}

			opts.Interactive = !cfg.NonInteractive && utils.IsInteractive()
			if !opts.MessageSet && !opts.Interactive {
				stdinMessage, err := utils.ReadFromStdin()
				if err != nil {
					return fmt.Errorf("reading message from stdin: %w", err)
				}
				opts.StdinMessage = stdinMessage
			}
			opts.Prompter = actions.NewTUIPrompter(ctx.Repo.Root())

			return actions.RenameCommitAction(ctx, opts)
		},
	}

	rootCmd.SetVersionTemplate("rename-last-commit {{.Version}}\n")

	rootCmd.Flags().StringVarP(&message, "message", "m", "", "The new commit message. If passed, no prompt or editor is opened.")
	rootCmd.Flags().StringVarP(&repoPath, "repo", "r", ".", "Path inside the repository whose last commit should be renamed")
	rootCmd.Flags().BoolVarP(&useEditor, "editor", "e", false, "Edit the message in your git editor instead of the inline prompt")
	rootCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation when the message is unchanged")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the current and new message without amending")
	rootCmd.Flags().StringVar(&backend, "backend", git.BackendExec, fmt.Sprintf("How to talk to the repository: %q runs git, %q works in-process (no reflog entry, no commit signing, no hooks, GIT_COMMITTER_DATE ignored)", git.BackendExec, git.BackendGoGit))
	rootCmd.MarkFlagsMutuallyExclusive("message", "editor")

	_ = rootCmd.RegisterFlagCompletionFunc("backend", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{git.BackendExec, git.BackendGoGit}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd
}

// newSplog builds the command logger: messages on stderr, output on stdout, and a rotating log file
func newSplog(cmd *cobra.Command, cfg *config.Config) (*tui.Splog, error) {
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = tui.GetLogFilePath()
	}
	splog, err := tui.NewSplogWithConfig(cmd.ErrOrStderr(), cmd.OutOrStdout(), logFile)
	if err != nil {
		// Logging to a file is best effort
		return tui.NewSplogWithConfig(cmd.ErrOrStderr(), cmd.OutOrStdout(), "")
	}
	return splog, nil
}
