package utils

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	rlcerrors "renamecommit.dev/renamecommit/internal/errors"
)

// IsInteractive checks if we're in an interactive terminal
func IsInteractive() bool {
	// Allow forcing non-interactive mode via environment variable
	if os.Getenv("RENAME_LAST_COMMIT_NON_INTERACTIVE") != "" || os.Getenv("RENAME_LAST_COMMIT_TEST_NO_INTERACTIVE") != "" {
		return false
	}
	return isTerminal(os.Stdin) && isTerminal(os.Stderr)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ValidateCommitMessage rejects empty and whitespace-only messages
func ValidateCommitMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return rlcerrors.ErrBlankMessage
	}
	return nil
}
