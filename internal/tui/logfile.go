package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If RENAME_LAST_COMMIT_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.rename-last-commit/logs/rename-last-commit.log
func GetLogFilePath() string {
	if customPath := os.Getenv("RENAME_LAST_COMMIT_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "rename-last-commit.log"
	}

	return filepath.Join(homeDir, ".rename-last-commit", "logs", "rename-last-commit.log")
}
