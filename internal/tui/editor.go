package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EditorCommand returns the editor git would use: GIT_EDITOR, core.editor, VISUAL, EDITOR, then vi.
func EditorCommand(repoRoot string) string {
	if editor := os.Getenv("GIT_EDITOR"); editor != "" {
		return editor
	}
	cmd := exec.Command("git", "config", "--get", "core.editor")
	cmd.Dir = repoRoot
	if output, err := cmd.Output(); err == nil {
		if editor := strings.TrimSpace(string(output)); editor != "" {
			return editor
		}
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}

// OpenEditor opens editor on a temporary file holding initialContent and
// returns the edited content.
func OpenEditor(editor, initialContent, filenamePattern string) (string, error) {
	tmpFile, err := os.CreateTemp("", filenamePattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	if _, err := tmpFile.WriteString(initialContent); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	// The editor setting may carry arguments, so let the shell split it
	cmd := exec.Command("sh", "-c", fmt.Sprintf("%s %q", editor, tmpFile.Name()))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor exited with error: %w", err)
	}

	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}

	return string(content), nil
}
