// Package tui provides the terminal user interface for rename-last-commit.
//
// It handles:
//   - Interactive message entry and confirmation (using bubbletea and survey)
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss)
//   - Editing messages in the user's editor
package tui
