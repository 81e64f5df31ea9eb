package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestSplog(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	t.Run("console gets messages and output stays separate", func(t *testing.T) {
		var console, output bytes.Buffer
		splog, err := NewSplogWithConfig(&console, &output, "")
		require.NoError(t, err)

		splog.Info("checking %s", "repo")
		splog.Success("renamed")
		splog.Warn("careful")
		splog.Error("failed: %d", 4)
		splog.Page("current message\n")

		require.Equal(t, "checking repo\n✔ renamed\n⚠️  careful\n❌ failed: 4\n", console.String())
		require.Equal(t, "current message\n", output.String())
	})

	t.Run("debug lines only with DEBUG", func(t *testing.T) {
		t.Setenv("DEBUG", "")
		var console bytes.Buffer
		splog, err := NewSplogWithConfig(&console, &bytes.Buffer{}, "")
		require.NoError(t, err)

		splog.Debug("hidden")
		require.Empty(t, console.String())
	})

	t.Run("file log receives debug lines", func(t *testing.T) {
		t.Setenv("DEBUG", "")
		logPath := filepath.Join(t.TempDir(), "logs", "rlc.log")
		var console bytes.Buffer
		splog, err := NewSplogWithConfig(&console, &bytes.Buffer{}, logPath)
		require.NoError(t, err)

		splog.Debug("backend=exec")
		splog.Info("visible")
		require.NoError(t, splog.Close())

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		require.Contains(t, string(data), "backend=exec")
		require.Contains(t, string(data), "visible")
		require.Equal(t, "visible\n", console.String())
	})

	t.Run("record goes to the file only", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "logs", "rlc.log")
		var console bytes.Buffer
		splog, err := NewSplogWithConfig(&console, &bytes.Buffer{}, logPath)
		require.NoError(t, err)

		splog.Record("run failed", "error", "no unpushed commits", "exit", 2)
		require.NoError(t, splog.Close())

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		require.Contains(t, string(data), `msg="run failed"`)
		require.Contains(t, string(data), "exit=2")
		require.Empty(t, console.String())
	})

	t.Run("record without a log file is a no-op", func(t *testing.T) {
		var console bytes.Buffer
		splog, err := NewSplogWithConfig(&console, &bytes.Buffer{}, "")
		require.NoError(t, err)

		splog.Record("run failed", "exit", 6)
		require.Empty(t, console.String())
	})
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("RENAME_LAST_COMMIT_LOG_FILE", "/tmp/custom.log")
	require.Equal(t, "/tmp/custom.log", GetLogFilePath())

	t.Setenv("RENAME_LAST_COMMIT_LOG_FILE", "")
	require.Contains(t, GetLogFilePath(), filepath.Join(".rename-last-commit", "logs"))
}
