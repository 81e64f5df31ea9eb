package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadFromStdin(t *testing.T) {
	t.Setenv("RENAME_LAST_COMMIT_TEST_NO_INTERACTIVE", "1")

	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r

	expected := "my commit message\n\n  with an indented body"
	go func() {
		_, _ = w.Write([]byte(expected + "\n"))
		_ = w.Close()
	}()

	msg, err := ReadFromStdin()
	require.NoError(t, err)
	require.Equal(t, expected, msg)
}

func TestReadFromStdinEmptyFile(t *testing.T) {
	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()
	os.Stdin = f

	msg, err := ReadFromStdin()
	require.NoError(t, err)
	require.Empty(t, msg)
}
