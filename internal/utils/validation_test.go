package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	rlcerrors "renamecommit.dev/renamecommit/internal/errors"
)

func TestValidateCommitMessage(t *testing.T) {
	for _, blank := range []string{"", " ", "\t", "\n\n", " \r\n\t "} {
		require.ErrorIs(t, ValidateCommitMessage(blank), rlcerrors.ErrBlankMessage, "%q should be rejected", blank)
	}
	for _, ok := range []string{"bar", "  leading space", "subject\n\nbody", "#hashtag"} {
		require.NoError(t, ValidateCommitMessage(ok), "%q should be accepted", ok)
	}
}

func TestIsInteractiveHonoursOverrides(t *testing.T) {
	t.Setenv("RENAME_LAST_COMMIT_NON_INTERACTIVE", "1")
	require.False(t, IsInteractive())
}

func TestCleanEditedMessage(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"template untouched": {
			in:   EditTemplate("foo"),
			want: "foo",
		},
		"body kept, comments dropped": {
			in:   "bar\n\nbody line   \n# a comment\n\n\n\nmore\n",
			want: "bar\n\nbody line\n\nmore",
		},
		"only comments": {
			in:   "# nothing here\n#\n",
			want: "",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.want, CleanEditedMessage(tt.in))
		})
	}
}
