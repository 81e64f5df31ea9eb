package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectCommitMessage asserts that rev carries exactly the expected message.
func ExpectCommitMessage(t *testing.T, repo *GitRepo, rev, expected string) {
	t.Helper()

	message, err := repo.CommitMessage(rev)
	require.NoError(t, err, "Failed to read commit message")
	require.Equal(t, expected, message, "Commit message does not match")
}

// HistorySnapshot records the parts of HEAD an amend must not change.
type HistorySnapshot struct {
	Head    string
	Tree    string
	Parents string
	Author  string
}

// TakeHistorySnapshot captures HEAD's hash, tree, parents and author.
func TakeHistorySnapshot(t *testing.T, repo *GitRepo) HistorySnapshot {
	t.Helper()

	head, err := repo.GetRevision("HEAD")
	require.NoError(t, err)
	tree, err := repo.TreeHash("HEAD")
	require.NoError(t, err)
	parents, err := repo.ParentHashes("HEAD")
	require.NoError(t, err)
	author, err := repo.AuthorLine("HEAD")
	require.NoError(t, err)

	return HistorySnapshot{Head: head, Tree: tree, Parents: parents, Author: author}
}

// ExpectOnlyMessageRewritten asserts that HEAD was rewritten while its tree, parents
// and author stayed the same.
func ExpectOnlyMessageRewritten(t *testing.T, repo *GitRepo, before HistorySnapshot) {
	t.Helper()

	after := TakeHistorySnapshot(t, repo)
	require.NotEqual(t, before.Head, after.Head, "HEAD should point to a new commit")
	require.Equal(t, before.Tree, after.Tree, "tree hash changed")
	require.Equal(t, before.Parents, after.Parents, "parent chain changed")
	require.Equal(t, before.Author, after.Author, "author changed")
}

// ExpectHeadUnchanged asserts that HEAD still points to the commit in before.
func ExpectHeadUnchanged(t *testing.T, repo *GitRepo, before HistorySnapshot) {
	t.Helper()

	head, err := repo.GetRevision("HEAD")
	require.NoError(t, err)
	require.Equal(t, before.Head, head, "HEAD should not have moved")
}
