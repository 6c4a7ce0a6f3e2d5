package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserStore(t *testing.T) *UserStore {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "userstore_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	return NewUserStore(filepath.Join(tmpDir, "users.dat"))
}

func TestUserCreateAndFind(t *testing.T) {
	s := newTestUserStore(t)

	id, err := s.Create("ann", "hash-a")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	id, err = s.Create("bob", "hash-b")
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	u, err := s.FindByName("bob")
	require.NoError(t, err)
	assert.Equal(t, User{ID: 2, Username: "bob", PasswordHash: "hash-b"}, u)
}

func TestUserDuplicateUsername(t *testing.T) {
	s := newTestUserStore(t)

	_, err := s.Create("ann", "hash-a")
	require.NoError(t, err)

	_, err = s.Create("ann", "other-hash")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserFindMissing(t *testing.T) {
	s := newTestUserStore(t)

	_, err := s.FindByName("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserSurvivesReopen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "userstore_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	path := filepath.Join(tmpDir, "users.dat")

	s := NewUserStore(path)
	_, err = s.Create("ann", "hash-a")
	require.NoError(t, err)

	reopened := NewUserStore(path)
	u, err := reopened.FindByName("ann")
	require.NoError(t, err)
	assert.Equal(t, "hash-a", u.PasswordHash)

	// Ids keep counting from the persisted maximum.
	id, err := reopened.Create("bob", "hash-b")
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}
