package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerGenerateAndParse(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("exp-1", "results/pending.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, name, parsedExpiry, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "exp-1", id)
	assert.Equal(t, "results/pending.csv", name)
	assert.WithinDuration(t, expiresAt, parsedExpiry, time.Second)
}

func TestSignedURLSignerRejectsTamperingAndExpiry(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)
	token, _, err := signer.Generate("exp-1", "results/pending.csv")
	require.NoError(t, err)

	_, _, _, err = NewSignedURLSigner("other", time.Minute).Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, _, _, err = signer.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	signer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, _, _, err = signer.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestLocalStorageSaveOpenCleanup(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("results/a.csv", []byte("a,b\n"))
	require.NoError(t, err)

	f, size, err := store.Open("results/a.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(4), size)
	require.NoError(t, f.Close())

	_, err = store.Save("../escape.csv", []byte("x"))
	assert.Error(t, err)

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(store.baseDir, "results", "a.csv"), old, old))
	deleted, err := store.CleanupOlderThan(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"results/a.csv"}, deleted)

	require.NoError(t, store.Delete("results/a.csv"))
}
