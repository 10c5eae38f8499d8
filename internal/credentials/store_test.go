package credentials

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStoreAt(path.Join(t.TempDir(), "token"))

	_, ok := store.Get()
	require.False(t, ok)

	store.Set("opensesame")
	token, ok := store.Get()
	require.True(t, ok)
	require.Equal(t, "opensesame", token)

	store.Clear()
	_, ok = store.Get()
	require.False(t, ok)
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	tokenPath := path.Join(t.TempDir(), "deeper", "token")
	store := NewFileStoreAt(tokenPath)

	store.Set("opensesame")

	info, err := os.Stat(tokenPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreIgnoresWhitespace(t *testing.T) {
	tokenPath := path.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenPath, []byte("  opensesame\n"), 0600))

	token, ok := NewFileStoreAt(tokenPath).Get()
	require.True(t, ok)
	require.Equal(t, "opensesame", token)
}

func TestFileStoreEmptyFileIsAbsent(t *testing.T) {
	tokenPath := path.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenPath, []byte("\n"), 0600))

	_, ok := NewFileStoreAt(tokenPath).Get()
	require.False(t, ok)
}

func TestFileStoreUnavailableMedium(t *testing.T) {
	// A store with no resolvable path must degrade to no-ops rather than
	// erroring or panicking.
	store := NewFileStoreAt("")
	store.Set("opensesame")
	store.Clear()
	_, ok := store.Get()
	require.False(t, ok)
}
