package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) Storage {
	t.Helper()
	store, err := NewStorage(Config{BasePath: t.TempDir(), BaseURL: "/media/"})
	require.NoError(t, err)
	return store
}

func TestSaveAndDelete(t *testing.T) {
	store := newTestStorage(t)

	path, err := store.Save("avatars/u1/pic.png", strings.NewReader("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "avatars/u1/pic.png", path)

	// Overwrite is allowed.
	_, err = store.Save("avatars/u1/pic.png", strings.NewReader("new pixels"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(path))
	// Deleting a missing blob is not an error.
	require.NoError(t, store.Delete(path))
}

func TestSavedContent(t *testing.T) {
	base := t.TempDir()
	store, err := NewStorage(Config{BasePath: base, BaseURL: "/media"})
	require.NoError(t, err)

	_, err = store.Save("a/b.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(base, "a", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestPathTraversalIsContained(t *testing.T) {
	base := t.TempDir()
	store, err := NewStorage(Config{BasePath: base, BaseURL: "/media"})
	require.NoError(t, err)

	outside := filepath.Join(filepath.Dir(base), "escape.txt")
	_, saveErr := store.Save("../escape.txt", strings.NewReader("nope"))
	if saveErr == nil {
		_, statErr := os.Stat(outside)
		assert.True(t, os.IsNotExist(statErr), "blob must stay under the storage root")
	}
}

func TestURL(t *testing.T) {
	store := newTestStorage(t)
	assert.Equal(t, "/media/avatars/u1/pic.png", store.URL("avatars/u1/pic.png"))
	assert.Equal(t, "/media/avatars/u1/pic.png", store.URL("/avatars/u1/pic.png"))
}
