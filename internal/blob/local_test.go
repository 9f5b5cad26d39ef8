package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "files_manager")

	s, err := NewLocalStore(root)
	require.NoError(t, err)

	p := s.Path(NewName())
	assert.Equal(t, root, filepath.Dir(p))

	_, err = s.Read(ctx, p)
	assert.ErrorIs(t, err, ErrNotExist)

	// Root doesn't exist yet
	require.NoError(t, s.Write(ctx, p, []byte("Hello Webstack!")))

	data, err := s.Read(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello Webstack!"), data)

	require.NoError(t, s.Write(ctx, p, []byte("again")))
	data, err = s.Read(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []byte("again"), data)

	// No temp files are left behind
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStoreVariantPaths(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	p := s.Path(NewName())
	require.NoError(t, s.Write(ctx, p+"_100", []byte{1, 2, 3}))

	_, err = s.Read(ctx, p)
	assert.ErrorIs(t, err, ErrNotExist)

	data, err := s.Read(ctx, p+"_100")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestLocalStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	p := s.Path(NewName())
	require.NoError(t, s.Write(ctx, p, []byte("x")))
	require.NoError(t, s.Delete(ctx, p))

	_, err = s.Read(ctx, p)
	assert.ErrorIs(t, err, ErrNotExist)

	// Already gone
	assert.NoError(t, s.Delete(ctx, p))
}

func TestLocalStoreRejectsEscapes(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{
		"/etc/passwd",
		filepath.Join(s.Root(), "..", "x"),
		filepath.Join(s.Root(), "sub", "x"),
		s.Root(),
	} {
		assert.Error(t, s.Write(ctx, p, []byte("x")), p)
		assert.Error(t, s.Delete(ctx, p), p)

		_, err := s.Read(ctx, p)
		assert.Error(t, err, p)
		assert.NotErrorIs(t, err, ErrNotExist, p)
	}
}

func TestNewNameIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		n := NewName()
		assert.False(t, seen[n])
		seen[n] = true
	}
}
