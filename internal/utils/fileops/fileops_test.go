package fileops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIfChanged(t *testing.T) {
	fo := NewFileOps()
	dir := t.TempDir()
	target := filepath.Join(dir, ".bunner", "runtime.ts")

	t.Run("creates missing file and parents", func(t *testing.T) {
		written, err := fo.WriteIfChanged(target, []byte("a"))
		require.NoError(t, err)
		assert.True(t, written)

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "a", string(got))
	})

	t.Run("skips identical content", func(t *testing.T) {
		past := time.Now().Add(-time.Hour).Truncate(time.Second)
		require.NoError(t, os.Chtimes(target, past, past))

		written, err := fo.WriteIfChanged(target, []byte("a"))
		require.NoError(t, err)
		assert.False(t, written)

		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(past))
	})

	t.Run("rewrites changed content", func(t *testing.T) {
		written, err := fo.WriteIfChanged(target, []byte("b"))
		require.NoError(t, err)
		assert.True(t, written)

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "b", string(got))
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := fo.WriteIfChanged("", []byte("x"))
		assert.Error(t, err)
	})
}

func TestRemoveAll(t *testing.T) {
	fo := NewFileOps()
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))

	removed, err := fo.RemoveAll(dir)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, fo.Exists(dir))

	removed, err = fo.RemoveAll(dir)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestReadFile(t *testing.T) {
	fo := NewFileOps()
	_, err := fo.ReadFile(filepath.Join(t.TempDir(), "missing.ts"))
	assert.Error(t, err)
}
