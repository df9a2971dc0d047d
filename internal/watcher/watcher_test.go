package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectWatcher_CloseBeforeStart(t *testing.T) {
	w := NewProjectWatcher(t.TempDir())
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestProjectWatcher_StartMissingRoot(t *testing.T) {
	w := NewProjectWatcher(filepath.Join(t.TempDir(), "missing"))
	err := w.Start(func(FileChangePayload) {})
	assert.Error(t, err)
	assert.NoError(t, w.Close())
}

func TestProjectWatcher_SkipsIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "users"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "pkg"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dist"), 0o755))

	w := NewProjectWatcher(root)
	require.NoError(t, w.Start(func(FileChangePayload) {}))
	defer w.Close()

	assert.Equal(t, 2, w.WatchedDirs())
}

func TestProjectWatcher_ReportsTypeScriptChanges(t *testing.T) {
	root := t.TempDir()
	payloads := make(chan FileChangePayload, 64)

	w := NewProjectWatcher(root)
	require.NoError(t, w.Start(func(p FileChangePayload) {
		payloads <- p
	}))
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "types.d.ts"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "feature.ts"), []byte("x"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case p := <-payloads:
			require.NotEqual(t, EventError, p.EventType)
			require.Equal(t, "feature.ts", p.Filename)
			return
		case <-deadline:
			t.Fatal("no event for feature.ts")
		}
	}
}
