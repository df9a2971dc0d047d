package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_Clean(t *testing.T) {
	root := newTestProject(t, nil)
	b := newTestBuilder(t, root, &bytes.Buffer{})
	result, err := b.Build(context.Background())
	require.NoError(t, err)

	outDir := filepath.Join(result.Config.Root, ".bunner")
	require.DirExists(t, outDir)

	cleaner := NewCleaner()
	dir, removed, err := cleaner.Clean(root)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, outDir, dir)
	assert.NoDirExists(t, outDir)

	_, removed, err = cleaner.Clean(root)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCleaner_RefusesProjectDirectories(t *testing.T) {
	for _, outDir := range []string{".", "src"} {
		t.Run(outDir, func(t *testing.T) {
			root := writeProjectFiles(t, map[string]string{
				"bunner.json": `{"module": {"fileName": "__module__.ts"}, "sourceDir": "src", "entry": "src/main.ts", "outDir": "` + outDir + `"}`,
				"src/main.ts": "",
			})

			_, removed, err := NewCleaner().Clean(root)
			require.Error(t, err)
			assert.False(t, removed)
			assert.FileExists(t, filepath.Join(root, "src", "main.ts"))

			_, statErr := os.Stat(root)
			assert.NoError(t, statErr)
		})
	}
}
