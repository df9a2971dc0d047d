package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/bunner/internal/models"
	"github.com/toyz/bunner/internal/parser"
)

type countingParser struct {
	inner *parser.Parser
	calls atomic.Int32
}

func (c *countingParser) Parse(ctx context.Context, filePath string, source []byte) (*models.FileAnalysis, error) {
	c.calls.Add(1)
	return c.inner.Parse(ctx, filePath, source)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAnalyzer_AnalyzeAll(t *testing.T) {
	dir := t.TempDir()
	moduleFile := filepath.Join(dir, "src", "__module__.ts")
	serviceFile := filepath.Join(dir, "src", "app.service.ts")

	writeFile(t, moduleFile, "import { defineModule } from '@bunner/core';\nexport const appModule = defineModule({ name: 'AppModule' });\n")
	writeFile(t, serviceFile, "import { Injectable } from '@bunner/common';\n@Injectable()\nexport class AppService {}\n")

	p := &countingParser{inner: parser.NewParser()}
	a, err := NewAnalyzer(p, 16)
	require.NoError(t, err)

	result, err := a.AnalyzeAll(context.Background(), []string{moduleFile, serviceFile})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)
	assert.Equal(t, 0, result.CacheHits)

	require.NotNil(t, result.Files[moduleFile].ModuleDefinition)
	assert.Equal(t, "AppModule", result.Files[moduleFile].ModuleDefinition.Name)
	require.Len(t, result.Files[serviceFile].Classes, 1)

	t.Run("unchanged files come from cache", func(t *testing.T) {
		again, err := a.AnalyzeAll(context.Background(), []string{moduleFile, serviceFile})
		require.NoError(t, err)
		assert.Equal(t, 2, again.CacheHits)
		assert.Equal(t, int32(2), p.calls.Load())
	})

	t.Run("changed file is parsed again", func(t *testing.T) {
		writeFile(t, serviceFile, "export class Changed {}\n")

		again, err := a.AnalyzeAll(context.Background(), []string{moduleFile, serviceFile})
		require.NoError(t, err)
		assert.Equal(t, 1, again.CacheHits)
		assert.Equal(t, "Changed", again.Files[serviceFile].Classes[0].ClassName)
	})
}

func TestAnalyzer_MissingFile(t *testing.T) {
	a, err := NewAnalyzer(parser.NewParser(), 0)
	require.NoError(t, err)

	_, err = a.AnalyzeAll(context.Background(), []string{filepath.Join(t.TempDir(), "missing.ts")})
	assert.Error(t, err)
}
