package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv("BUNNER_OUT_DIR", "")

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCLI_Help(t *testing.T) {
	code, stdout, _ := run(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "build")
	assert.Contains(t, stdout, "dev")
	assert.Contains(t, stdout, "clean")
	assert.Contains(t, stdout, "--project")
}

func TestCLI_UnknownCommand(t *testing.T) {
	code, _, stderr := run(t, "deploy")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown command")
}

func TestCLI_InvalidFormat(t *testing.T) {
	root := writeProject(t, nil)
	code, _, stderr := run(t, "build", "--project", root, "--format", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown diagnostics format")
}

func TestCLI_BuildMissingConfig(t *testing.T) {
	root := writeProject(t, nil)
	code, _, stderr := run(t, "build", "--project", root, "--quiet")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Type: Config Error")
}

func TestCLI_BuildAndClean(t *testing.T) {
	root := writeProject(t, map[string]string{
		"bunner.json": `{"module": {"fileName": "__module__.ts"}, "sourceDir": "src", "entry": "src/main.ts"}`,
		"src/main.ts": `
import { createApplication } from '@bunner/core';
import { appModule } from './__module__';

await createApplication(appModule);
`,
		"src/__module__.ts": `
import { defineModule } from '@bunner/core';

export const appModule = defineModule({ name: 'AppModule' });
`,
	})

	code, _, stderr := run(t, "build", "--project", root, "--quiet")
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(root, ".bunner", "runtime.ts"))
	assert.FileExists(t, filepath.Join(root, ".bunner", "entry.ts"))

	code, _, stderr = run(t, "clean", "--project", root, "--quiet")
	require.Equal(t, 0, code, stderr)
	assert.NoDirExists(t, filepath.Join(root, ".bunner"))
}
