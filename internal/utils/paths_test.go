package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRelativeImportPath(t *testing.T) {
	tests := []struct {
		name      string
		generated string
		source    string
		expected  string
	}{
		{"sibling directory", "/app/.bunner/dummy.ts", "/app/src/app.service.ts", "../src/app.service"},
		{"same directory", "/app/src/dummy.ts", "/app/src/app.service.ts", "./app.service"},
		{"nested directory", "/app/src/dummy.ts", "/app/src/users/users.module.tsx", "./users/users.module"},
		{"javascript file", "/app/out/dummy.ts", "/app/out/lib.js", "./lib"},
		{"no extension", "/app/src/dummy.ts", "/app/src/lib/index", "./lib/index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetRelativeImportPath(tt.generated, tt.source))
		})
	}
}

func TestSpecifierKinds(t *testing.T) {
	assert.True(t, IsAbsoluteSpecifier("/app/src/a.ts"))
	assert.True(t, IsAbsoluteSpecifier(`C:\app\a.ts`))
	assert.False(t, IsAbsoluteSpecifier("@bunner/core"))
	assert.False(t, IsAbsoluteSpecifier("./a"))

	assert.True(t, IsRelativeSpecifier("./a"))
	assert.True(t, IsRelativeSpecifier("../a"))
	assert.False(t, IsRelativeSpecifier("@bunner/common"))
	assert.False(t, IsRelativeSpecifier(".bunner"))
}

func TestIsWithin(t *testing.T) {
	assert.True(t, IsWithin("/app/src", "/app/src/main.ts"))
	assert.True(t, IsWithin("/app/src", "/app/src"))
	assert.False(t, IsWithin("/app/src", "/app/main.ts"))
	assert.False(t, IsWithin("/app/src", "/app/srcx/main.ts"))
	assert.True(t, IsWithin("/app/src", "/app/src/..foo/x.ts"))
}

func TestCompareCodePoint(t *testing.T) {
	assert.Equal(t, 0, CompareCodePoint("abc", "abc"))
	assert.Equal(t, -1, CompareCodePoint("B", "a"))
	assert.Equal(t, 1, CompareCodePoint("b", "B"))
	assert.Equal(t, -1, CompareCodePoint("ab", "abc"))
	assert.Equal(t, 1, CompareCodePoint("é", "z"))
	assert.Equal(t, -1, CompareCodePoint("", "a"))
}
