package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var scriptExtension = regexp.MustCompile(`\.(ts|js|tsx|jsx)$`)

// GetRelativeImportPath returns the module specifier a file at generatedFile
// uses to import sourceFile: relative, "./"-prefixed, without a script extension.
func GetRelativeImportPath(generatedFile, sourceFile string) string {
	fromDir := filepath.Dir(generatedFile)
	rel, err := filepath.Rel(fromDir, sourceFile)
	if err != nil {
		rel = sourceFile
	}
	rel = NormalizePath(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return scriptExtension.ReplaceAllString(rel, "")
}

// NormalizePath converts OS separators to forward slashes
func NormalizePath(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), `\`, "/")
}

// IsAbsoluteSpecifier reports whether an import source is a file system path
// rather than a package name.
func IsAbsoluteSpecifier(path string) bool {
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\`) {
		return true
	}
	return len(path) >= 2 && path[1] == ':' &&
		((path[0] >= 'a' && path[0] <= 'z') || (path[0] >= 'A' && path[0] <= 'Z'))
}

// IsRelativeSpecifier reports whether an import source starts with ./ or ../
func IsRelativeSpecifier(path string) bool {
	return path == "." || path == ".." || strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../")
}

// IsWithin reports whether path is dir or nested below it
func IsWithin(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
