package cli

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/toyz/bunner/internal/errors"
	"github.com/toyz/bunner/internal/utils"
	"github.com/toyz/bunner/internal/watcher"
)

// SourceScanner lists the TypeScript sources of a project
type SourceScanner struct{}

// NewSourceScanner creates a new source scanner
func NewSourceScanner() *SourceScanner {
	return &SourceScanner{}
}

// Scan returns every .ts and .tsx file below sourceDir, declaration files
// and ignored directories excluded, as absolute paths sorted by code point.
func (s *SourceScanner) Scan(sourceDir string) ([]string, error) {
	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, errors.WrapScanError(sourceDir, err)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && watcher.IsIgnoredDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSourceFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapScanError(sourceDir, err)
	}

	slices.SortFunc(files, utils.CompareCodePoint)
	return files, nil
}

// IsSourceFile reports whether name is an analyzable TypeScript file
func IsSourceFile(name string) bool {
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}
	return strings.HasSuffix(name, ".ts") || strings.HasSuffix(name, ".tsx")
}
