package cli

import (
	"github.com/toyz/bunner/internal/config"
	"github.com/toyz/bunner/internal/errors"
	"github.com/toyz/bunner/internal/utils"
	"github.com/toyz/bunner/internal/utils/fileops"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileOps *fileops.FileOps
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileOps: fileops.NewFileOps(),
	}
}

// Clean removes the configured output directory of the project in
// projectRoot. It reports the directory and whether anything was removed.
func (c *Cleaner) Clean(projectRoot string) (string, bool, error) {
	loaded, err := config.Load(projectRoot)
	if err != nil {
		return "", false, err
	}

	outDir := loaded.OutputPath()
	if utils.IsWithin(outDir, loaded.Root) || utils.IsWithin(outDir, loaded.SourcePath()) {
		return outDir, false, errors.Newf(errors.FileSystemErrorCode,
			"refusing to remove %s: it contains the project sources", outDir).
			WithSuggestion("Point outDir at a dedicated directory such as " + config.DefaultOutDir)
	}

	removed, err := c.fileOps.RemoveAll(outDir)
	if err != nil {
		return outDir, false, err
	}
	return outDir, removed, nil
}
