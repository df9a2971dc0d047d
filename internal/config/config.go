package config

import (
	"path/filepath"
)

const (
	// JSONFileName and JSONCFileName are the accepted config file names.
	// Exactly one of them must exist in the project root.
	JSONFileName  = "bunner.json"
	JSONCFileName = "bunner.jsonc"

	// DefaultOutDir is used when outDir is not configured
	DefaultOutDir = ".bunner"

	// OutDirEnv overrides outDir, from the process environment or the project .env file
	OutDirEnv = "BUNNER_OUT_DIR"
)

// Format is the syntax of the loaded config file
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
)

// ModuleConfig configures module discovery
type ModuleConfig struct {
	// FileName is the marker file that declares a module directory
	FileName string `json:"fileName"`
}

// Config is the project configuration
type Config struct {
	Module    ModuleConfig `json:"module"`
	SourceDir string       `json:"sourceDir"`
	Entry     string       `json:"entry"`
	OutDir    string       `json:"outDir,omitempty"`
}

// Source describes where a config was read from
type Source struct {
	Path   string
	Format Format
}

// LoadResult is a validated config and its origin
type LoadResult struct {
	Config Config
	Source Source
	Root   string // absolute project root
}

// SourcePath returns the absolute source directory
func (r *LoadResult) SourcePath() string {
	return filepath.Join(r.Root, r.Config.SourceDir)
}

// EntryPath returns the absolute path of the application entry file
func (r *LoadResult) EntryPath() string {
	return filepath.Join(r.Root, r.Config.Entry)
}

// OutputPath returns the absolute output directory
func (r *LoadResult) OutputPath() string {
	if filepath.IsAbs(r.Config.OutDir) {
		return filepath.Clean(r.Config.OutDir)
	}
	return filepath.Join(r.Root, r.Config.OutDir)
}
