package cli

import (
	"github.com/toyz/bunner/internal/diagnostics"
)

// DefaultCacheSize is the number of file analyses kept between rebuilds
const DefaultCacheSize = 4096

// Options holds the configuration for one builder
type Options struct {
	// ProjectRoot is the directory holding bunner.json or bunner.jsonc
	ProjectRoot string

	// Format selects the diagnostics encoding
	Format diagnostics.Format

	// Dev marks builds made by the watch loop. The generated entry sets
	// BUNNER_DEV and every build gets a build ID in the log.
	Dev bool

	// CacheSize bounds the analysis cache, DefaultCacheSize when zero
	CacheSize int
}
