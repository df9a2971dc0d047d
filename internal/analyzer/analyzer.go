package analyzer

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/bunner/internal/models"
	"github.com/toyz/bunner/internal/parser"
	"github.com/toyz/bunner/internal/utils"
	"github.com/toyz/bunner/internal/utils/fileops"
)

// Result is the analysis of a whole project
type Result struct {
	Files     map[string]*models.FileAnalysis
	CacheHits int
}

// Analyzer reads and parses project files concurrently. Parsed files are
// cached by content hash so rebuilds only re-parse what changed.
type Analyzer struct {
	parser  parser.SourceParser
	fileOps *fileops.FileOps
	cache   *utils.ContentCache[*models.FileAnalysis]
	workers int
}

// NewAnalyzer creates an analyzer with a cache of cacheSize files
func NewAnalyzer(p parser.SourceParser, cacheSize int) (*Analyzer, error) {
	cache, err := utils.NewContentCache[*models.FileAnalysis](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		parser:  p,
		fileOps: fileops.NewFileOps(),
		cache:   cache,
		workers: runtime.GOMAXPROCS(0),
	}, nil
}

// AnalyzeAll analyzes every path. All files are complete before it returns.
func (a *Analyzer) AnalyzeAll(ctx context.Context, paths []string) (*Result, error) {
	results := make([]*models.FileAnalysis, len(paths))
	var hits atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			content, err := a.fileOps.ReadFile(path)
			if err != nil {
				return err
			}

			if cached, ok := a.cache.Get(path, content); ok {
				results[i] = cached
				hits.Add(1)
				return nil
			}

			analysis, err := a.parser.Parse(gctx, path, content)
			if err != nil {
				return err
			}
			a.cache.Set(path, content, analysis)
			results[i] = analysis
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make(map[string]*models.FileAnalysis, len(paths))
	for i, path := range paths {
		files[path] = results[i]
	}
	return &Result{Files: files, CacheHits: int(hits.Load())}, nil
}

// Forget drops a file from the cache, e.g. after it was deleted
func (a *Analyzer) Forget(path string) {
	a.cache.Remove(path)
}
