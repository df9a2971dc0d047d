package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/bunner/internal/analyzer"
	"github.com/toyz/bunner/internal/config"
	"github.com/toyz/bunner/internal/diagnostics"
	"github.com/toyz/bunner/internal/errors"
	"github.com/toyz/bunner/internal/generator"
	"github.com/toyz/bunner/internal/graph"
	"github.com/toyz/bunner/internal/models"
	"github.com/toyz/bunner/internal/parser"
	"github.com/toyz/bunner/internal/utils"
	"github.com/toyz/bunner/internal/utils/fileops"
)

// Generated file names inside the output directory
const (
	RuntimeFileName = "runtime.ts"
	EntryFileName   = "entry.ts"
)

// CodeMissingCreateApplication is reported when the configured entry file
// never calls createApplication
const CodeMissingCreateApplication = "MISSING_CREATE_APPLICATION"

// BuildResult summarizes one pipeline run
type BuildResult struct {
	BuildID     string
	Config      *config.LoadResult
	Files       int
	Modules     int
	CacheHits   int
	Diagnostics []diagnostics.Diagnostic
	Written     []string
	Duration    time.Duration
}

// Builder runs the build pipeline: config, scan, analyze, graph, report,
// generate and write. A builder is reused across dev rebuilds so the
// analysis cache carries over.
type Builder struct {
	options  Options
	console  *utils.Console
	scanner  *SourceScanner
	analyzer *analyzer.Analyzer
	injector generator.CodeGenerator
	fileOps  *fileops.FileOps
	reporter *diagnostics.Reporter
}

// NewBuilder creates a builder. Diagnostics are written to diagOut, stderr when nil.
func NewBuilder(options Options, console *utils.Console, diagOut io.Writer) (*Builder, error) {
	if options.CacheSize <= 0 {
		options.CacheSize = DefaultCacheSize
	}
	if options.Format == "" {
		options.Format = diagnostics.FormatJSON
	}
	if console == nil {
		console = utils.NewConsole(utils.LogSilent)
	}

	a, err := analyzer.NewAnalyzer(parser.NewParser(), options.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Builder{
		options:  options,
		console:  console,
		scanner:  NewSourceScanner(),
		analyzer: a,
		injector: generator.NewInjectorGenerator(),
		fileOps:  fileops.NewFileOps(),
		reporter: diagnostics.NewReporter(diagOut, options.Format),
	}, nil
}

// Build runs the pipeline once. A *diagnostics.ReportError is returned when
// the reported batch contains an error or fatal diagnostic; nothing is
// written in that case.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	start := time.Now()
	result := &BuildResult{}
	if b.options.Dev {
		result.BuildID = uuid.NewString()
		b.console.Verbose("Build %s started", result.BuildID)
	}

	loaded, err := config.Load(b.options.ProjectRoot)
	if err != nil {
		return nil, err
	}
	result.Config = loaded
	b.console.Verbose("Loaded %s config from %s", loaded.Source.Format, loaded.Source.Path)

	files, err := b.scanner.Scan(loaded.SourcePath())
	if err != nil {
		return nil, err
	}
	result.Files = len(files)
	b.console.Debug("Scanned %d source files in %s", len(files), loaded.SourcePath())

	b.console.Progress("Analyzing %d source files", len(files))
	analysis, err := b.analyzer.AnalyzeAll(ctx, files)
	if err != nil {
		return nil, err
	}
	result.CacheHits = analysis.CacheHits
	b.console.Debug("Analyzed %d files (%d from cache)", len(files), analysis.CacheHits)

	g := graph.NewModuleGraph(analysis.Files, loaded.Config.Module.FileName)
	g.Build()
	result.Modules = len(g.Modules())

	diags := g.Validate()
	if d, ok := checkEntry(analysis.Files, loaded.EntryPath()); ok {
		diags = append(diags, d)
	}
	diags = diagnostics.Sort(diags)
	result.Diagnostics = diags

	if len(diags) > 0 {
		if err := b.reporter.Report(diags); err != nil {
			return result, err
		}
	}
	if failed, ok := diagnostics.FirstAtLeast(diags, diagnostics.SeverityError); ok {
		return result, diagnostics.NewReportError(failed)
	}

	written, err := b.generate(g, loaded)
	if err != nil {
		return result, err
	}
	result.Written = written
	result.Duration = time.Since(start)
	return result, nil
}

func (b *Builder) generate(g *graph.ModuleGraph, loaded *config.LoadResult) ([]string, error) {
	outDir := loaded.OutputPath()
	registry := generator.NewImportRegistry(outDir)

	runtime, err := b.injector.Generate(g, registry)
	if err != nil {
		return nil, err
	}

	entryPath := filepath.Join(outDir, EntryFileName)
	entryImport := utils.GetRelativeImportPath(entryPath, loaded.EntryPath())
	entry, err := generator.NewEntryGenerator().Generate(entryImport, b.options.Dev)
	if err != nil {
		return nil, err
	}

	var written []string
	failures := errors.NewMultipleErrors()
	outputs := []struct {
		path    string
		content string
	}{
		{filepath.Join(outDir, RuntimeFileName), runtime},
		{entryPath, entry},
	}
	for _, out := range outputs {
		changed, err := b.fileOps.WriteIfChanged(out.path, []byte(out.content))
		if err != nil {
			failures.Add(errors.WrapGenerateError(filepath.Base(out.path), "write", err))
			continue
		}
		if changed {
			written = append(written, out.path)
			b.console.Verbose("Wrote %s", out.path)
		} else {
			b.console.Debug("Unchanged %s", out.path)
		}
	}
	return written, failures.ErrOrNil()
}

// checkEntry reports an entry file without a createApplication call from
// the core package
func checkEntry(files map[string]*models.FileAnalysis, entryPath string) (diagnostics.Diagnostic, bool) {
	if fa, ok := files[entryPath]; ok {
		for _, call := range fa.CreateApplicationCalls {
			if call.ImportSource == parser.CorePackage {
				return diagnostics.Diagnostic{}, false
			}
		}
	}

	return diagnostics.Build(diagnostics.Params{
		Code:     CodeMissingCreateApplication,
		Severity: diagnostics.SeverityError,
		Summary:  "Entry file does not call createApplication",
		Reason:   fmt.Sprintf("%s must call createApplication imported from %s", entryPath, parser.CorePackage),
		File:     entryPath,
	}), true
}
