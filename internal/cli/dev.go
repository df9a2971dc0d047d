package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/toyz/bunner/internal/config"
	"github.com/toyz/bunner/internal/watcher"
)

// Dev builds once, then watches the source directory and rebuilds the whole
// project after every settled burst of changes until ctx is done. Build
// failures are reported and the loop keeps watching.
func (b *Builder) Dev(ctx context.Context, reporter *ErrorReporter) error {
	b.options.Dev = true

	loaded, err := config.Load(b.options.ProjectRoot)
	if err != nil {
		return err
	}
	sourceDir := loaded.SourcePath()

	b.runOnce(ctx, reporter)

	rebuild := make(chan []watcher.FileChangePayload, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounce, func(batch []watcher.FileChangePayload) {
		select {
		case rebuild <- batch:
		default:
			// a rebuild is already queued and will see these files too
		}
	})
	defer debouncer.Stop()

	w := watcher.NewProjectWatcher(sourceDir)
	err = w.Start(func(p watcher.FileChangePayload) {
		if p.EventType == watcher.EventError {
			b.console.Warn("File watcher reported an error")
			return
		}
		debouncer.Add(p)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	b.console.Info("Watching for file changes in %s", sourceDir)

	for {
		select {
		case <-ctx.Done():
			b.console.Info("Stopped watching")
			return nil
		case batch := <-rebuild:
			b.console.Info("%d file(s) changed, rebuilding", len(batch))
			for _, p := range batch {
				b.console.Debug("%s %s", p.EventType, p.Filename)
				if p.EventType == watcher.EventRename {
					b.analyzer.Forget(filepath.Join(sourceDir, filepath.FromSlash(p.Filename)))
				}
			}
			b.runOnce(ctx, reporter)
		}
	}
}

func (b *Builder) runOnce(ctx context.Context, reporter *ErrorReporter) {
	result, err := b.Build(ctx)
	if err != nil {
		reporter.ReportError(err)
		return
	}
	b.console.Success("Built %d modules from %d files in %s (build %s)",
		result.Modules, result.Files, result.Duration.Round(time.Millisecond), result.BuildID)
}
