package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"goto-endpoint/internal/analyzer"
	"goto-endpoint/internal/config"
	"goto-endpoint/internal/index"
	"goto-endpoint/internal/logger"
	"goto-endpoint/internal/storage"
	"goto-endpoint/internal/ui"
)

// app is the wiring shared by every command
type app struct {
	cfg     *config.Config
	store   storage.CacheStore
	manager *index.Manager
}

// openApp loads the configuration, starts the logger and restores the
// persisted cache. Callers must close the app.
func openApp() (*app, error) {
	cfg, err := config.Load(configPath, rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// stdout stays reserved for command output
	if err := logger.Init(os.Stderr, cfg.LogFilePath(), verbose); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := storage.New(cfg.Index.CacheBackend, cfg.Index.CacheDir)
	if err != nil {
		logger.Close()
		return nil, err
	}

	opts := index.Options{
		ConcurrencyLimit: cfg.Index.ConcurrencyLimit,
		EnableCache:      cfg.Index.EnableCache,
		Encoding:         cfg.Project.Encoding,
		SearchLimit:      cfg.Search.Limit,
	}
	if cfg.Index.EnableCache {
		opts.CacheStore = store
	}

	a := &app{
		cfg:     cfg,
		store:   store,
		manager: index.NewManager(analyzer.NewExtractor(), opts),
	}

	if cfg.Index.EnableCache {
		if n := a.manager.LoadCache(); n > 0 {
			logger.Debug("Restored %d cached files from %s", n, store.Path())
		}
	}

	return a, nil
}

func (a *app) Close() {
	logger.Close()
}

func (a *app) newPipeline(phases ...ui.Phase) *ui.Pipeline {
	p := ui.NewPipeline(phases)
	if quiet {
		p.Disable()
	}
	return p
}

// scan lists the files of the project
func (a *app) scan() ([]string, error) {
	return analyzer.ScanDirectory(a.cfg.Project.RootDir, a.cfg.Project.IncludeGlobs, a.cfg.Project.ExcludeGlobs)
}

// refresh brings the index up to date with the project, reusing every cached
// file whose mtime has not moved
func (a *app) refresh(ctx context.Context, rebuild bool, pipeline *ui.Pipeline) (index.BuildStats, error) {
	scanBar := pipeline.NextPhase(-1)
	files, err := a.scan()
	if err != nil {
		return index.BuildStats{}, err
	}
	scanBar.Describe(fmt.Sprintf("%d files", len(files)))
	logger.Debug("Found %d candidate files under %s", len(files), a.cfg.Project.RootDir)

	bar := pipeline.NextPhase(len(files))
	if bar != nil {
		a.manager.OnProgress(bar.Track())
		defer a.manager.OnProgress(nil)
	}

	var stats index.BuildStats
	if rebuild {
		stats, err = a.manager.ClearCacheAndRebuild(ctx, files)
	} else {
		stats, err = a.manager.Build(ctx, files)
	}
	if err != nil {
		return stats, err
	}

	if stats.Cancelled {
		logger.Warn("Indexing cancelled after %d of %d files", stats.Parsed+stats.Cached+stats.Skipped+stats.Failed, stats.Files)
	}
	return stats, nil
}

func formatStats(stats index.BuildStats) string {
	return fmt.Sprintf("✅ %d endpoints in %d files (parsed %d, cached %d, skipped %d, failed %d) in %s",
		stats.Endpoints, stats.Files, stats.Parsed, stats.Cached, stats.Skipped, stats.Failed,
		stats.Duration.Round(time.Millisecond))
}

// reportParseErrors points at the log file when some files did not parse cleanly
func reportParseErrors() {
	if n := logger.ParseErrorCount(); n > 0 {
		logger.Info("⚠️  %d parse errors, see %s", n, logger.GetLogFilePath())
	}
}
