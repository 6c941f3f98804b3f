package main

import (
	"github.com/spf13/cobra"

	"goto-endpoint/internal/logger"
	"goto-endpoint/internal/ui"
	"goto-endpoint/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Index the project, then keep the index current as files change",
	Long:  "Builds the index and watches the project tree. Changed files are re-extracted after a quiet period (watch.debounce); the cache is saved on exit.",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	pipeline := a.newPipeline(ui.PhaseScanning, ui.PhaseIndexing)
	stats, err := a.refresh(ctx, false, pipeline)
	pipeline.Finish()
	if err != nil {
		return err
	}
	logger.Info("%s", formatStats(stats))

	a.manager.OnIndexChanged(func(count int) {
		logger.InfoClean("🔄 Index updated: %d endpoints", count)
	})

	w, err := watcher.New(a.manager, watcher.Options{
		Root:     a.cfg.Project.RootDir,
		Include:  a.cfg.Project.IncludeGlobs,
		Exclude:  a.cfg.Project.ExcludeGlobs,
		Debounce: a.cfg.Watch.Debounce,
	})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	logger.Info("👀 Watching %s (Ctrl+C to stop)", a.cfg.Project.RootDir)

	<-ctx.Done()

	if err := w.Stop(); err != nil {
		logger.Warn("Failed to stop watcher: %v", err)
	}
	a.manager.SaveCache()
	logger.Info("Stopped watching")
	return nil
}
