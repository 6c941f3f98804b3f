package main

import (
	"github.com/spf13/cobra"

	"goto-endpoint/internal/logger"
	"goto-endpoint/internal/ui"
)

var buildRebuild bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Index the project, reusing cached results for unchanged files",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildRebuild, "rebuild", false, "Discard the cache and parse every file again")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pipeline := a.newPipeline(ui.PhaseScanning, ui.PhaseIndexing)
	stats, err := a.refresh(cmd.Context(), buildRebuild, pipeline)
	pipeline.Finish()
	if err != nil {
		return err
	}

	logger.Info("%s", formatStats(stats))
	reportParseErrors()
	return nil
}
