package main

import (
	"strings"

	"github.com/spf13/cobra"

	"goto-endpoint/internal/exporter"
	"goto-endpoint/internal/logger"
	"goto-endpoint/internal/model"
	"goto-endpoint/internal/ui"
)

var (
	exportFormats string
	exportOutput  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the endpoint index as Excel, Word, HTML or OpenAPI reports",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormats, "format", "f", "", "Comma-separated output formats: excel,word,html,openapi (default output.formats)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Override output directory from config")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if exportFormats != "" {
		a.cfg.Output.Formats = strings.Split(exportFormats, ",")
	}
	if exportOutput != "" {
		a.cfg.Output.Dir = exportOutput
	}

	pipeline := a.newPipeline(ui.PhaseScanning, ui.PhaseIndexing, ui.PhaseExporting)
	stats, err := a.refresh(cmd.Context(), false, pipeline)
	if err != nil {
		pipeline.Finish()
		return err
	}

	report := model.NewReport(a.cfg.Project.RootDir, a.manager.AllEndpoints())

	var progress func(done, total int)
	if bar := pipeline.NextPhase(len(exporter.GetExporters(a.cfg.Output.Formats))); bar != nil {
		progress = bar.Track()
	}
	written, err := exporter.ExportAll(report, a.cfg, progress)
	pipeline.Finish()

	logger.Info("%s", formatStats(stats))
	for _, path := range written {
		logger.Info("📄 %s", path)
	}
	reportParseErrors()
	return err
}
