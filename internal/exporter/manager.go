package exporter

import (
	"fmt"
	"strings"

	"goto-endpoint/internal/config"
	"goto-endpoint/internal/exporter/html"
	"goto-endpoint/internal/exporter/openapi"
	"goto-endpoint/internal/exporter/word"
	"goto-endpoint/internal/logger"
	"goto-endpoint/internal/model"
)

// GetExporters returns a list of Exporters based on requested formats.
// Aliases collapse onto one exporter and unknown names are ignored.
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		name := canonicalFormat(fmtStr)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case config.FormatExcel:
			exporters = append(exporters, NewExcelExporter())
		case config.FormatHTML:
			exporters = append(exporters, html.NewHTMLExporter())
		case config.FormatWord:
			exporters = append(exporters, word.NewWordExporter())
		case config.FormatOpenAPI:
			exporters = append(exporters, openapi.NewOpenAPIExporter())
		}
	}

	return exporters
}

func canonicalFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "excel", "xlsx":
		return config.FormatExcel
	case "html":
		return config.FormatHTML
	case "word", "docx":
		return config.FormatWord
	case "openapi", "swagger", "json":
		return config.FormatOpenAPI
	default:
		return ""
	}
}

// ExportAll runs every configured exporter and returns the written files.
// A failing exporter is logged and the rest still run; the first error is returned.
func ExportAll(report *model.Report, cfg *config.Config, progress func(done, total int)) ([]string, error) {
	exporters := GetExporters(cfg.Output.Formats)
	if len(exporters) == 0 {
		return nil, fmt.Errorf("no valid output format in %v", cfg.Output.Formats)
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	var written []string
	var firstErr error
	for i, e := range exporters {
		path, err := e.Export(report, cfg)
		if err != nil {
			logger.Error("%s export failed: %v", e.Name(), err)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s export: %w", e.Name(), err)
			}
		} else {
			logger.Debug("%s report written to %s", e.Name(), path)
			written = append(written, path)
		}
		if progress != nil {
			progress(i+1, len(exporters))
		}
	}

	return written, firstErr
}
