package exporter

import (
	"goto-endpoint/internal/config"
	"goto-endpoint/internal/model"
)

// Exporter is the unified interface for all reporting strategies.
// Export writes one report file and returns its path.
type Exporter interface {
	Name() string
	Export(report *model.Report, cfg *config.Config) (string, error)
}
