package model

import (
	"time"
)

// Report is the snapshot of the index handed to every exporter
type Report struct {
	// Project root the endpoint file paths are reported relative to
	ProjectRoot string

	// Time of the export, "2006-01-02 15:04"
	AnalysisDate string

	Endpoints []Endpoint
}

// NewReport creates a report stamped with the current time
func NewReport(projectRoot string, endpoints []Endpoint) *Report {
	return &Report{
		ProjectRoot:  projectRoot,
		AnalysisDate: time.Now().Format("2006-01-02 15:04"),
		Endpoints:    endpoints,
	}
}

// TotalControllers counts the distinct classes declaring endpoints
func (r *Report) TotalControllers() int {
	seen := make(map[string]bool)
	for _, ep := range r.Endpoints {
		seen[ep.ClassName+"\x00"+ep.FilePath] = true
	}
	return len(seen)
}

// TotalFiles counts the distinct source files declaring endpoints
func (r *Report) TotalFiles() int {
	seen := make(map[string]bool)
	for _, ep := range r.Endpoints {
		seen[ep.FilePath] = true
	}
	return len(seen)
}
