package html

import (
	"fmt"
	"html/template"
	"os"

	"goto-endpoint/internal/config"
	"goto-endpoint/internal/exporter/common"
	"goto-endpoint/internal/model"
)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// Data structures for the endpoint report template
type ReportData struct {
	ProjectRoot      string
	AnalysisDate     string
	TotalEndpoints   int
	TotalControllers int
	MethodCounts     []MethodCount
	Controllers      []ControllerData
}

type MethodCount struct {
	Method string
	Count  int
}

type ControllerData struct {
	ClassName string
	File      string
	Endpoints []model.Endpoint
}

func (e *HTMLExporter) Name() string {
	return config.FormatHTML
}

func (e *HTMLExporter) Export(report *model.Report, cfg *config.Config) (string, error) {
	data := BuildReportData(report)

	tmpl, err := template.New("endpoint-report").Funcs(template.FuncMap{
		"methodColor": getMethodColor,
	}).Parse(EndpointReportTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	outputFile := cfg.GetOutputPath(".html")
	f, err := os.Create(outputFile)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return outputFile, nil
}

// BuildReportData groups the report by controller with stats computed from
// the endpoints actually shown
func BuildReportData(report *model.Report) ReportData {
	data := ReportData{
		ProjectRoot:      report.ProjectRoot,
		AnalysisDate:     report.AnalysisDate,
		TotalEndpoints:   len(report.Endpoints),
		TotalControllers: report.TotalControllers(),
	}

	counts := common.CountByMethod(report.Endpoints)
	for _, m := range common.MethodOrder {
		if counts[m] > 0 {
			data.MethodCounts = append(data.MethodCounts, MethodCount{Method: m, Count: counts[m]})
		}
	}

	for _, g := range common.GroupByController(report.Endpoints) {
		data.Controllers = append(data.Controllers, ControllerData{
			ClassName: g.ClassName,
			File:      common.RelativePath(report.ProjectRoot, g.FilePath),
			Endpoints: g.Endpoints,
		})
	}

	return data
}

// getMethodColor returns CSS color class for HTTP method
func getMethodColor(method string) string {
	switch method {
	case model.MethodGet:
		return "method-get"
	case model.MethodPost:
		return "method-post"
	case model.MethodPut:
		return "method-put"
	case model.MethodDelete:
		return "method-delete"
	case model.MethodPatch:
		return "method-patch"
	default:
		return "method-default"
	}
}
