package word

import (
	"fmt"
	"os"
	"strings"

	"goto-endpoint/internal/config"
	"goto-endpoint/internal/exporter/common"
	"goto-endpoint/internal/model"

	"github.com/nguyenthenguyen/docx"
)

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Name() string {
	return config.FormatWord
}

func (e *WordExporter) Export(report *model.Report, cfg *config.Config) (string, error) {
	// 1. Materialize the template to a temp file, the docx reader wants a path
	templateBytes, err := buildTemplate()
	if err != nil {
		return "", fmt.Errorf("failed to build template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "goto-endpoint-template-*.docx")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	// 2. Replace Summary Placeholders
	doc.Replace(placeholderDate, report.AnalysisDate, -1)
	doc.Replace(placeholderRoot, report.ProjectRoot, -1)
	doc.Replace(placeholderEndpoints, fmt.Sprintf("%d", len(report.Endpoints)), -1)
	doc.Replace(placeholderControllers, fmt.Sprintf("%d", report.TotalControllers()), -1)

	// 3. Inject content (the library handles XML encoding)
	doc.Replace(placeholderContent, BuildContent(report), -1)

	outFile := cfg.GetOutputPath(".docx")
	if err := doc.WriteToFile(outFile); err != nil {
		return "", fmt.Errorf("failed to write Word document: %w", err)
	}

	return outFile, nil
}

// BuildContent renders the endpoint listing as plain text, one block per controller
func BuildContent(report *model.Report) string {
	var sb strings.Builder

	counts := common.CountByMethod(report.Endpoints)
	sb.WriteString("Endpoints by method:\n")
	for _, m := range common.MethodOrder {
		if counts[m] > 0 {
			sb.WriteString(fmt.Sprintf("  • %-8s %d\n", m, counts[m]))
		}
	}
	sb.WriteString("\n" + strings.Repeat("=", 80) + "\n\n")

	groups := common.GroupByController(report.Endpoints)
	for i, g := range groups {
		sb.WriteString(fmt.Sprintf("%s (%s)\n", g.ClassName, common.RelativePath(report.ProjectRoot, g.FilePath)))
		sb.WriteString(fmt.Sprintf("%-8s %-45s %-25s %s\n", "Method", "URL", "Handler", "Line"))
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, ep := range g.Endpoints {
			sb.WriteString(fmt.Sprintf("%-8s %-45s %-25s %d\n",
				ep.HTTPMethod,
				truncate(ep.FullPath, 45),
				truncate(ep.MethodName, 25),
				ep.StartLine))
		}

		if i < len(groups)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
