package exporter

import (
	"fmt"
	"sort"

	"goto-endpoint/internal/config"
	"goto-endpoint/internal/exporter/common"
	"goto-endpoint/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	overviewSheet = "Overview"
	detailSheet   = "Endpoints"

	// controllers above this many endpoints get a note in the overview
	complexControllerThreshold = 20
)

// ExcelExporter handles the Excel generation
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Name returns the format name
func (e *ExcelExporter) Name() string {
	return config.FormatExcel
}

// Export generates the Excel report
func (e *ExcelExporter) Export(report *model.Report, cfg *config.Config) (string, error) {
	outputFile := cfg.GetOutputPath(".xlsx")
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return "", err
	}

	groups := common.GroupByController(report.Endpoints)

	// 1. Create Overview Sheet
	if err := e.writeOverview(f, styler, report, groups); err != nil {
		return "", err
	}

	// 2. Create Endpoint Detail Sheet
	if err := e.writeDetail(f, styler, report, groups); err != nil {
		return "", err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}
	if idx, err := f.GetSheetIndex(overviewSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(outputFile); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	return outputFile, nil
}

// --- Overview Sheet Logic ---

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, report *model.Report, groups []common.ControllerGroup) error {
	sheet := overviewSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// Section A: System Summary
	row := 1
	e.writeRow(f, sheet, row, []string{"Metric", "Count"}, s.HeaderStyle)
	row++

	metrics := []struct {
		Key string
		Val interface{}
	}{
		{"Analysis Date", report.AnalysisDate},
		{"Total Endpoints", len(report.Endpoints)},
		{"Total Controllers", report.TotalControllers()},
		{"Source Files", report.TotalFiles()},
	}

	counts := common.CountByMethod(report.Endpoints)
	for _, method := range common.MethodOrder {
		if counts[method] > 0 {
			metrics = append(metrics, struct {
				Key string
				Val interface{}
			}{method, counts[method]})
		}
	}

	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		row++
	}

	row += 2 // Spacer

	// Section B: Controller Complexity
	headersB := []string{"No", "Controller Name", "File", "Endpoints", "GET", "POST", "PUT", "DELETE", "Other", "Note"}
	e.writeRow(f, sheet, row, headersB, s.HeaderStyle)
	row++

	// Sort controllers by size, largest first
	ranked := make([]common.ControllerGroup, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(ranked[i].Endpoints) > len(ranked[j].Endpoints)
	})

	for i, g := range ranked {
		total := len(g.Endpoints)
		get := g.Count(model.MethodGet)
		post := g.Count(model.MethodPost)
		put := g.Count(model.MethodPut)
		del := g.Count(model.MethodDelete)

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), g.ClassName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), common.RelativePath(report.ProjectRoot, g.FilePath))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), total)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), get)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), post)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), put)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), del)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), total-get-post-put-del)

		if total > complexControllerThreshold {
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), "Complex")
		}
		row++
	}

	// Adjust column widths
	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "C", 60)

	return nil
}

// --- Endpoint Detail Sheet Logic ---

func (e *ExcelExporter) writeDetail(f *excelize.File, s *Styler, report *model.Report, groups []common.ControllerGroup) error {
	sheet := detailSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Method", "URL", "Controller", "Handler", "Class Path", "Method Path", "File", "Line"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	row := 2
	for _, g := range groups {
		e.writeControllerRow(f, sheet, row, g, report.ProjectRoot, s)
		row++

		for _, ep := range g.Endpoints {
			e.writeEndpointRow(f, sheet, row, ep, report.ProjectRoot, s)
			row++
		}
	}

	f.SetColWidth(sheet, "A", "A", 12) // Method
	f.SetColWidth(sheet, "B", "B", 45) // URL
	f.SetColWidth(sheet, "C", "D", 30) // Controller/Handler
	f.SetColWidth(sheet, "E", "F", 25) // Class/Method path
	f.SetColWidth(sheet, "G", "G", 60) // File
	f.SetColWidth(sheet, "H", "H", 8)  // Line

	return nil
}

func (e *ExcelExporter) writeControllerRow(f *excelize.File, sheet string, row int, g common.ControllerGroup, root string, s *Styler) {
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "[Controller]")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), g.ClassName)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%d endpoints", len(g.Endpoints)))
	f.SetCellValue(sheet, fmt.Sprintf("G%d", row), common.RelativePath(root, g.FilePath))

	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), s.ControllerStyle)
}

func (e *ExcelExporter) writeEndpointRow(f *excelize.File, sheet string, row int, ep model.Endpoint, root string, s *Styler) {
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), ep.HTTPMethod)
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ep.FullPath)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), ep.ClassName)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), ep.MethodName)
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), ep.OriginalClassPath)
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), ep.OriginalMethodPath)
	f.SetCellValue(sheet, fmt.Sprintf("G%d", row), common.RelativePath(root, ep.FilePath))
	f.SetCellValue(sheet, fmt.Sprintf("H%d", row), ep.StartLine)

	f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("H%d", row), s.DefaultStyle)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), s.MethodStyle(ep.HTTPMethod))
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}
