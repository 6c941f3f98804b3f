package html

import (
	"os"
	"strings"
	"testing"

	"goto-endpoint/internal/config"
	"goto-endpoint/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		ProjectRoot:  "/work/shop",
		AnalysisDate: "2026-10-18 09:30",
		Endpoints: []model.Endpoint{
			{FullPath: "/api/users/{id}", OriginalClassPath: "/api/users", OriginalMethodPath: "/{id}", HTTPMethod: model.MethodGet, ClassName: "UserController", MethodName: "getUser", FilePath: "/work/shop/src/UserController.java", StartLine: 14, StartColumn: 5},
			{FullPath: "/api/users", OriginalClassPath: "/api/users", HTTPMethod: model.MethodDelete, ClassName: "UserController", MethodName: "purge<all>", FilePath: "/work/shop/src/UserController.java", StartLine: 20, StartColumn: 5},
		},
	}
}

func TestHTMLExport(t *testing.T) {
	cfg := &config.Config{Output: config.OutputConfig{Dir: t.TempDir(), FileName: "report"}}

	path, err := NewHTMLExporter().Export(sampleReport(), cfg)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if path != cfg.GetOutputPath(".html") {
		t.Errorf("Export() path = %s, expected %s", path, cfg.GetOutputPath(".html"))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	page := string(content)

	for _, want := range []string{
		"UserController",
		"/api/users/{id}",
		`class="method-badge method-delete"`,
		"src/UserController.java",
		"14:5",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("Report missing %q", want)
		}
	}

	// handler names are escaped
	if strings.Contains(page, "purge<all>") || !strings.Contains(page, "purge&lt;all&gt;") {
		t.Error("Handler name was not HTML-escaped")
	}
}

func TestHTMLExportEmpty(t *testing.T) {
	cfg := &config.Config{Output: config.OutputConfig{Dir: t.TempDir(), FileName: "report"}}

	path, err := NewHTMLExporter().Export(&model.Report{}, cfg)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), "No endpoints found") {
		t.Error("Empty report should say no endpoints were found")
	}
}

func TestBuildReportData(t *testing.T) {
	data := BuildReportData(sampleReport())

	if data.TotalEndpoints != 2 || data.TotalControllers != 1 {
		t.Errorf("Unexpected totals: %d endpoints, %d controllers", data.TotalEndpoints, data.TotalControllers)
	}
	if len(data.MethodCounts) != 2 || data.MethodCounts[0].Method != model.MethodGet || data.MethodCounts[1].Method != model.MethodDelete {
		t.Errorf("Unexpected method counts: %v", data.MethodCounts)
	}
	if len(data.Controllers) != 1 || data.Controllers[0].File != "src/UserController.java" {
		t.Errorf("Unexpected controllers: %+v", data.Controllers)
	}
}

func TestGetMethodColor(t *testing.T) {
	tests := map[string]string{
		model.MethodGet:    "method-get",
		model.MethodPatch:  "method-patch",
		model.MethodAny:    "method-default",
		model.MethodHead:   "method-default",
		model.MethodDelete: "method-delete",
	}
	for method, expected := range tests {
		if got := getMethodColor(method); got != expected {
			t.Errorf("getMethodColor(%s) = %s, expected %s", method, got, expected)
		}
	}
}
