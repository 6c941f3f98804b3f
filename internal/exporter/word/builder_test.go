package word

import (
	"archive/zip"
	"bytes"
	"io"
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
			{FullPath: "/api/users/{id}", HTTPMethod: model.MethodGet, ClassName: "UserController", MethodName: "getUser", FilePath: "/work/shop/src/UserController.java", StartLine: 14},
			{FullPath: "/payments", HTTPMethod: model.MethodPost, ClassName: "PaymentClient", MethodName: "pay", FilePath: "/work/shop/src/PaymentClient.java", StartLine: 8},
		},
	}
}

func readDocumentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Not a zip package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open document.xml: %v", err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("Failed to read document.xml: %v", err)
		}
		return string(content)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func TestBuildTemplate(t *testing.T) {
	data, err := buildTemplate()
	if err != nil {
		t.Fatalf("buildTemplate failed: %v", err)
	}

	doc := readDocumentXML(t, data)
	for _, p := range []string{placeholderDate, placeholderRoot, placeholderEndpoints, placeholderControllers, placeholderContent} {
		if !strings.Contains(doc, p) {
			t.Errorf("Template missing placeholder %s", p)
		}
	}
}

func TestWordExport(t *testing.T) {
	cfg := &config.Config{Output: config.OutputConfig{Dir: t.TempDir(), FileName: "report"}}

	path, err := NewWordExporter().Export(sampleReport(), cfg)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if path != cfg.GetOutputPath(".docx") {
		t.Errorf("Export() path = %s, expected %s", path, cfg.GetOutputPath(".docx"))
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Output is not a docx package: %v", err)
	}
	defer zr.Close()

	var doc string
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, _ := f.Open()
			content, _ := io.ReadAll(rc)
			rc.Close()
			doc = string(content)
		}
	}

	if strings.Contains(doc, "{{") {
		t.Error("Unreplaced placeholder left in the document")
	}
	for _, want := range []string{"/work/shop", "2026-10-18 09:30", "UserController", "PaymentClient", "/api/users/{id}"} {
		if !strings.Contains(doc, want) {
			t.Errorf("Document missing %q", want)
		}
	}
}

func TestBuildContent(t *testing.T) {
	content := BuildContent(sampleReport())

	// PaymentClient groups before UserController
	pc := strings.Index(content, "PaymentClient (src/PaymentClient.java)")
	uc := strings.Index(content, "UserController (src/UserController.java)")
	if pc < 0 || uc < 0 || pc > uc {
		t.Errorf("Unexpected controller blocks:\n%s", content)
	}
	if !strings.Contains(content, "GET") || !strings.Contains(content, "POST") {
		t.Error("Method summary missing")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate kept = %q", got)
	}
	if got := truncate("/api/v1/a/very/long/path", 10); got != "/api/v1..." {
		t.Errorf("truncate cut = %q", got)
	}
}
