package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const sampleDir = "../../testdata/spring_sample"

var defaultExcludes = []string{"**/test/**", "**/target/**", "**/build/**"}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern  string
		name     string
		expected bool
	}{
		{"**/*.java", "A.java", true},
		{"**/*.java", "src/main/java/A.java", true},
		{"**/*.java", "src/main/java/A.kt", false},
		{"src/**/*.java", "src/A.java", true},
		{"src/**/*.java", "lib/A.java", false},
		{"**/test/**", "src/test/java/ATest.java", true},
		{"**/test/**", "src/test", true},
		{"**/test/**", "src/testing/A.java", false},
		{"**/target/**", "target", true},
		{"src/**", "src", true},
		{"src/**", "lib/src", false},
		{"**/*.{java,kt}", "web/A.kt", true},
		{"**/{build,out}/**", "x/out/y/Z.java", true},
		{"**/{build,out}/**", "x/bin/y/Z.java", false},
		{"*.java", "A.java", true},
		{"*.java", "pkg/A.java", false},
		{"**/*Controller.java", "web/UserController.java", true},
		{"./src/*.java", "src/A.java", true},
		{"", "A.java", false},
		{"[", "A.java", false},
	}

	for _, tt := range tests {
		if got := MatchGlob(tt.pattern, tt.name); got != tt.expected {
			t.Errorf("MatchGlob(%q, %q) = %v, expected %v", tt.pattern, tt.name, got, tt.expected)
		}
	}
}

func TestScanDirectory(t *testing.T) {
	files, err := ScanDirectory(sampleDir, []string{"**/*.java"}, defaultExcludes)
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}

	var names []string
	for _, f := range files {
		if !filepath.IsAbs(f) {
			t.Errorf("Expected absolute path, got %s", f)
		}
		names = append(names, filepath.Base(f))
	}
	sort.Strings(names)

	expected := []string{"OrderController.java", "PaymentClient.java", "Siblings.java", "UserController.java", "UserService.java"}
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("Scanned files = %v, expected %v", names, expected)
	}
}

func TestScanDirectoryDefaultsToJava(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "A.java"), "class A {}")
	mustWrite(t, filepath.Join(root, "notes.txt"), "x")
	mustWrite(t, filepath.Join(root, ".git", "B.java"), "class B {}")

	files, err := ScanDirectory(root, nil, nil)
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "A.java" {
		t.Errorf("Expected only A.java, got %v", files)
	}
}

func TestScanDirectoryMissingRoot(t *testing.T) {
	if _, err := ScanDirectory(filepath.Join(t.TempDir(), "missing"), nil, nil); err == nil {
		t.Error("Expected an error for a missing root")
	}
}

func TestShouldIndex(t *testing.T) {
	root := "/work/project"
	include := []string{"**/*.java"}

	tests := []struct {
		file     string
		expected bool
	}{
		{"/work/project/src/main/java/A.java", true},
		{"/work/project/src/main/java/A.kt", false},
		{"/work/project/src/test/java/ATest.java", false},
		{"/work/project/target/gen/G.java", false},
		{"/work/project/.git/hooks/H.java", false},
		{"/elsewhere/A.java", false},
	}
	for _, tt := range tests {
		file := filepath.FromSlash(tt.file)
		if got := ShouldIndex(filepath.FromSlash(root), file, include, defaultExcludes); got != tt.expected {
			t.Errorf("ShouldIndex(%s) = %v, expected %v", tt.file, got, tt.expected)
		}
	}
}

// TestSampleProjectEndpoints runs scan + read + extract over the sample project
func TestShouldSkipDir(t *testing.T) {
	root := filepath.FromSlash("/work/project")

	tests := []struct {
		dir      string
		expected bool
	}{
		{"/work/project", false},
		{"/work/project/src/main/java", false},
		{"/work/project/target", true},
		{"/work/project/module/.git", true},
		{"/work/project/src/test", true},
	}
	for _, tt := range tests {
		if got := ShouldSkipDir(root, filepath.FromSlash(tt.dir), defaultExcludes); got != tt.expected {
			t.Errorf("ShouldSkipDir(%s) = %v, expected %v", tt.dir, got, tt.expected)
		}
	}
}

func TestSampleProjectEndpoints(t *testing.T) {
	files, err := ScanDirectory(sampleDir, []string{"**/*.java"}, defaultExcludes)
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}

	ext := NewExtractor()
	byMethod := make(map[string]string)
	prefiltered := 0
	for _, f := range files {
		src, err := ReadSource(f, EncodingAuto)
		if err != nil {
			t.Fatalf("ReadSource(%s) failed: %v", f, err)
		}
		res := ext.Analyze(context.Background(), f, src)
		if res.Prefiltered {
			prefiltered++
		}
		for _, ep := range res.Endpoints {
			byMethod[ep.ClassName+"."+ep.MethodName] = ep.HTTPMethod + " " + ep.FullPath
		}
	}

	expected := map[string]string{
		"UserController.listUsers":     "GET /api/users",
		"UserController.getUser":       "GET /api/users/{id}",
		"UserController.createUser":    "POST /api/users",
		"UserController.updateUser":    "PUT /api/users/{id}",
		"UserController.deleteUser":    "DELETE /api/users/{id}",
		"OrderController.search":       "GET /orders/search",
		"OrderController.place":        "POST /orders",
		"OrderController.legacy":       "ANY /orders/legacy",
		"OrderController.changeStatus": "PATCH /orders/{id}/status",
		"HealthController.health":      "GET /health",
		"PaymentClient.getPayment":     "GET /payments/{id}",
		"PaymentClient.charge":         "POST /payments",
	}

	if len(byMethod) != len(expected) {
		t.Errorf("Expected %d endpoints, got %d: %v", len(expected), len(byMethod), byMethod)
	}
	for key, want := range expected {
		if got := byMethod[key]; got != want {
			t.Errorf("%s = %q, expected %q", key, got, want)
		}
	}
	if prefiltered != 1 {
		t.Errorf("Expected UserService to be pre-filtered, got %d pre-filtered files", prefiltered)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
