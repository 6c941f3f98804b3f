package analyzer

import (
	"context"
	"errors"
	"testing"

	"goto-endpoint/internal/javaparser"
	"goto-endpoint/internal/model"
)

// stubParser returns a fixed unit (or error) and counts calls
type stubParser struct {
	name  string
	unit  *javaparser.CompilationUnit
	err   error
	calls int
}

func (p *stubParser) Name() string { return p.name }

func (p *stubParser) Parse(ctx context.Context, src []byte) (*javaparser.CompilationUnit, error) {
	p.calls++
	return p.unit, p.err
}

func extract(t *testing.T, src string) []model.Endpoint {
	t.Helper()
	return NewExtractorWith(javaparser.NewPatternParser(), nil).Analyze(context.Background(), "/src/Test.java", []byte(src)).Endpoints
}

func findEndpoint(endpoints []model.Endpoint, methodName string) *model.Endpoint {
	for i := range endpoints {
		if endpoints[i].MethodName == methodName {
			return &endpoints[i]
		}
	}
	return nil
}

func TestExtractSiblingScoping(t *testing.T) {
	src := `
@RestController
class Api {
    @GetMapping("/a") public String a() { return ""; }
}

class NotAController {
    @GetMapping("/b") public String b() { return ""; }
}
`
	endpoints := extract(t, src)
	if len(endpoints) != 1 {
		t.Fatalf("Expected 1 endpoint, got %d: %v", len(endpoints), endpoints)
	}
	if endpoints[0].ClassName != "Api" || endpoints[0].FullPath != "/a" {
		t.Errorf("Unexpected endpoint: %v", endpoints[0])
	}
}

func TestExtractClassPathDoesNotLeak(t *testing.T) {
	src := `
@RestController
@RequestMapping("/first")
class First {
    @GetMapping("/x") public String x() { return ""; }
}

@RestController
class Second {
    @GetMapping("/y") public String y() { return ""; }
}
`
	endpoints := extract(t, src)
	if len(endpoints) != 2 {
		t.Fatalf("Expected 2 endpoints, got %d", len(endpoints))
	}
	if got := findEndpoint(endpoints, "x").FullPath; got != "/first/x" {
		t.Errorf("First.x path = %q, expected /first/x", got)
	}
	if got := findEndpoint(endpoints, "y").FullPath; got != "/y" {
		t.Errorf("Second.y path = %q, expected /y (class path leaked)", got)
	}
}

func TestExtractNestedScoping(t *testing.T) {
	src := `
@RestController
@RequestMapping("/outer")
class Outer {
    @GetMapping("/o") public String o() { return ""; }

    static class Helper {
        @GetMapping("/h") public String h() { return ""; }
    }

    @Controller
    static class Inner {
        @GetMapping("/i") public String i() { return ""; }
    }
}
`
	endpoints := extract(t, src)
	if len(endpoints) != 2 {
		t.Fatalf("Expected 2 endpoints, got %d: %v", len(endpoints), endpoints)
	}
	if ep := findEndpoint(endpoints, "o"); ep == nil || ep.FullPath != "/outer/o" {
		t.Errorf("Outer.o missing or wrong: %v", ep)
	}
	inner := findEndpoint(endpoints, "i")
	if inner == nil {
		t.Fatal("Inner.i missing")
	}
	if inner.FullPath != "/i" || inner.ClassName != "Inner" {
		t.Errorf("Inner.i = %v, expected /i on Inner", inner)
	}
	if findEndpoint(endpoints, "h") != nil {
		t.Error("Helper is not a controller, its methods must be inert")
	}
}

func TestExtractPathPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		annotation string
		expected   string
	}{
		{"value before path", `@RequestMapping(value = "/a", path = "/b")`, "/a"},
		{"path before value", `@RequestMapping(path = "/b", value = "/a")`, "/b"},
		{"unnamed wins", `@GetMapping("/u")`, "/u"},
		{"path only", `@GetMapping(path = "/p")`, "/p"},
		{"no path", `@GetMapping(produces = "application/json")`, ""},
		{"marker only", `@GetMapping`, ""},
		{"non-string value skipped", `@GetMapping(value = PATH, path = "/lit")`, "/lit"},
		{"array not resolved", `@GetMapping({"/x", "/y"})`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "@RestController\nclass C {\n    " + tt.annotation + "\n    public void m() {}\n}\n"
			endpoints := extract(t, src)
			if len(endpoints) != 1 {
				t.Fatalf("Expected 1 endpoint, got %d", len(endpoints))
			}
			if endpoints[0].OriginalMethodPath != tt.expected {
				t.Errorf("method path = %q, expected %q", endpoints[0].OriginalMethodPath, tt.expected)
			}
		})
	}
}

func TestExtractVerbResolution(t *testing.T) {
	tests := []struct {
		name       string
		annotation string
		expected   string
	}{
		{"enum reference", `@RequestMapping(method = RequestMethod.GET)`, "GET"},
		{"static import", `@RequestMapping(value = "/x", method = POST)`, "POST"},
		{"array", `@RequestMapping(method = {RequestMethod.PUT, RequestMethod.POST})`, "PUT"},
		{"string token", `@RequestMapping(method = "delete")`, "DELETE"},
		{"head", `@RequestMapping(method = RequestMethod.HEAD)`, "HEAD"},
		{"unresolvable", `@RequestMapping(method = verbs())`, "ANY"},
		{"missing", `@RequestMapping("/x")`, "ANY"},
		{"shorthand get", `@GetMapping`, "GET"},
		{"shorthand post", `@PostMapping("/p")`, "POST"},
		{"shorthand put", `@PutMapping`, "PUT"},
		{"shorthand delete", `@DeleteMapping`, "DELETE"},
		{"shorthand patch", `@PatchMapping`, "PATCH"},
		{"lower-case name", `@postmapping`, "POST"},
		{"qualified name", `@org.springframework.web.bind.annotation.DeleteMapping("/d")`, "DELETE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "@RestController\n@RequestMapping(\"/base\")\nclass C {\n    " + tt.annotation + "\n    public void m() {}\n}\n"
			endpoints := extract(t, src)
			if len(endpoints) != 1 {
				t.Fatalf("Expected 1 endpoint, got %d", len(endpoints))
			}
			if endpoints[0].HTTPMethod != tt.expected {
				t.Errorf("HTTPMethod = %q, expected %q", endpoints[0].HTTPMethod, tt.expected)
			}
		})
	}
}

func TestExtractVerbWithoutPathUsesClassPath(t *testing.T) {
	src := `
@Controller
@RequestMapping("/orders")
public class OrderController {
    @RequestMapping(method = RequestMethod.GET)
    public String list() { return "orders"; }
}
`
	endpoints := extract(t, src)
	if len(endpoints) != 1 {
		t.Fatalf("Expected 1 endpoint, got %d", len(endpoints))
	}
	ep := endpoints[0]
	if ep.HTTPMethod != model.MethodGet {
		t.Errorf("HTTPMethod = %q, expected GET", ep.HTTPMethod)
	}
	if ep.FullPath != "/orders" {
		t.Errorf("FullPath = %q, expected /orders", ep.FullPath)
	}
}

func TestExtractLastMappingWins(t *testing.T) {
	src := `
@RestController
class C {
    @GetMapping("/first")
    @PostMapping("/second")
    public void m() {}
}
`
	endpoints := extract(t, src)
	if len(endpoints) != 1 {
		t.Fatalf("Expected 1 endpoint, got %d", len(endpoints))
	}
	if endpoints[0].HTTPMethod != "POST" || endpoints[0].FullPath != "/second" {
		t.Errorf("Unexpected endpoint %v", endpoints[0])
	}
	if endpoints[0].StartLine != 5 {
		t.Errorf("StartLine = %d, expected the @PostMapping line 5", endpoints[0].StartLine)
	}
}

func TestExtractEndpointFields(t *testing.T) {
	src := `@RestController
@RequestMapping("/api/")
class UserController {
    @GetMapping("users/{id}/")
    public User get(Long id) { return null; }
}
`
	endpoints := extract(t, src)
	if len(endpoints) != 1 {
		t.Fatalf("Expected 1 endpoint, got %d", len(endpoints))
	}
	expected := model.Endpoint{
		FullPath:           "/api/users/{id}",
		RawPath:            "/api//users/{id}/",
		OriginalClassPath:  "/api/",
		OriginalMethodPath: "users/{id}/",
		HTTPMethod:         "GET",
		ClassName:          "UserController",
		MethodName:         "get",
		FilePath:           "/src/Test.java",
		StartLine:          4,
		StartColumn:        5,
		EndLine:            4,
		EndColumn:          31,
	}
	if endpoints[0] != expected {
		t.Errorf("Endpoint mismatch:\n got  %+v\n want %+v", endpoints[0], expected)
	}
}

func TestExtractFeignClient(t *testing.T) {
	src := `
@FeignClient(name = "payments", path = "/ignored")
public interface PaymentClient {
    @GetMapping("/payments/{id}")
    Payment get(@PathVariable("id") String id);
}
`
	endpoints := extract(t, src)
	if len(endpoints) != 1 {
		t.Fatalf("Expected 1 endpoint, got %d", len(endpoints))
	}
	if endpoints[0].FullPath != "/payments/{id}" || endpoints[0].ClassName != "PaymentClient" {
		t.Errorf("Unexpected endpoint %v", endpoints[0])
	}
}

func TestExtractCommentedAnnotationsIgnored(t *testing.T) {
	src := `
// @RestController
class C {
    /* @GetMapping("/x") */
    public void m() {}
}
`
	if endpoints := extract(t, src); len(endpoints) != 0 {
		t.Errorf("Expected no endpoints from commented annotations, got %v", endpoints)
	}
}

func TestHasEndpointMarkers(t *testing.T) {
	tests := []struct {
		src      string
		expected bool
	}{
		{"public class Plain {}", false},
		{"@Service class S {}", false},
		{"@RestController class C {}", true},
		{"@restcontroller class C {}", true},
		{"@FeignClient interface F {}", true},
		{"// mentions @GetMapping in a comment", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := HasEndpointMarkers([]byte(tt.src)); got != tt.expected {
			t.Errorf("HasEndpointMarkers(%q) = %v, expected %v", tt.src, got, tt.expected)
		}
	}
}

func TestAnalyzePrefilterSkipsParsers(t *testing.T) {
	primary := &stubParser{name: "primary"}
	fallback := &stubParser{name: "fallback"}
	ext := NewExtractorWith(primary, fallback)

	res := ext.Analyze(context.Background(), "A.java", []byte("public class A { void m() {} }"))
	if !res.Prefiltered {
		t.Error("Expected the file to be pre-filtered")
	}
	if primary.calls != 0 || fallback.calls != 0 {
		t.Errorf("Parsers must not run on pre-filtered files (primary=%d, fallback=%d)", primary.calls, fallback.calls)
	}
}

func TestAnalyzeFallback(t *testing.T) {
	found := &javaparser.CompilationUnit{Types: []javaparser.TypeDecl{
		&javaparser.ClassDecl{
			Name:        "C",
			Annotations: []*javaparser.Annotation{{Name: "RestController"}},
			Methods: []*javaparser.MethodDecl{{
				Name:        "m",
				Annotations: []*javaparser.Annotation{{Name: "GetMapping", Span: javaparser.Span{StartLine: 3, StartColumn: 5, EndLine: 3, EndColumn: 16}}},
			}},
		},
	}}
	src := []byte("@RestController class C {}")

	t.Run("primary hit skips fallback", func(t *testing.T) {
		primary := &stubParser{name: "primary", unit: found}
		fallback := &stubParser{name: "fallback", unit: found}
		res := NewExtractorWith(primary, fallback).Analyze(context.Background(), "C.java", src)
		if len(res.Endpoints) != 1 || res.Strategy != "primary" {
			t.Errorf("Expected 1 endpoint from primary, got %d from %q", len(res.Endpoints), res.Strategy)
		}
		if fallback.calls != 0 {
			t.Error("Fallback must not run when primary found endpoints")
		}
	})

	t.Run("empty primary uses fallback", func(t *testing.T) {
		primary := &stubParser{name: "primary", unit: &javaparser.CompilationUnit{}}
		fallback := &stubParser{name: "fallback", unit: found}
		res := NewExtractorWith(primary, fallback).Analyze(context.Background(), "C.java", src)
		if len(res.Endpoints) != 1 || res.Strategy != "fallback" {
			t.Errorf("Expected 1 endpoint from fallback, got %d from %q", len(res.Endpoints), res.Strategy)
		}
	})

	t.Run("primary error uses fallback", func(t *testing.T) {
		primary := &stubParser{name: "primary", err: errors.New("boom")}
		fallback := &stubParser{name: "fallback", unit: found}
		res := NewExtractorWith(primary, fallback).Analyze(context.Background(), "C.java", src)
		if len(res.Endpoints) != 1 {
			t.Errorf("Expected fallback endpoints, got %d", len(res.Endpoints))
		}
	})

	t.Run("both fail yields nothing", func(t *testing.T) {
		primary := &stubParser{name: "primary", err: errors.New("boom")}
		fallback := &stubParser{name: "fallback", err: errors.New("bang")}
		res := NewExtractorWith(primary, fallback).Analyze(context.Background(), "C.java", src)
		if len(res.Endpoints) != 0 || res.Strategy != "" {
			t.Errorf("Expected empty result, got %+v", res)
		}
	})

	t.Run("method span used without annotation span", func(t *testing.T) {
		unit := &javaparser.CompilationUnit{Types: []javaparser.TypeDecl{
			&javaparser.InterfaceDecl{
				Name:        "F",
				Annotations: []*javaparser.Annotation{{Name: "FeignClient"}},
				Methods: []*javaparser.MethodDecl{{
					Name:        "m",
					Annotations: []*javaparser.Annotation{{Name: "PostMapping"}},
					Span:        javaparser.Span{StartLine: 7, StartColumn: 3, EndLine: 7, EndColumn: 12},
				}},
			},
		}}
		res := NewExtractorWith(&stubParser{name: "p", unit: unit}, nil).Analyze(context.Background(), "F.java", []byte("@FeignClient"))
		if len(res.Endpoints) != 1 {
			t.Fatalf("Expected 1 endpoint, got %d", len(res.Endpoints))
		}
		if res.Endpoints[0].StartLine != 7 || res.Endpoints[0].StartColumn != 3 {
			t.Errorf("Expected method header location 7:3, got %d:%d", res.Endpoints[0].StartLine, res.Endpoints[0].StartColumn)
		}
	})
}

func TestAnalyzeRecoversParserPanic(t *testing.T) {
	ext := NewExtractorWith(panicParser{}, nil)
	res := ext.Analyze(context.Background(), "P.java", []byte("@RestController"))
	if len(res.Endpoints) != 0 {
		t.Errorf("Expected no endpoints after a parser panic, got %d", len(res.Endpoints))
	}
}

type panicParser struct{}

func (panicParser) Name() string { return "panic" }

func (panicParser) Parse(ctx context.Context, src []byte) (*javaparser.CompilationUnit, error) {
	panic("unexpected token")
}
