package analyzer

import (
	"strings"

	"goto-endpoint/internal/javaparser"
	"goto-endpoint/internal/model"
	"goto-endpoint/internal/utils"
)

// shorthand mapping annotations and the verb they imply
var shorthandVerbs = map[string]string{
	"getmapping":    model.MethodGet,
	"postmapping":   model.MethodPost,
	"putmapping":    model.MethodPut,
	"deletemapping": model.MethodDelete,
	"patchmapping":  model.MethodPatch,
}

// verb tokens accepted in a RequestMapping method argument
var verbTokens = map[string]bool{
	model.MethodGet:     true,
	model.MethodPost:    true,
	model.MethodPut:     true,
	model.MethodDelete:  true,
	model.MethodPatch:   true,
	model.MethodHead:    true,
	model.MethodOptions: true,
}

// visitor walks a compilation unit and collects endpoints
type visitor struct {
	filePath  string
	endpoints []model.Endpoint
}

func visit(cu *javaparser.CompilationUnit, filePath string) []model.Endpoint {
	if cu == nil {
		return nil
	}
	v := &visitor{filePath: filePath}
	for _, decl := range cu.Types {
		v.visitType(decl)
	}
	return v.endpoints
}

// visitType handles one class or interface. Flags and the class path are
// local to the declaration, so nested and sibling types never share them.
func (v *visitor) visitType(decl javaparser.TypeDecl) {
	isController := false
	isClient := false
	classPaths := []string{""}

	for _, ann := range decl.DeclAnnotations() {
		switch strings.ToLower(ann.SimpleName()) {
		case "controller", "restcontroller":
			isController = true
		case "feignclient":
			isClient = true
		case "requestmapping":
			classPaths = []string{annotationPath(ann)}
		}
	}

	if isController || isClient {
		for _, m := range decl.DeclMethods() {
			v.visitMethod(decl.DeclName(), classPaths, m)
		}
	}

	for _, nested := range decl.DeclNested() {
		v.visitType(nested)
	}
}

func (v *visitor) visitMethod(className string, classPaths []string, m *javaparser.MethodDecl) {
	var mapping *javaparser.Annotation
	verb := ""
	for _, ann := range m.Annotations {
		if annVerb, ok := mappingVerb(ann); ok {
			mapping, verb = ann, annVerb
		}
	}
	if mapping == nil {
		return
	}

	methodPaths := []string{annotationPath(mapping)}

	span := mapping.Span
	if span.IsZero() {
		span = m.Span
	}

	for _, classPath := range classPaths {
		for _, methodPath := range methodPaths {
			v.endpoints = append(v.endpoints, model.Endpoint{
				FullPath:           utils.JoinPaths(classPath, methodPath),
				RawPath:            model.RawPath(classPath, methodPath),
				OriginalClassPath:  classPath,
				OriginalMethodPath: methodPath,
				HTTPMethod:         verb,
				ClassName:          className,
				MethodName:         m.Name,
				FilePath:           v.filePath,
				StartLine:          span.StartLine,
				StartColumn:        span.StartColumn,
				EndLine:            span.EndLine,
				EndColumn:          span.EndColumn,
			})
		}
	}
}

// mappingVerb reports whether ann is a mapping annotation and the verb it binds
func mappingVerb(ann *javaparser.Annotation) (string, bool) {
	name := strings.ToLower(ann.SimpleName())
	if verb, ok := shorthandVerbs[name]; ok {
		return verb, true
	}
	if name == "requestmapping" {
		return requestMethod(ann), true
	}
	return "", false
}

// requestMethod resolves the method argument of a RequestMapping.
// Accepts RequestMethod.GET, a static-imported GET, "GET" or an array of
// those (first verb wins). Anything else means every verb.
func requestMethod(ann *javaparser.Annotation) string {
	value, ok := ann.Arg("method")
	if !ok {
		return model.MethodAny
	}

	found, ok := javaparser.Find(value, javaparser.DefaultSearchDepth, func(n javaparser.Node) bool {
		_, isVerb := verbToken(n)
		return isVerb
	})
	if !ok {
		return model.MethodAny
	}
	verb, _ := verbToken(found)
	return verb
}

func verbToken(n javaparser.Node) (string, bool) {
	lit, ok := n.(*javaparser.Literal)
	if !ok || (lit.Kind != javaparser.NameLit && lit.Kind != javaparser.StringLit) {
		return "", false
	}
	token := lit.Value
	if idx := strings.LastIndex(token, "."); idx != -1 {
		token = token[idx+1:]
	}
	token = strings.ToUpper(strings.TrimSpace(token))
	return token, verbTokens[token]
}

// annotationPath picks the path fragment of a mapping annotation:
// the unnamed string argument, else the first value/path string argument,
// else "".
func annotationPath(ann *javaparser.Annotation) string {
	for _, arg := range ann.Args {
		if arg.Name == "" && arg.Value != nil && arg.Value.Kind == javaparser.StringLit {
			return arg.Value.Value
		}
	}
	for _, arg := range ann.Args {
		if arg.Name != "value" && arg.Name != "path" {
			continue
		}
		if arg.Value != nil && arg.Value.Kind == javaparser.StringLit {
			return arg.Value.Value
		}
	}
	return ""
}
