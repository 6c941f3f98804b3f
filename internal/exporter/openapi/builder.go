package openapi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"goto-endpoint/internal/config"
	"goto-endpoint/internal/exporter/common"
	"goto-endpoint/internal/model"
)

// OutputFileName is written next to the other reports
const OutputFileName = "openapi.json"

// OpenAPI Root Object
type OpenAPI struct {
	OpenAPI string              `json:"openapi"`
	Info    Info                `json:"info"`
	Tags    []Tag               `json:"tags,omitempty"`
	Paths   map[string]PathItem `json:"paths"`
}

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type PathItem map[string]Operation // Key is method: "get", "post", etc.

type Operation struct {
	Summary     string              `json:"summary,omitempty"`
	OperationID string              `json:"operationId,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	Responses   map[string]Response `json:"responses"`

	// Source location of the handler, "<file>:<line>"
	Source string `json:"x-source,omitempty"`
}

type Parameter struct {
	Name     string `json:"name"`
	In       string `json:"in"` // "query", "path", "header"
	Required bool   `json:"required,omitempty"`
	Schema   Schema `json:"schema"`
}

type Schema struct {
	Type    string `json:"type"`
	Pattern string `json:"pattern,omitempty"`
}

type Response struct {
	Description string `json:"description"`
}

// verbs an ANY mapping is published under
var anyVerbs = []string{"get", "post", "put", "patch", "delete"}

// {name} or {name:regex}
var pathVarPattern = regexp.MustCompile(`\{([^{}:]+)(?::([^{}]*(?:\{[^{}]*\}[^{}]*)*))?\}`)

// OpenAPIExporter constructs OpenAPI spec
type OpenAPIExporter struct {
	// Stateless
}

func NewOpenAPIExporter() *OpenAPIExporter {
	return &OpenAPIExporter{}
}

func (b *OpenAPIExporter) Name() string {
	return config.FormatOpenAPI
}

func (b *OpenAPIExporter) Export(report *model.Report, cfg *config.Config) (string, error) {
	spec := b.Build(report)

	outputFile := filepath.Join(cfg.Output.Dir, OutputFileName)
	file, err := os.Create(outputFile)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(spec); err != nil {
		return "", fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}
	return outputFile, nil
}

// Build converts the report into an OpenAPI 3 document
func (b *OpenAPIExporter) Build(report *model.Report) *OpenAPI {
	spec := &OpenAPI{
		OpenAPI: "3.0.0",
		Info: Info{
			Title:       "Endpoint Index",
			Description: "Endpoints declared in " + report.ProjectRoot,
			Version:     "1.0.0",
		},
		Paths: make(map[string]PathItem),
	}

	for _, g := range common.GroupByController(report.Endpoints) {
		spec.Tags = append(spec.Tags, Tag{
			Name:        g.ClassName,
			Description: common.RelativePath(report.ProjectRoot, g.FilePath),
		})
	}

	for _, ep := range common.SortEndpoints(report.Endpoints) {
		b.processEndpoint(spec, ep, report.ProjectRoot)
	}

	return spec
}

func (b *OpenAPIExporter) processEndpoint(spec *OpenAPI, ep model.Endpoint, root string) {
	path, params := convertPath(ep.FullPath)

	verbs := []string{strings.ToLower(ep.HTTPMethod)}
	if ep.HTTPMethod == model.MethodAny {
		verbs = anyVerbs
	}

	// Initialize PathItem
	if _, ok := spec.Paths[path]; !ok {
		spec.Paths[path] = make(PathItem)
	}

	for _, verb := range verbs {
		// first declaration wins when two handlers claim the same route
		if _, taken := spec.Paths[path][verb]; taken {
			continue
		}

		opID := ep.ClassName + "_" + ep.MethodName
		if len(verbs) > 1 {
			opID += "_" + verb
		}

		spec.Paths[path][verb] = Operation{
			Summary:     ep.MethodName,
			OperationID: opID,
			Tags:        []string{ep.ClassName},
			Parameters:  params,
			Responses: map[string]Response{
				"200": {Description: "Successful response"},
			},
			Source: fmt.Sprintf("%s:%d", common.RelativePath(root, ep.FilePath), ep.StartLine),
		}
	}
}

// convertPath turns a Spring route into an OpenAPI path template: regex
// constraints move into the parameter schema and every variable becomes a
// required path parameter
func convertPath(fullPath string) (string, []Parameter) {
	var params []Parameter
	seen := make(map[string]bool)

	path := pathVarPattern.ReplaceAllStringFunc(fullPath, func(m string) string {
		sub := pathVarPattern.FindStringSubmatch(m)
		name := strings.TrimSpace(sub[1])
		if !seen[name] {
			seen[name] = true
			params = append(params, Parameter{
				Name:     name,
				In:       "path",
				Required: true,
				Schema:   Schema{Type: "string", Pattern: sub[2]},
			})
		}
		return "{" + name + "}"
	})

	return path, params
}
