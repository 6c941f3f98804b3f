package analyzer

import (
	"bytes"
	"context"
	"fmt"

	"goto-endpoint/internal/javaparser"
	"goto-endpoint/internal/logger"
	"goto-endpoint/internal/model"
)

// markers is the pre-filter vocabulary, lower-cased.
// A file containing none of them cannot declare an endpoint.
var markers = [][]byte{
	[]byte("@controller"),
	[]byte("@restcontroller"),
	[]byte("@requestmapping"),
	[]byte("@getmapping"),
	[]byte("@postmapping"),
	[]byte("@putmapping"),
	[]byte("@deletemapping"),
	[]byte("@patchmapping"),
	[]byte("@feignclient"),
}

// HasEndpointMarkers reports whether src mentions any recognized annotation.
// It is a plain case-insensitive substring test: comments count too.
func HasEndpointMarkers(src []byte) bool {
	lower := bytes.ToLower(src)
	for _, m := range markers {
		if bytes.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Outcome is what one strategy produced for a file.
// NeedsFallback is set when the strategy found nothing worth returning.
type Outcome struct {
	Endpoints     []model.Endpoint
	NeedsFallback bool
}

// Result describes one Analyze call
type Result struct {
	Endpoints   []model.Endpoint
	Prefiltered bool   // no marker annotation in the source, no parser ran
	Strategy    string // parser that produced Endpoints, "" when none did
}

// Extractor turns Java source into endpoints. It owns both parse strategies
// and is safe for concurrent use.
type Extractor struct {
	primary  javaparser.Parser
	fallback javaparser.Parser
}

// NewExtractor creates an extractor with the pattern strategy first and the
// tree-sitter strategy as fallback (when the build supports it).
func NewExtractor() *Extractor {
	ts := javaparser.NewTreeSitterParser()
	if !ts.Available() {
		return NewExtractorWith(javaparser.NewPatternParser(), nil)
	}
	return NewExtractorWith(javaparser.NewPatternParser(), ts)
}

// NewExtractorWith creates an extractor from explicit strategies.
// fallback may be nil.
func NewExtractorWith(primary, fallback javaparser.Parser) *Extractor {
	return &Extractor{primary: primary, fallback: fallback}
}

// Analyze runs the pre-filter, the primary strategy and, when that finds
// nothing, the fallback strategy.
func (e *Extractor) Analyze(ctx context.Context, filePath string, src []byte) Result {
	if !HasEndpointMarkers(src) {
		return Result{Prefiltered: true}
	}

	outcome, err := e.run(ctx, e.primary, filePath, src)
	if err != nil {
		logger.LogParseError(filePath, err, e.primary.Name())
	}
	if !outcome.NeedsFallback {
		return Result{Endpoints: outcome.Endpoints, Strategy: e.primary.Name()}
	}
	if e.fallback == nil || ctx.Err() != nil {
		return Result{}
	}

	logger.Debug("[EXTRACT] %s: no endpoints from %s, trying %s", filePath, e.primary.Name(), e.fallback.Name())
	outcome, err = e.run(ctx, e.fallback, filePath, src)
	if err != nil {
		logger.LogParseError(filePath, err, e.fallback.Name())
		return Result{}
	}
	if len(outcome.Endpoints) == 0 {
		return Result{}
	}
	return Result{Endpoints: outcome.Endpoints, Strategy: e.fallback.Name()}
}

// run parses src with one strategy and visits the result
func (e *Extractor) run(ctx context.Context, p javaparser.Parser, filePath string, src []byte) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{NeedsFallback: true}
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()

	cu, err := p.Parse(ctx, src)
	if err != nil {
		return Outcome{NeedsFallback: true}, err
	}

	endpoints := visit(cu, filePath)
	return Outcome{Endpoints: endpoints, NeedsFallback: len(endpoints) == 0}, nil
}
