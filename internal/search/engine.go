// Package search ranks indexed endpoints against a free-text query.
package search

import (
	"sort"
	"strings"

	"goto-endpoint/internal/model"
)

// Score tiers. Within a field exact > prefix > substring; method name and
// full path both outrank a class-name-only hit.
const (
	scoreMethodExact     = 100
	scoreMethodPrefix    = 80
	scoreMethodSubstring = 60
	scorePathExact       = 90
	scorePathPrefix      = 70
	scorePathSubstring   = 50
	scoreClassSubstring  = 40
)

// Engine scores, sorts and de-duplicates endpoints
type Engine struct {
	// Limit truncates the result list; 0 means unlimited
	Limit int
}

// NewEngine creates an engine returning at most limit results (0 = unlimited)
func NewEngine(limit int) *Engine {
	return &Engine{Limit: limit}
}

type scored struct {
	endpoint model.Endpoint
	score    int
}

// Search returns the endpoints matching query, best first.
// Ties keep the order of endpoints; duplicates by Endpoint.Key keep the best hit.
func (e *Engine) Search(endpoints []model.Endpoint, query string) []model.Endpoint {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []model.Endpoint{}
	}

	hits := make([]scored, 0)
	for _, ep := range endpoints {
		if s := Score(ep, q); s > 0 {
			hits = append(hits, scored{endpoint: ep, score: s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	seen := make(map[string]bool, len(hits))
	results := make([]model.Endpoint, 0, len(hits))
	for _, h := range hits {
		key := h.endpoint.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, h.endpoint)
		if e.Limit > 0 && len(results) == e.Limit {
			break
		}
	}
	return results
}

// Score computes the relevance of ep for an already lower-cased, trimmed query
func Score(ep model.Endpoint, q string) int {
	score := 0

	method := strings.ToLower(ep.MethodName)
	switch {
	case method == q:
		score += scoreMethodExact
	case strings.HasPrefix(method, q):
		score += scoreMethodPrefix
	case strings.Contains(method, q):
		score += scoreMethodSubstring
	}

	path := strings.ToLower(ep.FullPath)
	switch {
	case path == q:
		score += scorePathExact
	case strings.HasPrefix(path, q):
		score += scorePathPrefix
	case strings.Contains(path, q):
		score += scorePathSubstring
	}

	if strings.Contains(strings.ToLower(ep.ClassName), q) {
		score += scoreClassSubstring
	}
	return score
}
