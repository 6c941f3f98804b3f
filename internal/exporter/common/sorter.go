package common

import (
	"path/filepath"
	"sort"
	"strings"

	"goto-endpoint/internal/model"
)

// MethodOrder is the display order of HTTP verbs in every report
var MethodOrder = []string{
	model.MethodGet,
	model.MethodPost,
	model.MethodPut,
	model.MethodPatch,
	model.MethodDelete,
	model.MethodHead,
	model.MethodOptions,
	model.MethodAny,
}

// MethodRank returns the position of a verb in MethodOrder, unknown verbs last
func MethodRank(method string) int {
	for i, m := range MethodOrder {
		if m == method {
			return i
		}
	}
	return len(MethodOrder)
}

// SortEndpoints returns a copy of the endpoints ordered by path, then verb,
// then controller. The input is left untouched.
func SortEndpoints(endpoints []model.Endpoint) []model.Endpoint {
	sorted := make([]model.Endpoint, len(endpoints))
	copy(sorted, endpoints)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.FullPath != b.FullPath {
			return a.FullPath < b.FullPath
		}
		if ra, rb := MethodRank(a.HTTPMethod), MethodRank(b.HTTPMethod); ra != rb {
			return ra < rb
		}
		return a.ClassName < b.ClassName
	})
	return sorted
}

// CountByMethod tallies endpoints per HTTP verb
func CountByMethod(endpoints []model.Endpoint) map[string]int {
	counts := make(map[string]int)
	for _, ep := range endpoints {
		counts[ep.HTTPMethod]++
	}
	return counts
}

// RelativePath shows a source file relative to the project root when it lives
// under it, and unchanged otherwise. Separators are always forward slashes.
func RelativePath(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
