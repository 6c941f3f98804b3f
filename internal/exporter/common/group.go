package common

import (
	"sort"

	"goto-endpoint/internal/model"
)

// ControllerGroup is one controller (or Feign client) and the endpoints it declares
type ControllerGroup struct {
	ClassName string
	FilePath  string
	Endpoints []model.Endpoint
}

// Count returns the number of endpoints in the group for a verb
func (g ControllerGroup) Count(method string) int {
	n := 0
	for _, ep := range g.Endpoints {
		if ep.HTTPMethod == method {
			n++
		}
	}
	return n
}

// GroupByController buckets endpoints by declaring class. Groups are ordered by
// class name then file, endpoints inside a group by their position in source.
// Two classes sharing a simple name in different files stay separate.
func GroupByController(endpoints []model.Endpoint) []ControllerGroup {
	index := make(map[string]int)
	var groups []ControllerGroup

	for _, ep := range endpoints {
		key := ep.ClassName + "\x00" + ep.FilePath
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ControllerGroup{ClassName: ep.ClassName, FilePath: ep.FilePath})
		}
		groups[i].Endpoints = append(groups[i].Endpoints, ep)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].ClassName != groups[j].ClassName {
			return groups[i].ClassName < groups[j].ClassName
		}
		return groups[i].FilePath < groups[j].FilePath
	})

	for _, g := range groups {
		eps := g.Endpoints
		sort.SliceStable(eps, func(i, j int) bool {
			if eps[i].StartLine != eps[j].StartLine {
				return eps[i].StartLine < eps[j].StartLine
			}
			return MethodRank(eps[i].HTTPMethod) < MethodRank(eps[j].HTTPMethod)
		})
	}

	return groups
}
