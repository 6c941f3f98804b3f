package index

import (
	"goto-endpoint/internal/model"
)

// Store maps file paths to their endpoints and iterates in insertion order.
// Replacing a path keeps its position; deleting and re-adding moves it to the end.
// Not safe for concurrent use; Manager guards it.
type Store struct {
	order   []string
	entries map[string][]model.Endpoint
	total   int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{entries: make(map[string][]model.Endpoint)}
}

// Set stores the endpoints of path. An empty list deletes the entry:
// files without endpoints are never kept.
func (s *Store) Set(path string, endpoints []model.Endpoint) {
	if len(endpoints) == 0 {
		s.Delete(path)
		return
	}
	old, exists := s.entries[path]
	if !exists {
		s.order = append(s.order, path)
	}
	s.total += len(endpoints) - len(old)
	s.entries[path] = endpoints
}

// Delete removes path and reports whether it was present
func (s *Store) Delete(path string) bool {
	old, exists := s.entries[path]
	if !exists {
		return false
	}
	delete(s.entries, path)
	s.total -= len(old)
	for i, p := range s.order {
		if p == path {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns a copy of the endpoints stored for path
func (s *Store) Get(path string) ([]model.Endpoint, bool) {
	endpoints, ok := s.entries[path]
	if !ok {
		return nil, false
	}
	return append([]model.Endpoint(nil), endpoints...), true
}

// All returns every endpoint, files in insertion order
func (s *Store) All() []model.Endpoint {
	all := make([]model.Endpoint, 0, s.total)
	for _, path := range s.order {
		all = append(all, s.entries[path]...)
	}
	return all
}

// Paths returns the stored file paths in insertion order
func (s *Store) Paths() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of stored files
func (s *Store) Len() int {
	return len(s.order)
}

// Total returns the number of stored endpoints
func (s *Store) Total() int {
	return s.total
}

// Clear removes everything
func (s *Store) Clear() {
	s.order = nil
	s.entries = make(map[string][]model.Endpoint)
	s.total = 0
}
