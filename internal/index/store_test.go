package index

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goto-endpoint/internal/model"
)

func endpoints(file string, methods ...string) []model.Endpoint {
	out := make([]model.Endpoint, len(methods))
	for i, m := range methods {
		out[i] = model.Endpoint{FilePath: file, MethodName: m, ClassName: "C", FullPath: "/" + m, HTTPMethod: model.MethodGet}
	}
	return out
}

func TestStore_InsertionOrder(t *testing.T) {
	s := NewStore()
	s.Set("b", endpoints("b", "b1"))
	s.Set("a", endpoints("a", "a1", "a2"))
	s.Set("c", endpoints("c", "c1"))

	assert.Equal(t, []string{"b", "a", "c"}, s.Paths())
	assert.Equal(t, 4, s.Total())

	var methods []string
	for _, e := range s.All() {
		methods = append(methods, e.MethodName)
	}
	assert.Equal(t, []string{"b1", "a1", "a2", "c1"}, methods)
}

func TestStore_ReplaceKeepsPosition(t *testing.T) {
	s := NewStore()
	s.Set("a", endpoints("a", "a1"))
	s.Set("b", endpoints("b", "b1"))
	s.Set("a", endpoints("a", "x", "y", "z"))

	assert.Equal(t, []string{"a", "b"}, s.Paths())
	assert.Equal(t, 4, s.Total())
}

func TestStore_DeleteAndReAddMovesToEnd(t *testing.T) {
	s := NewStore()
	s.Set("a", endpoints("a", "a1"))
	s.Set("b", endpoints("b", "b1"))

	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	s.Set("a", endpoints("a", "a1"))

	assert.Equal(t, []string{"b", "a"}, s.Paths())
}

func TestStore_EmptyListDeletes(t *testing.T) {
	s := NewStore()
	s.Set("a", endpoints("a", "a1"))
	s.Set("a", nil)
	s.Set("b", []model.Endpoint{})

	_, ok := s.Get("a")
	assert.False(t, ok)
	_, ok = s.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Total())
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Set("a", endpoints("a", "a1"))

	got, ok := s.Get("a")
	require.True(t, ok)
	got[0].MethodName = "mutated"

	again, _ := s.Get("a")
	assert.Equal(t, "a1", again[0].MethodName)
}

func TestFileCache_Freshness(t *testing.T) {
	c := NewFileCache()
	mtime := time.Unix(1700000000, 500)
	c.Put("a", mtime, endpoints("a", "a1"))

	got, fresh := c.Fresh("a", mtime)
	assert.True(t, fresh, "equal mtime is fresh")
	assert.Len(t, got, 1)

	_, fresh = c.Fresh("a", mtime.Add(-time.Second))
	assert.True(t, fresh, "older file is fresh")

	_, fresh = c.Fresh("a", mtime.Add(time.Nanosecond))
	assert.False(t, fresh, "newer file is stale")

	_, fresh = c.Fresh("missing", mtime)
	assert.False(t, fresh)
}

func TestFileCache_EmptyEntryIsCachedFact(t *testing.T) {
	c := NewFileCache()
	mtime := time.Unix(1700000000, 0)
	c.Put("service", mtime, nil)

	got, fresh := c.Fresh("service", mtime)
	assert.True(t, fresh)
	assert.Empty(t, got)

	artifact := c.Artifact()
	require.Contains(t, artifact.FileData, "service")
	assert.NotNil(t, artifact.FileData["service"].Endpoints)
}

func TestFileCache_Restore(t *testing.T) {
	c := NewFileCache()
	c.Put("a", time.Unix(10, 0), endpoints("a", "a1"))
	artifact := c.Artifact()
	assert.Equal(t, model.CacheVersion, artifact.Version)
	assert.NotZero(t, artifact.LastUpdate)

	restored := NewFileCache()
	assert.True(t, restored.Restore(artifact))
	assert.Equal(t, []string{"a"}, restored.Paths())
	_, fresh := restored.Fresh("a", time.Unix(10, 0))
	assert.True(t, fresh)

	artifact.Version = "0.0.1"
	assert.False(t, restored.Restore(artifact))
	assert.Equal(t, 0, restored.Len())

	assert.False(t, restored.Restore(nil))
}
