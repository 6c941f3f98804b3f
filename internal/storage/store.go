// Package storage persists the endpoint cache artifact between runs.
// Two backends exist: an embedded bbolt database (default) and a plain JSON file.
package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"goto-endpoint/internal/model"
)

// Backend names accepted by New (index.cache_backend)
const (
	BackendBolt = "bolt"
	BackendJSON = "json"
)

// File names inside the cache directory
const (
	BoltFileName = "endpoints-cache.db"
	JSONFileName = "endpoints-cache.json"
)

// CacheStore reads and writes the persisted cache artifact.
// Load returns nil, nil when nothing has been persisted yet.
// Implementations do not check the artifact version; callers do.
type CacheStore interface {
	Load() (*model.CacheArtifact, error)
	Save(artifact *model.CacheArtifact) error
	Delete() error
	Path() string
}

// New returns the store for the given backend rooted at cacheDir
func New(backend, cacheDir string) (CacheStore, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendBolt:
		return NewBoltStore(filepath.Join(cacheDir, BoltFileName)), nil
	case BackendJSON:
		return NewJSONStore(filepath.Join(cacheDir, JSONFileName)), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (expected %s or %s)", backend, BackendBolt, BackendJSON)
	}
}
