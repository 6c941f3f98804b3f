package index

import (
	"sort"
	"time"

	"goto-endpoint/internal/logger"
	"goto-endpoint/internal/model"
)

// FileCache remembers, per file, the mtime at extraction and what was extracted.
// An entry with no endpoints is a cached fact, not a miss.
// Not safe for concurrent use; Manager guards it.
type FileCache struct {
	entries map[string]*model.FileCacheEntry
}

// NewFileCache creates an empty cache
func NewFileCache() *FileCache {
	return &FileCache{entries: make(map[string]*model.FileCacheEntry)}
}

// Fresh returns the cached endpoints of path when the entry is at least as new
// as mtime. Equal timestamps count as fresh.
func (c *FileCache) Fresh(path string, mtime time.Time) ([]model.Endpoint, bool) {
	entry, ok := c.entries[path]
	if !ok || entry.LastModified < mtime.UnixNano() {
		return nil, false
	}
	return append([]model.Endpoint(nil), entry.Endpoints...), true
}

// Put records what was extracted from path at mtime
func (c *FileCache) Put(path string, mtime time.Time, endpoints []model.Endpoint) {
	if endpoints == nil {
		endpoints = []model.Endpoint{}
	}
	c.entries[path] = &model.FileCacheEntry{
		LastModified: mtime.UnixNano(),
		Endpoints:    endpoints,
	}
}

// Delete drops the entry of path
func (c *FileCache) Delete(path string) {
	delete(c.entries, path)
}

// Entry returns a copy of the endpoints cached for path regardless of freshness
func (c *FileCache) Entry(path string) ([]model.Endpoint, bool) {
	entry, ok := c.entries[path]
	if !ok {
		return nil, false
	}
	return append([]model.Endpoint(nil), entry.Endpoints...), true
}

// Paths returns the cached file paths, sorted
func (c *FileCache) Paths() []string {
	paths := make([]string, 0, len(c.entries))
	for path := range c.entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of cached files
func (c *FileCache) Len() int {
	return len(c.entries)
}

// Clear drops every entry
func (c *FileCache) Clear() {
	c.entries = make(map[string]*model.FileCacheEntry)
}

// Artifact snapshots the cache into its persisted form
func (c *FileCache) Artifact() *model.CacheArtifact {
	artifact := model.NewCacheArtifact()
	artifact.LastUpdate = time.Now().UnixMilli()
	for path, entry := range c.entries {
		artifact.FileData[path] = &model.FileCacheEntry{
			LastModified: entry.LastModified,
			Endpoints:    entry.Endpoints,
		}
	}
	return artifact
}

// Restore replaces the cache content with a persisted artifact.
// A nil artifact or a version mismatch leaves the cache empty and returns false.
func (c *FileCache) Restore(artifact *model.CacheArtifact) bool {
	c.Clear()
	if artifact == nil {
		return false
	}
	if artifact.Version != model.CacheVersion {
		logger.Info("[CACHE] Discarding cache version %q (current %s)", artifact.Version, model.CacheVersion)
		return false
	}
	for path, entry := range artifact.FileData {
		if entry == nil {
			continue
		}
		endpoints := entry.Endpoints
		if endpoints == nil {
			endpoints = []model.Endpoint{}
		}
		c.entries[path] = &model.FileCacheEntry{LastModified: entry.LastModified, Endpoints: endpoints}
	}
	return true
}
