package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"goto-endpoint/internal/model"
)

// JSONStore keeps the artifact as one indented JSON document
type JSONStore struct {
	path string
}

// NewJSONStore creates a store backed by the JSON file at path
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the JSON file location
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the artifact. Returns nil, nil if the file does not exist.
func (s *JSONStore) Load() (*model.CacheArtifact, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}

	var artifact model.CacheArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("unmarshal cache: %w", err)
	}
	if artifact.FileData == nil {
		artifact.FileData = make(map[string]*model.FileCacheEntry)
	}
	return &artifact, nil
}

// Save writes the artifact through a temp file and a rename, so a crash
// never leaves a half-written cache behind.
func (s *JSONStore) Save(artifact *model.CacheArtifact) error {
	if artifact == nil {
		return fmt.Errorf("nil cache artifact")
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".endpoints-cache-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename cache: %w", err)
	}
	return nil
}

// Delete removes the JSON file. Deleting a missing file is not an error.
func (s *JSONStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete cache: %w", err)
	}
	return nil
}
