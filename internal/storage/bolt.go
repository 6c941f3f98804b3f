package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"goto-endpoint/internal/model"
)

// Bucket keys
var (
	bucketMeta    = []byte("meta")
	bucketFiles   = []byte("files")
	keyVersion    = []byte("version")
	keyLastUpdate = []byte("lastUpdate")
)

// BoltStore keeps the artifact in a bbolt database: one "meta" bucket for the
// version and timestamp, one "files" bucket with a JSON entry per file path.
// The database is opened per operation so no file lock outlives a call.
type BoltStore struct {
	path string
}

// NewBoltStore creates a store backed by the database file at path
func NewBoltStore(path string) *BoltStore {
	return &BoltStore{path: path}
}

// Path returns the database file location
func (s *BoltStore) Path() string {
	return s.path
}

func (s *BoltStore) open() (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := bolt.Open(s.path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return db, nil
}

// Load reads the artifact. Returns nil, nil if the database does not exist.
func (s *BoltStore) Load() (*model.CacheArtifact, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var artifact *model.CacheArtifact
	err = db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		if meta == nil {
			return nil
		}
		artifact = &model.CacheArtifact{
			Version:  string(meta.Get(keyVersion)),
			FileData: make(map[string]*model.FileCacheEntry),
		}
		if v := meta.Get(keyLastUpdate); v != nil {
			artifact.LastUpdate, _ = strconv.ParseInt(string(v), 10, 64)
		}

		files := tx.Bucket(bucketFiles)
		if files == nil {
			return nil
		}
		return files.ForEach(func(k, v []byte) error {
			// v is only valid inside the transaction; Unmarshal copies
			var entry model.FileCacheEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("unmarshal entry %q: %w", k, err)
			}
			artifact.FileData[string(k)] = &entry
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

// Save replaces the persisted artifact in a single transaction
func (s *BoltStore) Save(artifact *model.CacheArtifact) error {
	if artifact == nil {
		return fmt.Errorf("nil cache artifact")
	}

	encoded := make(map[string][]byte, len(artifact.FileData))
	for path, entry := range artifact.FileData {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal entry %q: %w", path, err)
		}
		encoded[path] = data
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		if err := meta.Put(keyVersion, []byte(artifact.Version)); err != nil {
			return err
		}
		if err := meta.Put(keyLastUpdate, []byte(strconv.FormatInt(artifact.LastUpdate, 10))); err != nil {
			return err
		}

		if err := tx.DeleteBucket(bucketFiles); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		files, err := tx.CreateBucket(bucketFiles)
		if err != nil {
			return err
		}
		for path, data := range encoded {
			if err := files.Put([]byte(path), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the database file. Deleting a missing file is not an error.
func (s *BoltStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete cache: %w", err)
	}
	return nil
}
