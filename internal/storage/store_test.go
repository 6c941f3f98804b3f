package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goto-endpoint/internal/model"
)

func makeTestArtifact() *model.CacheArtifact {
	artifact := model.NewCacheArtifact()
	artifact.LastUpdate = 1700000000123
	artifact.FileData["/src/UserController.java"] = &model.FileCacheEntry{
		LastModified: 1700000000000000001,
		Endpoints: []model.Endpoint{{
			FullPath:           "/api/users/{id}",
			RawPath:            "/api/users/{id}",
			OriginalClassPath:  "/api/users",
			OriginalMethodPath: "/{id}",
			HTTPMethod:         model.MethodGet,
			ClassName:          "UserController",
			MethodName:         "getUser",
			FilePath:           "/src/UserController.java",
			StartLine:          12,
			StartColumn:        5,
			EndLine:            12,
			EndColumn:          25,
		}},
	}
	// a file without endpoints is a cached fact too
	artifact.FileData["/src/UserService.java"] = &model.FileCacheEntry{
		LastModified: 1700000000000000002,
		Endpoints:    []model.Endpoint{},
	}
	return artifact
}

// backends returns one fresh store per backend
func backends(t *testing.T) map[string]CacheStore {
	t.Helper()
	dir := t.TempDir()
	return map[string]CacheStore{
		BackendBolt: NewBoltStore(filepath.Join(dir, "bolt", BoltFileName)),
		BackendJSON: NewJSONStore(filepath.Join(dir, "json", JSONFileName)),
	}
}

func TestStore_SaveLoad_Roundtrip(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			original := makeTestArtifact()
			require.NoError(t, store.Save(original))

			loaded, err := store.Load()
			require.NoError(t, err)
			require.NotNil(t, loaded)

			assert.Equal(t, model.CacheVersion, loaded.Version)
			assert.Equal(t, original.LastUpdate, loaded.LastUpdate)
			require.Len(t, loaded.FileData, 2)
			assert.Equal(t, original.FileData["/src/UserController.java"], loaded.FileData["/src/UserController.java"])

			empty := loaded.FileData["/src/UserService.java"]
			require.NotNil(t, empty)
			assert.Equal(t, int64(1700000000000000002), empty.LastModified)
			assert.Empty(t, empty.Endpoints)
		})
	}
}

func TestStore_LoadMissing(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			artifact, err := store.Load()
			require.NoError(t, err)
			assert.Nil(t, artifact)
			_, statErr := os.Stat(store.Path())
			assert.True(t, os.IsNotExist(statErr), "Load must not create the artifact")
		})
	}
}

func TestStore_SaveReplacesEntries(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(makeTestArtifact()))

			smaller := model.NewCacheArtifact()
			smaller.FileData["/src/Other.java"] = &model.FileCacheEntry{LastModified: 7}
			require.NoError(t, store.Save(smaller))

			loaded, err := store.Load()
			require.NoError(t, err)
			require.Len(t, loaded.FileData, 1)
			assert.Contains(t, loaded.FileData, "/src/Other.java")
		})
	}
}

func TestStore_VersionIsReturnedAsStored(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			artifact := makeTestArtifact()
			artifact.Version = "0.9.0"
			require.NoError(t, store.Save(artifact))

			loaded, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, "0.9.0", loaded.Version)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(makeTestArtifact()))
			require.NoError(t, store.Delete())

			artifact, err := store.Load()
			require.NoError(t, err)
			assert.Nil(t, artifact)

			// idempotent
			assert.NoError(t, store.Delete())
		})
	}
}

func TestJSONStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), JSONFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewJSONStore(path).Load()
	assert.Error(t, err)
}

func TestBoltStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), BoltFileName)
	require.NoError(t, os.WriteFile(path, []byte("definitely not a bbolt file, just some bytes"), 0644))

	_, err := NewBoltStore(path).Load()
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	store, err := New("", dir)
	require.NoError(t, err)
	assert.IsType(t, &BoltStore{}, store)
	assert.Equal(t, filepath.Join(dir, BoltFileName), store.Path())

	store, err = New("JSON", dir)
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, store)
	assert.Equal(t, filepath.Join(dir, JSONFileName), store.Path())

	_, err = New("sqlite", dir)
	assert.Error(t, err)
}
