// Package index keeps the endpoint index of a source tree: a file cache keyed
// by mtime, an insertion-ordered store, and the manager coordinating both.
package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"goto-endpoint/internal/analyzer"
	"goto-endpoint/internal/logger"
	"goto-endpoint/internal/model"
	"goto-endpoint/internal/search"
	"goto-endpoint/internal/storage"
)

// State is the manager's lifecycle state
type State int

const (
	StateIdle State = iota
	StateBuilding
	StateUpdatingFile
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateUpdatingFile:
		return "updating"
	default:
		return "unknown"
	}
}

// ErrBuildInProgress is returned when Build is called while another build runs
var ErrBuildInProgress = errors.New("index build already in progress")

const (
	// DefaultConcurrencyLimit applies when Options.ConcurrencyLimit is not positive
	DefaultConcurrencyLimit = 20

	// maxBatchSize caps the amplified batch size
	maxBatchSize = 100
)

// Analyzer extracts endpoints from one file's content.
// *analyzer.Extractor implements it.
type Analyzer interface {
	Analyze(ctx context.Context, filePath string, src []byte) analyzer.Result
}

// Options configures a Manager
type Options struct {
	ConcurrencyLimit int                // amplified into the batch size, see batchSize
	EnableCache      bool               // consult and persist the file cache
	Encoding         string             // source encoding, see analyzer.ReadSource
	CacheStore       storage.CacheStore // nil disables persistence
	SearchLimit      int                // 0 = unlimited
}

// ProgressFunc receives the number of processed files after each batch
type ProgressFunc func(done, total int)

// BuildStats summarizes one Build
type BuildStats struct {
	Files     int // unique candidate files
	Parsed    int // extracted (cache miss)
	Cached    int // reused from the file cache
	Skipped   int // no endpoint annotation, parsers not run
	Failed    int // unreadable or vanished
	Pruned    int // indexed before but no longer among the candidates
	Endpoints int // total endpoints in the index afterwards
	Cancelled bool
	Duration  time.Duration
}

type fileOutcome int

const (
	outcomeParsed fileOutcome = iota
	outcomeCached
	outcomeSkipped
	outcomeFailed
	outcomeAborted // cancelled before it started, nothing to commit
)

// fileResult is what a worker computed for one file. The coordinator commits it.
type fileResult struct {
	path      string
	mtime     time.Time
	endpoints []model.Endpoint
	outcome   fileOutcome
}

// Manager owns the file cache and the store and keeps them consistent
// across builds, single-file updates and removals.
type Manager struct {
	opts      Options
	extractor Analyzer
	engine    *search.Engine

	mu    sync.RWMutex // guards store and cache
	store *Store
	cache *FileCache

	stateMu  sync.Mutex
	building bool
	updating bool

	// serializes UpdateFile and RemoveFile; Build waits on it before committing
	updateMu sync.Mutex

	listenersMu sync.Mutex
	listeners   []func(count int)
	progress    ProgressFunc
}

// NewManager creates a manager using extractor for cache misses
func NewManager(extractor Analyzer, opts Options) *Manager {
	if opts.ConcurrencyLimit <= 0 {
		opts.ConcurrencyLimit = DefaultConcurrencyLimit
	}
	return &Manager{
		opts:      opts,
		extractor: extractor,
		engine:    search.NewEngine(opts.SearchLimit),
		store:     NewStore(),
		cache:     NewFileCache(),
	}
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	switch {
	case m.building:
		return StateBuilding
	case m.updating:
		return StateUpdatingFile
	default:
		return StateIdle
	}
}

// OnIndexChanged subscribes fn to index-changed notifications.
// fn receives the new total endpoint count.
func (m *Manager) OnIndexChanged(fn func(count int)) {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// OnProgress sets the build progress callback
func (m *Manager) OnProgress(fn ProgressFunc) {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()
	m.progress = fn
}

func (m *Manager) notify() {
	count := m.TotalEndpoints()
	m.listenersMu.Lock()
	listeners := append([]func(int){}, m.listeners...)
	m.listenersMu.Unlock()
	for _, fn := range listeners {
		fn(count)
	}
}

func (m *Manager) reportProgress(done, total int) {
	m.listenersMu.Lock()
	fn := m.progress
	m.listenersMu.Unlock()
	if fn != nil {
		fn(done, total)
	}
}

// LoadCache reads the persisted artifact and restores its entries into the
// store. An unreadable or outdated artifact leaves everything empty; an
// unreadable one is deleted so the next save can recreate it.
// Returns the number of files restored with endpoints.
func (m *Manager) LoadCache() int {
	if !m.opts.EnableCache || m.opts.CacheStore == nil {
		return 0
	}

	artifact, err := m.opts.CacheStore.Load()

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		logger.Warn("[CACHE] Discarding unreadable cache %s: %v", m.opts.CacheStore.Path(), err)
		m.cache.Clear()
		if err := m.opts.CacheStore.Delete(); err != nil {
			logger.Warn("[CACHE] %v", err)
		}
		return 0
	}
	if !m.cache.Restore(artifact) {
		return 0
	}

	restored := 0
	for _, path := range m.cache.Paths() {
		endpoints, _ := m.cache.Entry(path)
		if len(endpoints) > 0 {
			m.store.Set(path, endpoints)
			restored++
		}
	}
	logger.Debug("[CACHE] Restored %d files (%d endpoints) from %s", restored, m.store.Total(), m.opts.CacheStore.Path())
	return restored
}

// Build indexes files, reusing fresh cache entries. Duplicate paths are
// processed once. files is the complete candidate set: once the build
// completes, entries for any other path are dropped. ctx is checked between
// batches; a cancelled build keeps what it already committed, prunes nothing
// and still persists the cache.
func (m *Manager) Build(ctx context.Context, files []string) (BuildStats, error) {
	return m.build(ctx, files, false)
}

// ClearCacheAndRebuild drops the cache, the store and the persisted artifact,
// then builds from scratch.
func (m *Manager) ClearCacheAndRebuild(ctx context.Context, files []string) (BuildStats, error) {
	return m.build(ctx, files, true)
}

func (m *Manager) build(ctx context.Context, files []string, reset bool) (stats BuildStats, err error) {
	if !m.beginBuild() {
		logger.Warn("[INDEX] Build requested while another build is running, ignored")
		return stats, ErrBuildInProgress
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("index build panic: %v", r)
			logger.Error("[INDEX] %v", err)
		}
		m.endBuild()
	}()

	// wait for an in-flight UpdateFile; later ones see the build flag
	m.updateMu.Lock()
	m.updateMu.Unlock()

	if reset {
		m.mu.Lock()
		m.cache.Clear()
		m.store.Clear()
		m.mu.Unlock()
		if m.opts.CacheStore != nil {
			if err := m.opts.CacheStore.Delete(); err != nil {
				logger.Warn("[CACHE] %v", err)
			}
		}
		logger.Info("[CACHE] Cache cleared")
	}

	unique := dedupe(files)
	stats.Files = len(unique)
	size := batchSize(m.opts.ConcurrencyLimit)
	logger.Debug("[INDEX] Building %d files (batch %d, limit %d)", len(unique), size, m.opts.ConcurrencyLimit)

	for from := 0; from < len(unique); from += size {
		if ctx.Err() != nil {
			stats.Cancelled = true
			logger.Info("[INDEX] Build cancelled after %d/%d files", from, len(unique))
			break
		}
		to := min(from+size, len(unique))
		m.commit(m.processBatch(ctx, unique[from:to]), &stats)
		m.reportProgress(to, len(unique))
	}
	if ctx.Err() != nil {
		// workers that had not started yet were dropped
		stats.Cancelled = true
	}
	if !stats.Cancelled {
		stats.Pruned = m.prune(unique)
	}

	m.persist()

	stats.Endpoints = m.TotalEndpoints()
	stats.Duration = time.Since(start)
	if stats.Files > 0 && stats.Endpoints == 0 && !stats.Cancelled {
		logger.Warn("[INDEX] %d files scanned but no endpoints found", stats.Files)
	}
	logger.Debug("[INDEX] Build done: %d parsed, %d cached, %d skipped, %d failed, %d pruned, %d endpoints in %v",
		stats.Parsed, stats.Cached, stats.Skipped, stats.Failed, stats.Pruned, stats.Endpoints, stats.Duration)

	m.notify()
	return stats, nil
}

func (m *Manager) beginBuild() bool {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	if m.building {
		return false
	}
	m.building = true
	return true
}

func (m *Manager) endBuild() {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.building = false
}

// batchSize amplifies the concurrency limit for I/O-bound parsing, up to a ceiling
func batchSize(limit int) int {
	return max(1, min(limit*3, maxBatchSize))
}

// dedupe drops repeated paths, keeping the first occurrence
func dedupe(files []string) []string {
	seen := make(map[string]bool, len(files))
	unique := make([]string, 0, len(files))
	for _, f := range files {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		unique = append(unique, f)
	}
	return unique
}

// processBatch runs the whole batch at once, one worker per file.
// Workers only read the cache; results come back by index.
func (m *Manager) processBatch(ctx context.Context, batch []string) []fileResult {
	results := make([]fileResult, len(batch))

	var g errgroup.Group
	g.SetLimit(len(batch))
	for i, path := range batch {
		g.Go(func() error {
			results[i] = m.processFile(ctx, path, m.opts.EnableCache)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// processFile computes the endpoints of one file. A worker that starts after
// ctx is cancelled does nothing; one that already started runs to completion.
func (m *Manager) processFile(ctx context.Context, path string, useCache bool) (res fileResult) {
	res = fileResult{path: path}
	if ctx.Err() != nil {
		res.outcome = outcomeAborted
		return res
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("[INDEX] %s: extraction panic: %v", path, r)
			res = fileResult{path: path, outcome: outcomeFailed}
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		m.logFileError(path, err)
		res.outcome = outcomeFailed
		return res
	}
	res.mtime = info.ModTime()

	if useCache {
		m.mu.RLock()
		endpoints, fresh := m.cache.Fresh(path, res.mtime)
		m.mu.RUnlock()
		if fresh {
			res.endpoints = endpoints
			res.outcome = outcomeCached
			return res
		}
	}

	src, err := analyzer.ReadSource(path, m.opts.Encoding)
	if err != nil {
		m.logFileError(path, err)
		res.outcome = outcomeFailed
		return res
	}

	result := m.extractor.Analyze(context.WithoutCancel(ctx), path, src)
	res.endpoints = result.Endpoints
	if result.Prefiltered {
		res.outcome = outcomeSkipped
	} else {
		res.outcome = outcomeParsed
	}
	return res
}

func (m *Manager) logFileError(path string, err error) {
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("[INDEX] %s vanished: %v", path, err)
		return
	}
	logger.Warn("[INDEX] %s: %v", path, err)
}

// commit applies one batch of results. Each file's store and cache entries
// change together under the write lock.
func (m *Manager) commit(results []fileResult, stats *BuildStats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, res := range results {
		switch res.outcome {
		case outcomeAborted:
			continue
		case outcomeFailed:
			stats.Failed++
			m.store.Delete(res.path)
			m.cache.Delete(res.path)
		case outcomeCached:
			stats.Cached++
			m.store.Set(res.path, res.endpoints)
		default:
			if res.outcome == outcomeSkipped {
				stats.Skipped++
			} else {
				stats.Parsed++
			}
			m.store.Set(res.path, res.endpoints)
			if m.opts.EnableCache {
				m.cache.Put(res.path, res.mtime, res.endpoints)
			}
		}
	}
}

// prune drops the store and cache entries of every path outside keep, such
// as files deleted or newly excluded since the cache was written.
// Returns the number of paths dropped.
func (m *Manager) prune(keep []string) int {
	wanted := make(map[string]bool, len(keep))
	for _, path := range keep {
		wanted[path] = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	pruned := make(map[string]bool)
	for _, path := range m.store.Paths() {
		if !wanted[path] {
			m.store.Delete(path)
			pruned[path] = true
		}
	}
	for _, path := range m.cache.Paths() {
		if !wanted[path] {
			m.cache.Delete(path)
			pruned[path] = true
		}
	}
	if len(pruned) > 0 {
		logger.Debug("[INDEX] Pruned %d files no longer in the project", len(pruned))
	}
	return len(pruned)
}

// SaveCache persists the file cache now. Build saves on its own; UpdateFile
// and RemoveFile only touch memory, so long-running callers save on exit.
// It is a no-op while a build runs, since the build saves when it ends.
func (m *Manager) SaveCache() {
	m.updateMu.Lock()
	defer m.updateMu.Unlock()
	if m.State() == StateBuilding {
		logger.Debug("[CACHE] Save skipped: build in progress")
		return
	}
	m.persist()
}

// persist writes the file cache through the cache store
func (m *Manager) persist() {
	if !m.opts.EnableCache || m.opts.CacheStore == nil {
		return
	}
	m.mu.RLock()
	artifact := m.cache.Artifact()
	m.mu.RUnlock()

	if err := m.opts.CacheStore.Save(artifact); err != nil {
		logger.Warn("[CACHE] Failed to save %s: %v", m.opts.CacheStore.Path(), err)
		return
	}
	logger.Debug("[CACHE] Saved %d entries to %s", len(artifact.FileData), m.opts.CacheStore.Path())
}

func (m *Manager) beginUpdate() bool {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	if m.building {
		return false
	}
	m.updating = true
	return true
}

func (m *Manager) endUpdate() {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.updating = false
}

// UpdateFile re-extracts path, ignoring the freshness check, and replaces its
// entries. It is a no-op while a build runs. A file that can no longer be
// read is removed from the index.
func (m *Manager) UpdateFile(ctx context.Context, path string) {
	m.updateMu.Lock()
	defer m.updateMu.Unlock()
	if !m.beginUpdate() {
		logger.Debug("[INDEX] Update of %s skipped: build in progress", path)
		return
	}
	defer m.endUpdate()

	res := m.processFile(ctx, path, false)

	if res.outcome == outcomeAborted {
		return
	}

	m.mu.Lock()
	if res.outcome == outcomeFailed {
		m.store.Delete(path)
		m.cache.Delete(path)
	} else {
		m.store.Set(path, res.endpoints)
		if m.opts.EnableCache {
			m.cache.Put(path, res.mtime, res.endpoints)
		}
	}
	m.mu.Unlock()

	logger.Debug("[INDEX] Updated %s: %d endpoints", path, len(res.endpoints))
	m.notify()
}

// RemoveFile drops path from the index and the cache. It is a no-op while a
// build runs. Listeners are notified only if the file had endpoints.
func (m *Manager) RemoveFile(path string) {
	m.updateMu.Lock()
	defer m.updateMu.Unlock()
	if !m.beginUpdate() {
		logger.Debug("[INDEX] Removal of %s skipped: build in progress", path)
		return
	}
	defer m.endUpdate()

	m.mu.Lock()
	existed := m.store.Delete(path)
	m.cache.Delete(path)
	m.mu.Unlock()

	if existed {
		logger.Debug("[INDEX] Removed %s", path)
		m.notify()
	}
}

// Lookup returns the endpoints indexed for exactly path. It never parses.
func (m *Manager) Lookup(path string) ([]model.Endpoint, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Get(path)
}

// Search ranks the indexed endpoints against query
func (m *Manager) Search(query string) []model.Endpoint {
	return m.engine.Search(m.AllEndpoints(), query)
}

// AllEndpoints returns a snapshot of every indexed endpoint
func (m *Manager) AllEndpoints() []model.Endpoint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.All()
}

// TotalEndpoints returns the number of indexed endpoints
func (m *Manager) TotalEndpoints() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Total()
}

// IndexedFiles returns the paths holding endpoints, in insertion order
func (m *Manager) IndexedFiles() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Paths()
}
