// Package watcher keeps the index in step with the file system. It watches the
// project tree recursively and, after a quiet period per path, turns create and
// write events into updates and remove and rename events into removals.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"goto-endpoint/internal/analyzer"
	"goto-endpoint/internal/logger"
)

// DefaultDebounce is the quiet period applied when Options.Debounce is not positive
const DefaultDebounce = 500 * time.Millisecond

// Handler receives the debounced changes. *index.Manager implements it.
// IndexedFiles lets a removed or renamed directory drop the files under it.
type Handler interface {
	UpdateFile(ctx context.Context, path string)
	RemoveFile(path string)
	IndexedFiles() []string
}

// Options configures a Watcher. Include and Exclude use the same globs as
// analyzer.ScanDirectory.
type Options struct {
	Root     string
	Include  []string
	Exclude  []string
	Debounce time.Duration
}

type action int

const (
	actionUpdate action = iota
	actionRemove
)

// pending is the latest event seen for a path and its debounce timer
type pending struct {
	action action
	timer  *time.Timer
}

// Watcher dispatches file events under Options.Root to a Handler
type Watcher struct {
	fw      *fsnotify.Watcher
	opts    Options
	handler Handler

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	pending map[string]*pending
	stopped bool
}

// New creates a watcher for opts.Root. Call Start to begin watching.
func New(handler Handler, opts Options) (*Watcher, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}
	opts.Root = root
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		fw:      fw,
		opts:    opts,
		handler: handler,
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[string]*pending),
	}, nil
}

// Start registers every directory under the root and starts the event loop
func (w *Watcher) Start() error {
	if err := w.addTree(w.opts.Root); err != nil {
		return err
	}
	logger.Debug("[WATCH] Watching %s (%d dirs, debounce %v)", w.opts.Root, len(w.fw.WatchList()), w.opts.Debounce)

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop ends watching and drops pending events. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.cancel()
	err := w.fw.Close()
	w.wg.Wait()
	return err
}

// addTree watches dir and its subdirectories, pruning what the scanner prunes
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if analyzer.ShouldSkipDir(w.opts.Root, p, w.opts.Exclude) {
			return filepath.SkipDir
		}
		if err := w.fw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("[WATCH] %v", err)

		case <-w.ctx.Done():
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := event.Name

	// new directories are watched as they appear; files created inside them
	// before the watch was added are picked up by the walk
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !analyzer.ShouldSkipDir(w.opts.Root, path, w.opts.Exclude) {
				if err := w.addTree(path); err != nil {
					logger.Warn("[WATCH] %v", err)
				}
				w.scheduleTree(path)
			}
			return
		}
	}

	if !analyzer.ShouldIndex(w.opts.Root, path, w.opts.Include, w.opts.Exclude) {
		// a directory that moved or vanished takes its indexed files with it
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			w.scheduleRemoveTree(path)
		}
		return
	}

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		w.schedule(path, actionRemove)
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		w.schedule(path, actionUpdate)
	}
}

// scheduleTree queues an update for every indexable file already under dir
func (w *Watcher) scheduleTree(dir string) {
	files, err := analyzer.ScanDirectory(dir, nil, nil)
	if err != nil {
		return
	}
	for _, f := range files {
		if analyzer.ShouldIndex(w.opts.Root, f, w.opts.Include, w.opts.Exclude) {
			w.schedule(f, actionUpdate)
		}
	}
}

// scheduleRemoveTree queues a removal for every indexed file under dir
func (w *Watcher) scheduleRemoveTree(dir string) {
	prefix := dir + string(filepath.Separator)
	for _, f := range w.handler.IndexedFiles() {
		if strings.HasPrefix(f, prefix) {
			w.schedule(f, actionRemove)
		}
	}
}

// schedule records the latest action for path and restarts its quiet period
func (w *Watcher) schedule(path string, a action) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}

	if p, ok := w.pending[path]; ok {
		p.action = a
		p.timer.Reset(w.opts.Debounce)
		return
	}
	w.pending[path] = &pending{
		action: a,
		timer:  time.AfterFunc(w.opts.Debounce, func() { w.fire(path) }),
	}
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	p, ok := w.pending[path]
	if !ok || w.stopped {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	a := p.action
	w.mu.Unlock()

	switch a {
	case actionRemove:
		logger.Debug("[WATCH] removed %s", path)
		w.handler.RemoveFile(path)
	default:
		logger.Debug("[WATCH] changed %s", path)
		w.handler.UpdateFile(w.ctx, path)
	}
}
