// Package watch turns a directory into a drop zone: every file written into
// it is submitted for triage.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driving"
	"github.com/custodia-labs/minairva-cli/internal/logger"
)

// DefaultDebounce coalesces the burst of write events a single copy produces.
const DefaultDebounce = 250 * time.Millisecond

// ErrClosed is returned when a closed watcher is started.
var ErrClosed = errors.New("watch: watcher closed")

// Drop is one file that landed in the watched directory.
type Drop struct {
	Upload domain.Upload
}

// Handler receives the outcome of each dropped file.
// It may be called from several goroutines at once.
type Handler func(drop Drop, snap domain.Snapshot, err error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long a file must be quiet before it is submitted.
// Zero submits on the first event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// Watcher submits files dropped into a directory.
type Watcher struct {
	dir      string
	triage   driving.TriageOrchestrator
	debounce time.Duration

	mu      sync.Mutex
	closed  bool
	fsw     *fsnotify.Watcher
	pending map[string]*time.Timer
}

// New creates a watcher for dir. triage may be nil when only Drops is used.
func New(dir string, triage driving.TriageOrchestrator, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		triage:   triage,
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Drops starts watching and returns a channel of dropped files.
// The channel closes when ctx is cancelled or the watcher is closed.
func (w *Watcher) Drops(ctx context.Context) (<-chan Drop, error) {
	info, err := os.Stat(w.dir)
	if err != nil {
		return nil, fmt.Errorf("watch path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path error: %s is not a directory", w.dir)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrClosed
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.fsw = fsw

	out := make(chan Drop)
	ready := make(chan string, 16)
	done := make(chan struct{})
	go w.loop(ctx, fsw, out, ready, done)

	logger.Debug("watch: watching %s", w.dir)
	return out, nil
}

// Run submits every dropped file until ctx is cancelled.
// Submissions run concurrently; the orchestrator decides which result wins.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	if w.triage == nil {
		return errors.New("watch: triage orchestrator is required")
	}

	drops, err := w.Drops(ctx)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for drop := range drops {
		wg.Add(1)
		go func(d Drop) {
			defer wg.Done()
			logger.Info("watch: submitting %s", d.Upload.DisplayName())
			snap, err := w.triage.Submit(ctx, d.Upload)
			if handle != nil {
				handle(d, snap, err)
			}
		}(drop)
	}
	wg.Wait()
	return nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- Drop, ready chan string, done chan struct{}) {
	defer close(out)
	defer close(done)
	defer w.stopTimers()
	defer fsw.Close()

	emit := func(path string) bool {
		select {
		case out <- Drop{Upload: domain.NewUpload(path)}:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			drop := w.handleFsEvent(event)
			if drop == nil {
				continue
			}
			if w.debounce == 0 {
				if !emit(drop.Upload.Path) {
					return
				}
				continue
			}
			w.schedule(drop.Upload.Path, ready, done)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch: %v", err)
		case path := <-ready:
			if !emit(path) {
				return
			}
		}
	}
}

// schedule (re)starts the quiet-period timer for path.
func (w *Watcher) schedule(path string, ready chan<- string, done <-chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case ready <- path:
		case <-done:
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

// handleFsEvent returns the drop for a create or write of a visible regular file.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *Drop {
	rel, err := filepath.Rel(w.dir, event.Name)
	if err != nil {
		rel = filepath.Base(event.Name)
	}
	if isHidden(rel) {
		return nil
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return nil
	}

	info, statErr := os.Stat(event.Name)
	if statErr != nil || !info.Mode().IsRegular() {
		return nil
	}

	return &Drop{Upload: domain.NewUpload(event.Name)}
}

// isHidden reports whether any element of path starts with a dot.
// Editor swap files ending in "~" are treated as hidden too.
func isHidden(path string) bool {
	if strings.HasSuffix(path, "~") {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
