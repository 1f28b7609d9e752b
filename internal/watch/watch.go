package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/logger"
)

// Reloader is refreshed when the watched file changes on disk
type Reloader interface {
	Reload() error
}

// Watcher reloads a Reloader after another process rewrites the storage file.
// It watches the parent directory so atomic rename-over writes are seen.
type Watcher struct {
	path     string
	target   Reloader
	debounce time.Duration
	onReload func(error)

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	doneCh chan struct{}

	mu      sync.Mutex
	running bool
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// OnReload registers a callback run after every reload attempt
func OnReload(fn func(error)) Option {
	return func(w *Watcher) { w.onReload = fn }
}

func New(path string, target Reloader, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w := &Watcher{
		path:     abs,
		target:   target,
		debounce: constants.WatchDebounceMs * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching until ctx is cancelled or Stop is called
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	w.fsw = fsw
	w.running = true
	go w.run(ctx)

	logger.Debug("Watching storage file", "path", w.path)
	return nil
}

// Stop ends the watch loop and waits for it to exit. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.fsw.Close(); err != nil {
		logger.Warn("Failed to close file watcher", "error", err)
	}
}

// Done is closed once the watch loop has exited
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

// relevant matches the storage file and its sqlite sidecar files
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(ev.Name)
	return name == w.path || name == w.path+"-wal" || name == w.path+"-journal"
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("File watcher error", "error", err)

		case <-fire:
			fire = nil
			err := w.target.Reload()
			if err != nil {
				logger.Warn("Failed to reload storage after external change", "path", w.path, "error", err)
			} else {
				logger.Debug("Reloaded storage after external change", "path", w.path)
			}
			if w.onReload != nil {
				w.onReload(err)
			}
		}
	}
}
