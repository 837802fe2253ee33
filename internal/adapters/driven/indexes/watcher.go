package indexes

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/maktaba-labs/maktaba-cli/internal/logger"
)

// DebounceInterval collapses the burst of events editors emit per save.
const DebounceInterval = 200 * time.Millisecond

// Watcher calls back when an index catalog file changes on disk.
type Watcher struct {
	fw      *fsnotify.Watcher
	path    string
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher watches the file at path. The parent directory is watched
// so the file can be replaced by rename, as most editors do.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		fw:   fw,
		path: abs,
		done: make(chan struct{}),
	}, nil
}

// Watch runs onChange once per debounced burst of writes, creates or
// renames of the watched file. It returns immediately; events are
// handled until ctx is done or Stop is called.
func (w *Watcher) Watch(ctx context.Context, onChange func(ctx context.Context)) {
	go func() {
		var (
			timer *time.Timer
			fire  <-chan time.Time
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(DebounceInterval)
				} else {
					timer.Reset(DebounceInterval)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				onChange(ctx)

			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				logger.Warn("index watcher: %v", err)

			case <-ctx.Done():
				return
			case <-w.done:
				return
			}
		}
	}()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}
