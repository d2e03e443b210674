package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher reloads the holder when a local custom questions file changes.
// The parent directory is watched so editors that replace the file on save
// are picked up too.
type Watcher struct {
	path     string
	holder   *Holder
	watcher  *fsnotify.Watcher
	debounce time.Duration

	started  atomic.Bool
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for path
func NewWatcher(path string, holder *Holder) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve custom questions path", goerr.V(LocationKey, path))
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create file watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, goerr.Wrap(err, "failed to watch custom questions directory", goerr.V(LocationKey, abs))
	}

	return &Watcher{
		path:     abs,
		holder:   holder,
		watcher:  fw,
		debounce: defaultDebounce,
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine
func (w *Watcher) Start(ctx context.Context) {
	logging.Default().Info("Catalog file watcher starting", "path", w.path)
	w.started.Store(true)
	go w.run(ctx)
}

// Stop stops watching and waits for the loop to exit
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		_ = w.watcher.Close()
		if w.started.Load() {
			<-w.doneCh
		}
		logging.Default().Info("Catalog file watcher stopped")
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			logging.Default().Info("Custom questions changed, reloading catalog", "path", w.path)
			w.holder.Reload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Default().Warn("Catalog file watcher error", "error", err.Error())

		case <-ctx.Done():
			return
		}
	}
}
