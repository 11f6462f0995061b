package repository

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultReloadDelay is how long the watcher waits after the last change
// before rebuilding the catalog
const DefaultReloadDelay = 500 * time.Millisecond

// Watcher rebuilds the catalog snapshot when the data file or directory changes
type Watcher struct {
	watcher *fsnotify.Watcher
	holder  *Holder
	path    string
	isDir   bool
	delay   time.Duration
}

// NewWatcher watches path, a workflow file or a directory of them. A file is
// watched through its parent directory so that editors replacing the file
// by rename are still noticed.
func NewWatcher(holder *Holder, path string, delay time.Duration) (*Watcher, error) {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat watched path", goerr.V("path", path))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create file watcher")
	}

	target := path
	if !info.IsDir() {
		target = filepath.Dir(path)
	}
	if err := watcher.Add(target); err != nil {
		watcher.Close()
		return nil, goerr.Wrap(err, "failed to watch path", goerr.V("path", target))
	}

	if delay <= 0 {
		delay = DefaultReloadDelay
	}

	return &Watcher{
		watcher: watcher,
		holder:  holder,
		path:    path,
		isDir:   info.IsDir(),
		delay:   delay,
	}, nil
}

// Run watches for changes and reloads the catalog. Blocks until ctx is
// cancelled. Reloads run on this goroutine one at a time.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	logger := ctxlog.From(ctx)

	debounce := time.NewTimer(w.delay)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}

			logger.Debug("Workflow data changed", "path", event.Name, "op", event.Op.String())
			debounce.Reset(w.delay)

		case <-debounce.C:
			if err := w.holder.Reload(ctx); err != nil {
				logger.Error("Catalog hot-reload failed, keeping previous snapshot", "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Clean(event.Name)
	if w.isDir {
		return IsSupportedFile(name)
	}
	return name == w.path
}
