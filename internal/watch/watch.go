package watch

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jhaapala/libris/internal/debounce"
)

// Watcher runs a callback when a data file changes on disk. Events are
// debounced so an editor writing in several bursts triggers one reload.
type Watcher struct {
	fw       *fsnotify.Watcher
	deb      *debounce.Debouncer
	path     string
	onChange func()
	done     chan struct{}
}

// New starts watching path and calls onChange after window of quiet.
// The parent directory is watched instead of the file itself, which
// keeps the watch alive across atomic replace saves.
func New(path string, window time.Duration, onChange func()) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	watchDir := filepath.Dir(absPath)
	if err := fw.Add(watchDir); err != nil {
		closeErr := fw.Close()
		return nil, errors.Join(fmt.Errorf("failed to watch %s: %w", watchDir, err), closeErr)
	}

	w := &Watcher{
		fw:       fw,
		deb:      debounce.New(window),
		path:     absPath,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.loop()

	slog.Debug("Watching data file", "path", absPath, "window", window)
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)

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
			slog.Warn("File watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	slog.Debug("Data file changed", "path", w.path, "op", event.Op.String())
	w.deb.Trigger(w.onChange)
}

// Close stops watching and discards any pending callback.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	w.deb.Stop()
	return err
}
