// Package watch re-runs a dump whenever the target file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hexwalk/hexwalk/pkg/log"
)

// DefaultDebounce is the delay between the last observed change and the
// re-dump it triggers.
const DefaultDebounce = 100 * time.Millisecond

// Watcher monitors a single file and invokes a callback after each change,
// debouncing rapid event bursts so a file written in several chunks is
// dumped once. Events for sibling files in the same directory are ignored.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   log.Logger
	run      func(context.Context) error
}

// New creates a watcher for path that invokes run after each change.
func New(path string, debounce time.Duration, logger log.Logger, run func(context.Context) error) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{path: path, debounce: debounce, logger: logger, run: run}
}

// Watch blocks until ctx is cancelled, invoking the callback after each
// write or create event on the target file. The parent directory is watched
// rather than the file itself so the watch survives rename-and-replace
// writers.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	w.logger.Info("watching for changes", log.String("path", w.path))

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !matches(ev, target) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger.Info("file changed, dumping again", log.String("path", w.path))
			if err := w.run(ctx); err != nil {
				return err
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", log.Err(err))
		}
	}
}

// matches reports whether ev is a content change of the watched file.
func matches(ev fsnotify.Event, target string) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return abs == target
}
