package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/makesite/internal/foundation/paths"
	"git.home.luguber.info/inful/makesite/internal/logfields"
)

// Options configures a Watcher.
type Options struct {
	// Dirs are watched recursively. Missing directories are skipped.
	Dirs []string
	// Exclude lists directories whose events never trigger a rebuild, such as the
	// output directory.
	Exclude []string
	// Debounce is the quiet period after the last event before a rebuild.
	Debounce time.Duration
	// Interval adds a rebuild on a fixed period when positive.
	Interval time.Duration
	Logger   *slog.Logger
}

// Watcher rebuilds when watched inputs change.
type Watcher struct {
	opts   Options
	logger *slog.Logger
	worker *worker
}

// New returns a Watcher that calls build for every rebuild.
func New(build BuildFunc, opts Options) *Watcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	return &Watcher{
		opts:   opts,
		logger: logger,
		worker: &worker{build: build, logger: logger},
	}
}

// Builds returns the number of finished builds and the error of the last one.
func (w *Watcher) Builds() (int, error) {
	return w.worker.stats()
}

// Run builds once, then rebuilds on changes until ctx is done. It returns nil on
// cancellation; a build in progress is canceled through ctx.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() {
		_ = fsw.Close()
	}()

	for _, dir := range w.opts.Dirs {
		if err := w.addDirsRecursive(fsw, dir); err != nil {
			return err
		}
	}

	debouncer := NewDebouncer(w.opts.Debounce)
	defer debouncer.Stop()

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker.run(ctx, debouncer.C())
	}()
	defer wg.Wait()
	defer cancel()

	if w.opts.Interval > 0 {
		sched, err := NewScheduler(w.opts.Interval, debouncer.Request)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				w.logger.Warn("Scheduler shutdown error", logfields.Error(err))
			}
		}()
	}

	debouncer.Request()
	w.logger.Info("Watching for changes", logfields.Count(len(w.opts.Dirs)))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping watch")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, debouncer)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, d *Debouncer) {
	if ShouldIgnore(ev.Name) || w.excluded(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(fsw, ev.Name)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
	d.Trigger()
}

func (w *Watcher) excluded(path string) bool {
	for _, dir := range w.opts.Exclude {
		if paths.Within(path, dir) {
			return true
		}
	}
	return false
}

func (w *Watcher) addDirsRecursive(fsw *fsnotify.Watcher, root string) error {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		w.logger.Warn("Watch directory not found", logfields.Path(root))
		return nil
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ShouldIgnore(path) || w.excluded(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}
