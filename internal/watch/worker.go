package watch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/makesite/internal/logfields"
)

// BuildFunc runs one full build.
type BuildFunc func(ctx context.Context) error

// worker runs builds for requests read from reqs, one at a time. A request arriving
// during a build is kept as pending and served when the build finishes.
type worker struct {
	build  BuildFunc
	logger *slog.Logger

	mu      sync.Mutex
	builds  int
	lastErr error
}

func (w *worker) run(ctx context.Context, reqs <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-reqs:
			w.rebuild(ctx)
		}
	}
}

func (w *worker) rebuild(ctx context.Context) {
	start := time.Now()
	w.logger.Info("Rebuilding site")
	err := w.build(ctx)

	w.mu.Lock()
	w.builds++
	w.lastErr = err
	w.mu.Unlock()

	if err != nil {
		// The next change retries; the watch loop keeps running.
		w.logger.Warn("Rebuild failed", logfields.Error(err))
		return
	}
	w.logger.Info("Rebuild finished", logfields.Duration(time.Since(start)))
}

func (w *worker) stats() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.builds, w.lastErr
}
