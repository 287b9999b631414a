package render

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wordcut/internal/logging"
	"wordcut/internal/store"
)

// DefaultPollInterval is how often the worker checks for pending jobs.
const DefaultPollInterval = time.Second

// Worker drains pending export jobs sequentially. Exports are ffmpeg-bound,
// so one at a time keeps disk and CPU pressure predictable.
type Worker struct {
	store    *store.Store
	renderer *Renderer
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWorker creates a worker polling the store at the given interval.
func NewWorker(st *store.Store, renderer *Renderer, interval time.Duration, logger *slog.Logger) *Worker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Worker{
		store:    st,
		renderer: renderer,
		interval: interval,
		logger:   logging.NewComponentLogger(logger, "export-worker"),
	}
}

// Start launches the polling loop. Calling Start on a running worker is a
// no-op.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.loop(runCtx)
}

// Stop cancels the loop and waits for the in-flight job, if any, to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	done := w.done
	w.cancel = nil
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *Worker) loop(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		w.drain(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// drain runs every pending job until the queue is empty or the context ends.
func (w *Worker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		job, err := w.store.NextPending(ctx)
		if err != nil {
			w.logger.Error("poll pending jobs", logging.Error(err))
			return
		}
		if job == nil {
			return
		}
		if err := w.renderer.Export(ctx, job); err != nil {
			// Export already recorded the failure on the job row.
			continue
		}
	}
}
