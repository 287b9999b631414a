package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"wordcut/internal/api"
	"wordcut/internal/config"
	"wordcut/internal/logging"
	"wordcut/internal/render"
	"wordcut/internal/staging"
	"wordcut/internal/store"
)

// shutdownTimeout bounds how long Stop waits for in-flight HTTP requests.
const shutdownTimeout = 10 * time.Second

// stagingMaxAge is the idle age after which a project's transcription
// scratch directory is reclaimed at startup.
const stagingMaxAge = 7 * 24 * time.Hour

// Daemon coordinates the API server and export worker and enforces
// single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	server *api.Server
	worker *render.Worker

	lockPath string
	lock     *flock.Flock

	running   atomic.Bool
	cancel    context.CancelFunc
	serverErr chan error
}

// Status reports daemon runtime information.
type Status struct {
	Running      bool
	Bind         string
	DBPath       string
	LockFilePath string
	Jobs         store.HealthSummary
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, server *api.Server, worker *render.Worker, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil || server == nil || worker == nil {
		return nil, errors.New("daemon requires config, store, server, and worker")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "wordcutd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    st,
		server:   server,
		worker:   worker,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the lock, recovers interrupted jobs, and launches the worker
// and the HTTP server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another wordcut daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	if reset, err := d.store.ResetStuckExporting(runCtx); err != nil {
		d.logger.Warn("reset interrupted exports", logging.Error(err))
	} else if reset > 0 {
		d.logger.Info("requeued interrupted exports", "count", reset)
	}

	d.cleanStaging(runCtx)

	d.worker.Start(runCtx)

	d.serverErr = make(chan error, 1)
	go func() {
		d.serverErr <- d.server.Start()
	}()

	d.running.Store(true)
	d.logger.Info("wordcut daemon started", "bind", d.server.Addr(), "lock", d.lockPath)
	return nil
}

// cleanStaging reclaims scratch directories for deleted projects and
// directories idle past stagingMaxAge.
func (d *Daemon) cleanStaging(ctx context.Context) {
	summaries, err := d.store.ListProjects(ctx)
	if err != nil {
		d.logger.Warn("list projects for staging cleanup", logging.Error(err))
		return
	}
	active := make(map[string]struct{}, len(summaries))
	for _, s := range summaries {
		active[s.ID] = struct{}{}
	}

	orphaned := staging.CleanOrphaned(d.cfg.Paths.StagingDir, active, d.logger)
	stale := staging.CleanStale(d.cfg.Paths.StagingDir, stagingMaxAge, d.logger)
	if removed := len(orphaned.Removed) + len(stale.Removed); removed > 0 {
		d.logger.Info("staging cleanup complete", "removed", removed)
	}
}

// Wait blocks until the HTTP server exits, returning its error.
func (d *Daemon) Wait() error {
	if d.serverErr == nil {
		return nil
	}
	return <-d.serverErr
}

// Stop shuts the server and worker down and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := d.server.Shutdown(shutdownCtx); err != nil {
		d.logger.Warn("server shutdown", logging.Error(err))
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.worker.Stop()

	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("wordcut daemon stopped")
}

// Close stops the daemon and closes the store.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status summarizes the daemon's runtime state.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		Bind:         d.server.Addr(),
		DBPath:       d.store.Path(),
		LockFilePath: d.lockPath,
	}
	if health, err := d.store.Health(ctx); err == nil {
		status.Jobs = health
	}
	return status
}
