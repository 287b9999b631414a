package daemon_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"wordcut/internal/api"
	"wordcut/internal/config"
	"wordcut/internal/cutter"
	"wordcut/internal/daemon"
	"wordcut/internal/project"
	"wordcut/internal/render"
	"wordcut/internal/script"
	"wordcut/internal/store"
)

func newTestDaemon(t *testing.T, cfg *config.Config) *daemon.Daemon {
	t.Helper()
	st, err := store.OpenPath(filepath.Join(cfg.Paths.LogDir, "wordcut.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	server := api.NewServer(api.ServerConfig{Bind: "127.0.0.1:0", Store: st})
	renderer := render.New(st, cutter.New("ffmpeg"), cfg.Paths.OutputDir, script.Options{}, nil)
	worker := render.NewWorker(st, renderer, 50*time.Millisecond, nil)

	d, err := daemon.New(cfg, st, server, worker, nil)
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	return d
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.OutputDir = filepath.Join(base, "exports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}
	return &cfg
}

func TestStartStopAndSingleInstanceLock(t *testing.T) {
	cfg := testConfig(t)
	d := newTestDaemon(t, cfg)

	ctx := context.Background()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer d.Stop()

	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second Start on a running daemon to fail")
	}

	second := newTestDaemon(t, cfg)
	if err := second.Start(ctx); err == nil {
		second.Stop()
		t.Fatal("expected lock conflict for second instance")
	}

	status := d.Status(ctx)
	if !status.Running {
		t.Fatal("expected running status")
	}
	if status.LockFilePath == "" || status.DBPath == "" {
		t.Fatalf("incomplete status: %+v", status)
	}

	d.Stop()
	// Lock released: a new instance can now start.
	if err := second.Start(ctx); err != nil {
		t.Fatalf("expected restart after stop, got %v", err)
	}
	second.Stop()
}

func TestStartRequeuesInterruptedExports(t *testing.T) {
	cfg := testConfig(t)

	st, err := store.OpenPath(filepath.Join(cfg.Paths.LogDir, "wordcut.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()
	if err := st.SaveProject(ctx, project.New("p1", "Project")); err != nil {
		t.Fatalf("save project: %v", err)
	}
	job, err := st.NewJob(ctx, "p1")
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	job.Status = store.StatusExporting
	if err := st.UpdateJob(ctx, job); err != nil {
		t.Fatalf("update job: %v", err)
	}
	_ = st.Close()

	d := newTestDaemon(t, cfg)
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	d.Stop()

	reopened, err := store.OpenPath(filepath.Join(cfg.Paths.LogDir, "wordcut.db"))
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	loaded, err := reopened.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if loaded.Status == store.StatusExporting {
		t.Fatal("expected interrupted job to leave exporting state")
	}
}
