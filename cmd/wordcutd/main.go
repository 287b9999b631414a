// Command wordcutd runs the wordcut daemon: the HTTP editing API and the
// export worker, sharing one SQLite store.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"wordcut/internal/config"
	"wordcut/internal/daemon"
	"wordcut/internal/logging"
	"wordcut/internal/preflight"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewForDir(cfg.Paths.LogDir, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	results := preflight.RunAll(ctx, cfg)
	for _, r := range results {
		if !r.Passed {
			logger.Error("preflight check failed", "check", r.Name, "detail", r.Detail)
		}
	}
	if !preflight.Passed(results) {
		log.Fatal("preflight checks failed")
	}

	d, err := daemon.Bootstrap(cfg, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("start daemon", logging.Error(err))
		return
	}

	done := make(chan error, 1)
	go func() { done <- d.Wait() }()

	select {
	case <-ctx.Done():
		logger.Info("wordcutd shutting down")
	case err := <-done:
		if err != nil {
			logger.Error("http server", logging.Error(err))
		}
	}
	d.Stop()
}
