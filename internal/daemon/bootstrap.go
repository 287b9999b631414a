package daemon

import (
	"fmt"
	"log/slog"

	"wordcut/internal/api"
	"wordcut/internal/config"
	"wordcut/internal/cutter"
	"wordcut/internal/media/ffprobe"
	"wordcut/internal/render"
	"wordcut/internal/script"
	"wordcut/internal/store"
)

// Bootstrap wires the store, API server, and export worker from config and
// returns a daemon ready to Start. The daemon owns the store and closes it
// on Close.
func Bootstrap(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, fmt.Errorf("daemon: config is required")
	}

	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("daemon: open store: %w", err)
	}

	opts := script.Options{PauseThreshold: cfg.Editor.PauseThreshold}
	cut := cutter.New(cfg.Media.FFmpegBinary)
	renderer := render.New(st, cut, cfg.Paths.OutputDir, opts, logger)
	worker := render.NewWorker(st, renderer, render.DefaultPollInterval, logger)

	server := api.NewServer(api.ServerConfig{
		Bind:    cfg.Paths.APIBind,
		Token:   cfg.Paths.APIToken,
		Store:   st,
		Prober:  ffprobe.DurationProber{Binary: cfg.Media.FFprobeBinary},
		Options: opts,
		Logger:  logger,
	})

	d, err := New(cfg, st, server, worker, logger)
	if err != nil {
		st.Close()
		return nil, err
	}
	return d, nil
}
