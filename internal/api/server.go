package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"wordcut/internal/logging"
	"wordcut/internal/script"
	"wordcut/internal/store"
)

// Prober resolves a media file's duration in seconds. Implemented by the
// ffprobe wrapper; faked in tests.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// ServerConfig wires the handlers' collaborators.
type ServerConfig struct {
	Bind      string
	Token     string
	Store     *store.Store
	Prober    Prober
	Options   script.Options
	Logger    *slog.Logger
	StartTime time.Time
}

// Server wraps the HTTP listener lifecycle.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the server from config; it does not start listening.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.StartTime.IsZero() {
		cfg.StartTime = time.Now()
	}
	router := NewRouter(cfg)
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Bind,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logging.NewComponentLogger(cfg.Logger, "api"),
	}
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured bind address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
