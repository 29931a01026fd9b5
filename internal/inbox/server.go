// Package inbox is the receiving side of endpoint mode: a small HTTP server that
// accepts posted captures and appends them to a daily note.
package inbox

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"quickcap/internal/logging"
	"quickcap/internal/model"
	"quickcap/internal/sink"
)

const DefaultAddr = "127.0.0.1:8787"

// maxBodyBytes bounds a single capture body.
const maxBodyBytes = 1 << 20

var ErrNoDir = errors.New("inbox directory is required")

type Config struct {
	Addr string
	// Dir is the daily-notes directory captures are appended to.
	Dir      string
	AuthType model.AuthType
	Token    string
	Username string
	Password string
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http    *http.Server
	logger  logging.Logger
	started time.Time
}

// New builds the router and the HTTP server. files writes the received captures.
func New(cfg Config, files *sink.FileSink, log logging.Logger) (*Server, error) {
	if cfg.Dir == "" {
		return nil, ErrNoDir
	}
	if cfg.AuthType == "" {
		cfg.AuthType = model.AuthNone
	}
	if !cfg.AuthType.Valid() {
		return nil, errors.New("invalid inbox auth type: " + string(cfg.AuthType))
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if log == nil {
		log = logging.Nop()
	}
	if files == nil {
		files = sink.NewFileSink(log)
	}

	started := time.Now()
	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(cfg, files, log, started),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	return &Server{http: s, logger: log, started: started}, nil
}

func newRouter(cfg Config, files *sink.FileSink, log logging.Logger, started time.Time) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(accessLog(log))

	r.Get("/healthz", healthz(started))
	r.Route("/api", func(r chi.Router) {
		r.Use(requireAuth(cfg))
		r.Post("/capture", captureHandler(cfg.Dir, files, log))
	})
	return r
}

// Handler exposes the router (tests drive it through httptest).
func (s *Server) Handler() http.Handler { return s.http.Handler }

func (s *Server) Addr() string { return s.http.Addr }

// Start runs the HTTP server and blocks until error or shutdown.
func (s *Server) Start() error {
	s.logger.Infof("inbox listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("inbox shutting down", logging.Duration("uptime", time.Since(s.started)))
	return s.http.Shutdown(ctx)
}
