// Package web exposes the maze rules and the strip sorter over HTTP: JSON
// endpoints for mazes, hints and stored results, and a server-sent event
// stream that replays a sort step by step.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/oilbox/internal/storage"
)

// Config holds HTTP server settings.
type Config struct {
	Addr string
	// MaxSegments caps the strip count a client may ask to sort.
	MaxSegments int
	// MaxDelay caps the per-step delay of a streamed sort.
	MaxDelay time.Duration
}

// DefaultConfig returns default HTTP server settings.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		MaxSegments: 512,
		MaxDelay:    time.Second,
	}
}

// Server serves the JSON API. The store may be nil, in which case the score
// and run endpoints answer 503 and sort runs are not recorded.
type Server struct {
	cfg    Config
	store  *storage.Store
	logger *log.Logger
	http   *http.Server
}

// NewServer creates a server. A nil logger discards output.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	def := DefaultConfig()
	if cfg.MaxSegments <= 0 {
		cfg.MaxSegments = def.MaxSegments
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = def.MaxDelay
	}
	s := &Server{cfg: cfg, store: store, logger: logger}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(15 * time.Second))
			r.Get("/games", s.listGames)
			r.Get("/maze", s.generateMaze)
			r.Post("/maze/hint", s.mazeHint)
			r.Get("/scores/{game}", s.topScores)
			r.Get("/runs", s.recentRuns)
			r.Get("/runs/{runID}", s.sortRun)
		})
		// Streams run as long as the sort does.
		r.Get("/sort/{algorithm}", s.streamSort)
	})
	return r
}

// ListenAndServe starts serving. It returns nil after Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting HTTP server", "addr", s.cfg.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.http.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
