// Package http exposes the verse service over HTTP and provides a client for
// talking to a running server.
package http

import (
	"log/slog"
	"net/http"

	"github.com/fwojciec/shlok"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP front end for a verse service.
type Server struct {
	router   chi.Router
	verses   shlok.VerseService
	chapters []shlok.Chapter
	limiter  *ClientLimiter
	logger   *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithRateLimit limits each client to rps requests per second with the given
// burst. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) ServerOption {
	return func(s *Server) {
		if rps > 0 {
			s.limiter = NewClientLimiter(rps, burst)
		}
	}
}

// NewServer creates a Server and registers its routes.
func NewServer(verses shlok.VerseService, logger *slog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		verses:   verses,
		chapters: shlok.Chapters,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(RequestLogger(s.logger))
	if s.limiter != nil {
		r.Use(RateLimit(s.limiter))
	}

	r.Get("/health", s.handleHealth)

	r.Get("/api/shlok", s.handleShlok)
	r.Get("/api/position", s.handlePosition)
	r.Get("/api/chapters", s.handleChapters)

	r.Get("/shlok/{index}", s.handlePage)

	s.router = r
}
