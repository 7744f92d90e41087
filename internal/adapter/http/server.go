package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ktg84478/erovista/internal/domain"
	"github.com/ktg84478/erovista/internal/session"
)

// Resolver answers configuration queries and reports readiness.
type Resolver interface {
	sharedobs.ReadinessChecker
	LookupCapacity(ctx context.Context, key domain.CapacityKey) ([]domain.MaterialCapacity, error)
	ResolveSizes(ctx context.Context, q domain.SizeQuery) ([]domain.MaterialSizes, error)
	AllowedValues(ctx context.Context, field domain.Field, sel domain.Selection) ([]string, error)
}

// SessionStore holds the per-session terms flag.
type SessionStore interface {
	Accept(id string) session.Session
	Accepted(id string) bool
}

// Server exposes the resolver API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer   *http.Server
	resolver     Resolver
	sessions     SessionStore
	requireTerms bool
	logger       *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the /api/v1 routes.
// When requireTerms is set, resolver routes answer 403 until the session accepts the terms.
func NewServer(addr string, resolver Resolver, sessions SessionStore, requireTerms bool, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		resolver:     resolver,
		sessions:     sessions,
		requireTerms: requireTerms,
		logger:       logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(resolver))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/terms", s.handleTermsStatus)
	mux.HandleFunc("POST /api/v1/terms", s.handleTermsAccept)
	mux.Handle("GET /api/v1/values/{field}", s.gate(s.handleValues))
	mux.Handle("GET /api/v1/capacity", s.gate(s.handleCapacity))
	mux.Handle("GET /api/v1/sizes", s.gate(s.handleSizes))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr, "require_terms", s.requireTerms)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
