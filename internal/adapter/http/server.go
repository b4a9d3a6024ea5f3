package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/didyoufeelit/internal/screen"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ScreenSource reports the screen's lifecycle state.
type ScreenSource interface {
	sharedobs.ReadinessChecker
	Status() screen.Status
}

// LabelSource reports the text currently on the screen's labels.
type LabelSource interface {
	Snapshot() screen.LabelSnapshot
}

// Server exposes health, readiness, metrics, and screen HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// screenResponse is the body of GET /screen.
type screenResponse struct {
	screen.Status
	Labels screen.LabelSnapshot `json:"labels"`
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /screen routes.
func NewServer(addr string, src ScreenSource, labels LabelSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(src))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /screen", handleScreen(src, labels))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
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

func handleScreen(src ScreenSource, labels LabelSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		sharedobs.WriteJSON(w, http.StatusOK, screenResponse{
			Status: src.Status(),
			Labels: labels.Snapshot(),
		})
	}
}

