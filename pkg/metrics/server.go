package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-grapheditor/pkg/logging"
)

// Server exposes a registry over HTTP at /metrics, with a /health probe.
type Server struct {
	server *http.Server
	logger logging.Logger
}

// Handler returns the HTTP handler serving r. A nil registry serves the
// default one.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		r = DefaultRegistry()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}

// NewServer creates a metrics server listening on addr.
func NewServer(addr string, r *Registry, logger logging.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      r.Handler(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  15 * time.Second,
		},
		logger: logging.OrNop(logger).With(logging.Component("metrics")),
	}
}

// Start listens and serves in the background. Listen errors are returned
// synchronously.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("metrics server starting", logging.String("addr", ln.Addr().String()))
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server stopped", logging.Error(err))
		}
	}()
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("metrics server stopping")
	return s.server.Shutdown(ctx)
}
