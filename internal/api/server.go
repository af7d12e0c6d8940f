// Package api serves the board service over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/config"
)

// Server is the HTTP front end of an App
type Server struct {
	app     *app.App
	cfg     config.ServerConfig
	metrics *Metrics
	logger  *slog.Logger
	router  *mux.Router
}

// NewServer builds the router for a. metrics may be shared with an
// instrumented publisher; nil creates a fresh set.
func NewServer(a *app.App, cfg config.ServerConfig, metrics *Metrics) *Server {
	if metrics == nil {
		metrics = NewMetrics()
	}
	s := &Server{
		app:     a,
		cfg:     cfg,
		metrics: metrics,
		logger:  a.Logger(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the server's root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run listens on the configured address until ctx is cancelled, then drains
// in-flight requests for at most ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", ln.Addr().String())
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down http server")
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
