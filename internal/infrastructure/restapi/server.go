package restapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"wallet_inspector/internal/app/port"

	"golang.org/x/sync/errgroup"
)

// Server runs the HTTP API until its context is cancelled, then shuts down gracefully.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          port.Logger
}

// NewServer creates a server listening on addr.
func NewServer(addr string, handler http.Handler, shutdownTimeout time.Duration, l port.Logger) *Server {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
		logger:          l,
	}
}

// Run listens and serves until ctx is done or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting HTTP server", "address", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Graceful shutdown of HTTP server failed", "error", err)
			return err
		}
		s.logger.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}
