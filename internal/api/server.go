// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/funvill/cultural-archiver-sub013/internal/logging"
)

// Server runs the HTTP listener as a supervised service. Serve blocks until
// the context is canceled, then shuts down gracefully, which is the contract
// suture expects from a service.
type Server struct {
	addr    string
	handler http.Handler
	timeout time.Duration
}

// NewServer creates a supervised HTTP server.
func NewServer(addr string, handler http.Handler, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Server{addr: addr, handler: handler, timeout: timeout}
}

// Serve implements suture.Service.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadTimeout:       s.timeout,
		WriteTimeout:      s.timeout,
		IdleTimeout:       2 * s.timeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", s.addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		logging.Info().Msg("HTTP server stopped")
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}

// String names the service in supervisor logs.
func (s *Server) String() string {
	return fmt.Sprintf("http-server(%s)", s.addr)
}
