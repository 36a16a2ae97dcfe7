// Package api implements the HTTP surface of the service: routing,
// middleware and the request handlers over the repositories.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Server wraps http.Server with the timeouts used in production.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a Server listening on addr with the given handler.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	log.Printf("server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Print("server shutting down")
	return s.httpServer.Shutdown(ctx)
}
