// Package server serves a rendered diff report via HTTP.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
)

// Server serves a single HTML page.
type Server struct {
	http    *http.Server
	handler *handler
	errc    chan error
}

// Run creates a new server and runs it in a new goroutine.
func Run(addr string, page []byte) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("starting HTTP server: %v", err)
	}

	h := &handler{}
	h.page.Store(&page)

	s := &Server{
		http: &http.Server{
			Handler: h,
		},
		handler: h,
		errc:    make(chan error),
	}

	go func() {
		if err := s.http.Serve(l); err != nil && err != http.ErrServerClosed {
			s.errc <- err
		}
	}()

	return s, nil
}

// ReplacePage replaces the page to serve with the one provided.
func (s *Server) ReplacePage(page []byte) {
	s.handler.page.Store(&page)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %v", err)
	}
	close(s.errc)
	return nil
}

// Error returns a channel to listen to errors while serving.
func (s *Server) Error() <-chan error {
	return s.errc
}
