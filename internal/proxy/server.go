// Package proxy serves the health endpoint that reports whether the quote
// backend is reachable.
package proxy

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Options configure a Server.
type Options struct {
	// FetchTimeout bounds each backend call; zero means DefaultFetchTimeout.
	FetchTimeout time.Duration
	// RequestLogging enables the per-request access log.
	RequestLogging bool
}

// Server is the echo instance serving HealthPath.
type Server struct {
	echo *echo.Echo
}

// New builds a Server whose health route fetches from backend.
func New(backend Fetcher, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(echo.Context) bool { return !opts.RequestLogging },
		Output:  log.Writer(),
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10,
	}))

	h := NewHealthHandler(backend, opts.FetchTimeout)
	e.GET(HealthPath, h.HandleHealth)

	return &Server{echo: e}
}

// ServeHTTP lets the server be mounted or exercised with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr and serves until Shutdown. A clean shutdown returns
// nil.
func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the bound address once the server is listening, or nil.
func (s *Server) Addr() net.Addr {
	return s.echo.ListenerAddr()
}

// Shutdown stops the server, waiting for in-flight checks until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
