// Package httpapi exposes core.Service over HTTP/JSON using gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/notebox/pkg/auth"
	"github.com/aretw0/notebox/pkg/core"
)

// Config holds the transport configuration.
type Config struct {
	Logger            *slog.Logger
	Authenticator     auth.Authenticator
	CORSOrigins       []string // doublestar globs, e.g. "https://*.example.com"
	Mode              string   // gin mode; empty keeps the current one
	Version           string
	ReadHeaderTimeout time.Duration
	ExposeState       bool // serve /debug/state; it is unauthenticated and reveals store sizes
}

// Server serves the note operations.
type Server struct {
	engine  *gin.Engine
	service *core.Service
	config  Config
	origins *originMatcher

	// base is cancelled on Shutdown so hijacked feed connections stop too.
	base       context.Context
	cancelBase context.CancelFunc
	feeds      sync.WaitGroup

	mu         sync.Mutex
	httpServer *http.Server
}

// New builds a Server around service.
func New(service *core.Service, config Config) *Server {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Authenticator == nil {
		config.Authenticator = auth.HeaderAuthenticator{}
	}
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	base, cancel := context.WithCancel(context.Background())
	s := &Server{
		engine:     gin.New(),
		service:    service,
		config:     config,
		origins:    newOriginMatcher(config.CORSOrigins),
		base:       base,
		cancelBase: cancel,
	}
	s.setupRoutes()
	return s
}

// Handler returns the http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens on addr and serves until Shutdown.
func (s *Server) Start(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(l)
}

// Serve serves on l until Shutdown. It returns nil after a graceful shutdown.
func (s *Server) Serve(l net.Listener) error {
	s.mu.Lock()
	if s.httpServer != nil {
		s.mu.Unlock()
		_ = l.Close()
		return errors.New("server already started")
	}
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}
	s.httpServer = srv
	s.mu.Unlock()

	s.config.Logger.Info("http server listening", "addr", l.Addr().String())
	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, closes change feeds and waits for
// in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.cancelBase()
	srv := s.httpServer
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}

	done := make(chan struct{})
	go func() {
		s.feeds.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}
