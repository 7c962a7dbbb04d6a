// Package listener serves the command routes on a loopback HTTP port.
//
// The server handles one connection at a time on a background goroutine:
// a request is read, evaluated against the host and answered before the
// next connection is accepted.
package listener

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/domain/ports"
	"github.com/scenebridge/scenebridge/hostfuncs"
)

// Route paths.
const (
	PathExecute   = "/execute_blender_script"
	PathSceneInfo = "/get_scene_info"
)

// Server is the command listener.
type Server struct {
	eval      ports.Evaluator
	host      hostfuncs.Invoker
	validator ports.PayloadValidator
	logger    *slog.Logger
	addr      string
	maxBody   int64
	handler   http.Handler

	mu      sync.Mutex
	httpSrv *http.Server
	ln      net.Listener
	done    chan struct{}
}

// New creates a server that evaluates scripts with eval and answers scene
// queries through inv. It does not listen until Start.
func New(eval ports.Evaluator, inv hostfuncs.Invoker, opts ...Option) *Server {
	s := &Server{
		eval:    eval,
		host:    inv,
		logger:  slog.Default(),
		addr:    net.JoinHostPort(entities.DefaultListenAddress, strconv.Itoa(entities.DefaultPort)),
		maxBody: entities.DefaultMaxRequestBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handler = s.routes()
	return s
}

// Handler returns the route handler, for mounting under a test server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ErrNotLoopback is returned by Start when the listen address is not a
// loopback IP. The execute route is unauthenticated.
var ErrNotLoopback = stdErrors.New("listen address is not loopback")

// Start binds the listen address and serves in the background. Calling
// Start on a running server is a no-op.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpSrv != nil {
		return nil
	}

	if err := checkLoopback(s.addr); err != nil {
		return err
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	serial := newSerialListener(ln)

	httpSrv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	httpSrv.SetKeepAlivesEnabled(false)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := httpSrv.Serve(serial); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			s.logger.Error("listener stopped", "addr", ln.Addr().String(), "error", err)
		}
	}()

	s.httpSrv, s.ln, s.done = httpSrv, serial, done
	s.logger.Info("listener started", "addr", ln.Addr().String())
	return nil
}

// Stop signals the serve loop to exit and waits for it, bounded by ctx. An
// exchange in flight is allowed to finish rather than interrupted. Calling
// Stop on a stopped server is a no-op.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	httpSrv, ln, done := s.httpSrv, s.ln, s.done
	s.httpSrv, s.ln, s.done = nil, nil, nil
	s.mu.Unlock()

	if httpSrv == nil {
		return nil
	}

	addr := ln.Addr().String()
	err := httpSrv.Shutdown(ctx)
	if err != nil {
		err = fmt.Errorf("shutdown listener %s: %w", addr, err)
	} else {
		select {
		case <-done:
		case <-ctx.Done():
			err = fmt.Errorf("shutdown listener %s: %w", addr, ctx.Err())
		}
	}
	s.logger.Info("listener stopped", "addr", addr)
	return err
}

func checkLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	if ip := net.ParseIP(host); ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("listen %s: %w", addr, ErrNotLoopback)
	}
	return nil
}

// Running reports whether the server holds a bound listener.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.httpSrv != nil
}

// Addr returns the bound address, or "" when stopped.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}
