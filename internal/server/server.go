// Package server accepts TCP connections and runs one worker goroutine per
// connection. A worker reads a single request, writes a single response and
// closes the connection.
package server

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"os"
	"sync"
	"time"

	"github.com/Brownie44l1/webserver/internal/config"
	"github.com/Brownie44l1/webserver/internal/content"
)

type Server struct {
	addr        string
	root        fs.FS
	serverName  string
	readTimeout time.Duration
	renderer    *content.Renderer
	now         func() time.Time

	Logger  Logger
	metrics *Metrics

	mu       sync.Mutex
	listener net.Listener
	closed   bool
	wg       sync.WaitGroup
}

// Option customizes a Server built by New.
type Option func(*Server)

// WithLogger replaces the default zerolog-backed logger.
func WithLogger(l Logger) Option {
	return func(s *Server) { s.Logger = l }
}

// WithRoot serves files from fsys instead of the configured directory.
func WithRoot(fsys fs.FS) Option {
	return func(s *Server) { s.root = fsys }
}

// WithClock sets the time source for the Date header and the date marker.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithMetrics shares a Metrics instance with the caller.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a server from cfg. It does not listen yet.
func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		addr:        cfg.Addr,
		serverName:  cfg.ServerName,
		readTimeout: cfg.ReadTimeout,
		now:         time.Now,
		metrics:     NewMetrics(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.root == nil {
		s.root = os.DirFS(cfg.Root)
	}
	if s.Logger == nil {
		s.Logger = NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	}

	s.renderer = &content.Renderer{
		Root:       s.root,
		ServerName: cfg.TemplateServerName,
		Now:        s.now,
	}
	return s
}

// ListenAndServe listens on the configured address and serves until
// Shutdown is called.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener until Shutdown. Every accepted
// connection gets its own worker; there is no limit on how many run at once.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		listener.Close()
		return ErrServerClosed
	}
	s.listener = listener
	s.mu.Unlock()

	s.Logger.Info("listening", Field{"addr", listener.Addr().String()})

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.Logger.Error("error accepting connection", Field{"error", err})
			continue
		}

		if !s.track() {
			conn.Close()
			return ErrServerClosed
		}

		go func() {
			defer s.wg.Done()
			s.serveConn(conn)
		}()
	}
}

// track registers a new worker unless shutdown has started.
func (s *Server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Addr returns the listener address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close stops accepting connections without waiting for workers.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// Shutdown stops accepting connections and waits for in-flight workers to
// finish or for ctx to end. Workers are never interrupted.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns a snapshot of the server metrics.
func (s *Server) Stats() MetricsSnapshot {
	return s.metrics.Snapshot()
}
