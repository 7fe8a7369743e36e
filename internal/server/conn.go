package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/Brownie44l1/webserver/internal/content"
	"github.com/Brownie44l1/webserver/internal/request"
	"github.com/Brownie44l1/webserver/internal/response"
)

// serveConn handles the single request on a connection and always closes it
func (s *Server) serveConn(conn net.Conn) {
	start := time.Now()
	connID := uuid.NewString()
	remote := conn.RemoteAddr().String()

	s.metrics.connOpened()
	s.Logger.Debug("handling connection", Field{"conn_id", connID}, Field{"remote", remote})

	defer func() {
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.Logger.Debug("close failed", Field{"conn_id", connID}, Field{"error", err})
		}
		s.metrics.connClosed(time.Since(start))
		s.Logger.Debug("done handling connection",
			Field{"conn_id", connID},
			Field{"duration", time.Since(start)},
		)
	}()

	defer func() {
		if r := recover(); r != nil {
			s.metrics.ErrorsTotal.Add(1)
			s.Logger.Error("worker panic recovered",
				Field{"conn_id", connID},
				Field{"error", fmt.Sprint(r)},
				Field{"stack", string(debug.Stack())},
			)
		}
	}()

	if s.readTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
			s.Logger.Warn("set read deadline failed", Field{"conn_id", connID}, Field{"error", err})
		}
	}

	if err := s.exchange(conn, connID); err != nil {
		var connErr *ConnError
		if errors.As(err, &connErr) {
			s.metrics.ErrorsTotal.Add(1)
		}
		s.Logger.Error("exchange failed",
			Field{"conn_id", connID},
			Field{"remote", remote},
			Field{"error", err},
		)
	}
}

// exchange reads one request from rw and writes one response to it:
// request, then header block, then body.
func (s *Server) exchange(rw io.ReadWriter, connID string) error {
	req, err := request.Read(rw, s.root)
	switch {
	case errors.Is(err, request.ErrInvalidRequest):
		// Answer with the not-found response if the peer is still there.
		s.metrics.InvalidRequests.Add(1)
		s.Logger.Warn("invalid request", Field{"conn_id", connID}, Field{"error", err})
		req = &request.Request{}
	case err != nil:
		return &ConnError{Op: "read", Err: err}
	}

	contentType := content.TypeFor(req.Resource)
	status := response.StatusFor(req.Found())

	bw := bufio.NewWriter(rw)
	w := response.NewWriter(bw)

	if err := w.WriteHead(status, s.now(), s.serverName, contentType); err != nil {
		return &ConnError{Op: "write", Err: err}
	}

	if err := s.renderer.Render(w, req, contentType); err != nil {
		if w.HadError() {
			return &ConnError{Op: "write", Err: err}
		}
		// Headers may already be on the wire; send what we have.
		if ferr := bw.Flush(); ferr != nil {
			return &ConnError{Op: "flush", Err: ferr}
		}
		return fmt.Errorf("render %s: %w", req.Target, err)
	}

	if err := bw.Flush(); err != nil {
		return &ConnError{Op: "flush", Err: err}
	}

	s.metrics.RecordResponse(status, w.BodyBytes())
	s.Logger.Info("request served",
		Field{"conn_id", connID},
		Field{"method", req.Method},
		Field{"target", req.Target},
		Field{"status", int(status)},
		Field{"content_type", contentType},
		Field{"bytes", w.BodyBytes()},
	)
	return nil
}
