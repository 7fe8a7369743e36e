package server

import "errors"

// ErrServerClosed is returned by Serve and ListenAndServe after Shutdown.
var ErrServerClosed = errors.New("server closed")

// ConnError is a failure reading from or writing to the client. It never
// leaves the worker that hit it; it is logged and the connection is closed.
type ConnError struct {
	Op  string // "read", "write", "flush"
	Err error
}

func (e *ConnError) Error() string {
	return "connection " + e.Op + ": " + e.Err.Error()
}

func (e *ConnError) Unwrap() error {
	return e.Err
}
