package response

import (
	"errors"
	"fmt"
	"io"

	"github.com/Brownie44l1/webserver/internal/headers"
)

// Lines are terminated by a bare LF, including the blank line that ends the
// header block.
const lineEnd = "\n"

var (
	ErrStatusWritten    = errors.New("status line already written")
	ErrStatusMissing    = errors.New("must write status line before headers")
	ErrHeadersMissing   = errors.New("must write headers before body")
	ErrHeadersRewritten = errors.New("headers already written")
)

// writerState tracks what's been written so far
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer writes one HTTP response to an io.Writer. After the header block it
// is itself an io.Writer for the body.
type Writer struct {
	w          io.Writer
	state      writerState
	statusCode StatusCode
	written    int64 // body bytes
	hadError   bool
}

// NewWriter creates a new response writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		state: stateStart,
	}
}

// WriteStatusLine writes the HTTP status line
func (w *Writer) WriteStatusLine(code StatusCode) error {
	if w.state != stateStart {
		return ErrStatusWritten
	}

	statusLine := fmt.Sprintf("HTTP/1.1 %d %s%s", code, StatusText(code), lineEnd)
	if _, err := io.WriteString(w.w, statusLine); err != nil {
		w.hadError = true
		return err
	}

	w.statusCode = code
	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes all headers in insertion order and the blank line
// that ends the header block.
func (w *Writer) WriteHeaders(h *headers.Headers) error {
	switch w.state {
	case stateStart:
		return ErrStatusMissing
	case stateStatusWritten:
	default:
		return ErrHeadersRewritten
	}

	err := h.Each(func(name, value string) error {
		_, err := io.WriteString(w.w, name+": "+value+lineEnd)
		return err
	})
	if err != nil {
		w.hadError = true
		return err
	}

	if _, err := io.WriteString(w.w, lineEnd); err != nil {
		w.hadError = true
		return err
	}

	w.state = stateHeadersWritten
	return nil
}

// Write writes body bytes. It may be called any number of times once the
// headers are out.
func (w *Writer) Write(p []byte) (int, error) {
	if w.state != stateHeadersWritten && w.state != stateBodyWritten {
		return 0, ErrHeadersMissing
	}

	n, err := w.w.Write(p)
	w.written += int64(n)
	if err != nil {
		w.hadError = true
		return n, err
	}

	w.state = stateBodyWritten
	return n, nil
}

// WriteBody writes a complete body in one call
func (w *Writer) WriteBody(data []byte) error {
	_, err := w.Write(data)
	return err
}

func (w *Writer) HadError() bool {
	return w.hadError
}

func (w *Writer) StatusCode() StatusCode {
	return w.statusCode
}

// BodyBytes returns the number of body bytes written so far.
func (w *Writer) BodyBytes() int64 {
	return w.written
}
