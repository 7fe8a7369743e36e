package response

import (
	"time"

	"github.com/Brownie44l1/webserver/internal/headers"
)

// DateLayout renders the Date header the way a US-locale medium date/time
// formatter does, always in GMT.
const DateLayout = "Jan 2, 2006, 3:04:05 PM"

// DefaultHeaders returns the fixed header block in wire order:
// Date, Server, Connection, Content-Type.
func DefaultHeaders(now time.Time, server, contentType string) *headers.Headers {
	h := headers.NewHeaders()
	h.Set("Date", now.UTC().Format(DateLayout))
	h.Set("Server", server)
	h.Set("Connection", "close")
	h.Set("Content-Type", contentType)
	return h
}

// WriteHead writes the status line and the default header block.
func (w *Writer) WriteHead(code StatusCode, now time.Time, server, contentType string) error {
	if err := w.WriteStatusLine(code); err != nil {
		return err
	}
	return w.WriteHeaders(DefaultHeaders(now, server, contentType))
}
