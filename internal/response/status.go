package response

// StatusCode represents HTTP status codes
type StatusCode int

const (
	StatusOK       StatusCode = 200
	StatusNotFound StatusCode = 404
)

// statusText maps status codes to the reason phrases this server sends.
// The trailing "!" on 404 is part of the wire format clients have seen.
var statusText = map[StatusCode]string{
	StatusOK:       "OK",
	StatusNotFound: "Not Found!",
}

// StatusText returns the reason phrase for a status code
func StatusText(code StatusCode) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return "Unknown Status"
}

// StatusFor returns 200 when the request resolved to something servable
// (a file or the landing page) and 404 otherwise.
func StatusFor(found bool) StatusCode {
	if found {
		return StatusOK
	}
	return StatusNotFound
}

// IsSuccess returns true for 2xx status codes
func (code StatusCode) IsSuccess() bool {
	return code >= 200 && code < 300
}

// IsClientError returns true for 4xx status codes
func (code StatusCode) IsClientError() bool {
	return code >= 400 && code < 500
}
