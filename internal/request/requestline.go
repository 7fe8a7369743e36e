package request

import (
	"fmt"
	"strings"
)

// RequestLine is the first line of a request, split on single spaces.
type RequestLine struct {
	Method  string
	Target  string
	Version string
}

// parseRequestLine splits "METHOD TARGET [VERSION]". Only the first two
// fields are required. Anything after the third field is ignored.
func parseRequestLine(line string) (RequestLine, error) {
	parts := strings.Split(line, " ")
	if len(parts) < 2 {
		return RequestLine{}, fmt.Errorf("%w: %q", ErrInvalidRequest, line)
	}

	rl := RequestLine{
		Method: parts[0],
		Target: parts[1],
	}
	if len(parts) > 2 {
		rl.Version = parts[2]
	}

	if rl.Target == "" {
		return RequestLine{}, fmt.Errorf("%w: empty target", ErrInvalidRequest)
	}

	return rl, nil
}
