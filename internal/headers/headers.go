package headers

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedHeader = errors.New("malformed header")
	ErrLineFolding     = errors.New("obsolete line folding not supported")
)

// Headers is a case-insensitive header set that remembers insertion order.
// Names are written back out with the casing of their first insertion.
type Headers struct {
	values map[string][]string
	names  map[string]string
	order  []string
}

func NewHeaders() *Headers {
	return &Headers{
		values: make(map[string][]string),
		names:  make(map[string]string),
	}
}

// Get returns the first value for a header
func (h *Headers) Get(key string) (string, bool) {
	values := h.values[strings.ToLower(key)]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// GetAll returns all values for a header
func (h *Headers) GetAll(key string) []string {
	return h.values[strings.ToLower(key)]
}

// Set replaces all values for a header
func (h *Headers) Set(key, value string) {
	lower := h.track(key)
	h.values[lower] = []string{value}
}

// Add appends a value to a header
func (h *Headers) Add(key, value string) {
	lower := h.track(key)
	h.values[lower] = append(h.values[lower], value)
}

// Del removes a header
func (h *Headers) Del(key string) {
	lower := strings.ToLower(key)
	if _, ok := h.values[lower]; !ok {
		return
	}
	delete(h.values, lower)
	delete(h.names, lower)
	for i, k := range h.order {
		if k == lower {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of distinct header names.
func (h *Headers) Len() int {
	return len(h.order)
}

// Each calls fn for every name/value pair in insertion order.
func (h *Headers) Each(fn func(name, value string) error) error {
	for _, lower := range h.order {
		for _, v := range h.values[lower] {
			if err := fn(h.names[lower], v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *Headers) track(key string) string {
	lower := strings.ToLower(key)
	if _, ok := h.names[lower]; !ok {
		h.names[lower] = key
		h.order = append(h.order, lower)
	}
	return lower
}

// ParseLine parses a single "Name: value" line, without its line terminator,
// and adds it to the set.
func (h *Headers) ParseLine(line string) error {
	if line == "" {
		return fmt.Errorf("%w: empty line", ErrMalformedHeader)
	}

	if line[0] == ' ' || line[0] == '\t' {
		return ErrLineFolding
	}

	colonIdx := strings.IndexByte(line, ':')
	if colonIdx == -1 {
		return fmt.Errorf("%w: no colon", ErrMalformedHeader)
	}

	name := line[:colonIdx]
	if strings.ContainsAny(name, " \t") {
		return fmt.Errorf("%w: whitespace in name", ErrMalformedHeader)
	}

	for i := 0; i < len(name); i++ {
		if !isValidHeaderChar(name[i]) {
			return fmt.Errorf("%w: invalid character in header name: %q", ErrMalformedHeader, name[i])
		}
	}

	h.Add(name, strings.TrimSpace(line[colonIdx+1:]))
	return nil
}

func isValidHeaderChar(b byte) bool {
	return (b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z') ||
		(b >= '0' && b <= '9') ||
		b == '!' || b == '#' || b == '$' || b == '%' || b == '&' ||
		b == '\'' || b == '*' || b == '+' || b == '-' || b == '.' ||
		b == '^' || b == '_' || b == '`' || b == '|' || b == '~'
}
