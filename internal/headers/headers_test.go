package headers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderParseLine(t *testing.T) {
	// Test: Valid single header
	h := NewHeaders()
	err := h.ParseLine("Host: localhost:8080")
	require.NoError(t, err)
	val, ok := h.Get("host")
	assert.True(t, ok)
	assert.Equal(t, "localhost:8080", val)

	// Test: Extra whitespace around the value
	h = NewHeaders()
	err = h.ParseLine("Host:   localhost:8080   ")
	require.NoError(t, err)
	val, ok = h.Get("host")
	assert.True(t, ok)
	assert.Equal(t, "localhost:8080", val)

	// Test: Duplicate headers keep every value
	h = NewHeaders()
	require.NoError(t, h.ParseLine("Accept: text/html"))
	require.NoError(t, h.ParseLine("Accept: image/png"))
	assert.Equal(t, []string{"text/html", "image/png"}, h.GetAll("accept"))
	val, ok = h.Get("ACCEPT")
	assert.True(t, ok)
	assert.Equal(t, "text/html", val)

	// Test: Whitespace before colon
	h = NewHeaders()
	err = h.ParseLine("Host : localhost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedHeader)

	// Test: No colon
	h = NewHeaders()
	err = h.ParseLine("InvalidHeader")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedHeader)

	// Test: Invalid character in name
	h = NewHeaders()
	err = h.ParseLine("HÂ©st: localhost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")

	// Test: Obsolete line folding
	h = NewHeaders()
	err = h.ParseLine(" continued")
	assert.ErrorIs(t, err, ErrLineFolding)
	err = h.ParseLine("\tcontinued")
	assert.ErrorIs(t, err, ErrLineFolding)
	assert.Equal(t, 0, h.Len())
}

func TestHeadersKeepInsertionOrder(t *testing.T) {
	h := NewHeaders()
	h.Set("Date", "today")
	h.Set("Server", "test")
	h.Set("Connection", "close")
	h.Set("Content-Type", "text/html")

	var got []string
	err := h.Each(func(name, value string) error {
		got = append(got, name+"="+value)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Date=today",
		"Server=test",
		"Connection=close",
		"Content-Type=text/html",
	}, got)
}

func TestHeadersSetKeepsFirstPosition(t *testing.T) {
	h := NewHeaders()
	h.Set("Content-Type", "text/plain")
	h.Set("Server", "test")
	h.Set("content-type", "text/html")

	var names []string
	require.NoError(t, h.Each(func(name, value string) error {
		names = append(names, name)
		return nil
	}))
	assert.Equal(t, []string{"Content-Type", "Server"}, names)
	val, _ := h.Get("Content-Type")
	assert.Equal(t, "text/html", val)
}

func TestHeadersDel(t *testing.T) {
	h := NewHeaders()
	h.Set("A", "1")
	h.Set("B", "2")
	h.Del("a")

	_, ok := h.Get("A")
	assert.False(t, ok)
	assert.Equal(t, 1, h.Len())

	// Re-adding takes the new position and casing
	h.Add("a", "3")
	var names []string
	require.NoError(t, h.Each(func(name, value string) error {
		names = append(names, name)
		return nil
	}))
	assert.Equal(t, []string{"B", "a"}, names)
}
