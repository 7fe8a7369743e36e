package content

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/webserver/internal/request"
)

var fixedNow = func() time.Time {
	return time.Date(2026, time.October, 19, 15, 4, 5, 0, time.UTC)
}

func pngBytes(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 251)
	}
	// include bytes that look like markers and line breaks
	copy(data, []byte("\x89PNG\r\n<cs371date>\n"))
	return data
}

func newTestRenderer() (*Renderer, fstest.MapFS) {
	root := fstest.MapFS{
		"index.html": {Data: []byte("<h1>Hi</h1>\r\nToday is <cs371date>.\nServed by <cs371server> on <cs371date>\nno newline at end")},
		"plain.html": {Data: []byte("<p>nothing to see</p>\n")},
		"empty.html": {Data: []byte{}},
		"notes.txt":  {Data: []byte("<cs371server>\n")},
		"pic.png":    {Data: pngBytes(100)},
		"big.gif":    {Data: pngBytes(100_000)},
	}
	return &Renderer{Root: root, ServerName: "Test Server", Now: fixedNow}, root
}

func resourceFor(root fstest.MapFS, name string) *request.Resource {
	return &request.Resource{Path: name, Name: name, Size: int64(len(root[name].Data))}
}

func render(t *testing.T, r *Renderer, req *request.Request) string {
	t.Helper()
	var buf bytes.Buffer
	err := r.Render(&buf, req, TypeFor(req.Resource))
	require.NoError(t, err)
	return buf.String()
}

func TestRenderNotFound(t *testing.T) {
	r, _ := newTestRenderer()
	got := render(t, r, &request.Request{})
	assert.Equal(t, "<h3>404 Not Found</h3>\n", got)
}

func TestRenderLandingPage(t *testing.T) {
	r, _ := newTestRenderer()
	got := render(t, r, &request.Request{LandingPage: true})
	assert.Equal(t, LandingPage, got)
	assert.Contains(t, got, "My web server works!")
}

func TestRenderTemplate(t *testing.T) {
	r, root := newTestRenderer()
	got := render(t, r, &request.Request{Resource: resourceFor(root, "index.html")})

	want := "<html><body>\n" +
		"<h1>Hi</h1>\r\nToday is 2026-10-19.\nServed by Test Server on 2026-10-19\nno newline at end" +
		"</body></html>\n"
	assert.Equal(t, want, got)
}

func TestRenderTemplateWithoutMarkers(t *testing.T) {
	r, root := newTestRenderer()
	got := render(t, r, &request.Request{Resource: resourceFor(root, "plain.html")})
	assert.Equal(t, "<html><body>\n<p>nothing to see</p>\n</body></html>\n", got)

	got = render(t, r, &request.Request{Resource: resourceFor(root, "empty.html")})
	assert.Equal(t, "<html><body>\n</body></html>\n", got)
}

func TestRenderUnknownExtensionIsTemplated(t *testing.T) {
	r, root := newTestRenderer()
	got := render(t, r, &request.Request{Resource: resourceFor(root, "notes.txt")})
	assert.Equal(t, "<html><body>\nTest Server\n</body></html>\n", got)
}

func TestRenderImageIsByteExact(t *testing.T) {
	r, root := newTestRenderer()

	for _, name := range []string{"pic.png", "big.gif"} {
		got := render(t, r, &request.Request{Resource: resourceFor(root, name)})
		assert.Equal(t, string(root[name].Data), got, name)
		assert.NotContains(t, got, "<html><body>")
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	r, root := newTestRenderer()
	req := &request.Request{Resource: resourceFor(root, "index.html")}

	first := render(t, r, req)
	second := render(t, r, req)
	assert.Equal(t, first, second)
	assert.Equal(t, "Today is <cs371date>.", string(root["index.html"].Data[13:34]))
}

func TestRenderMissingFile(t *testing.T) {
	r, _ := newTestRenderer()
	req := &request.Request{Resource: &request.Resource{Path: "gone.png", Name: "gone.png"}}

	err := r.Render(io.Discard, req, TypePNG)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.png")
}

func TestRenderWithoutRoot(t *testing.T) {
	r := &Renderer{}
	req := &request.Request{Resource: &request.Resource{Path: "a.html", Name: "a.html"}}

	err := r.Render(io.Discard, req, TypeHTML)
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestRenderWriteError(t *testing.T) {
	r, root := newTestRenderer()
	boom := errors.New("broken pipe")

	for _, req := range []*request.Request{
		{},
		{LandingPage: true},
		{Resource: resourceFor(root, "index.html")},
		{Resource: resourceFor(root, "pic.png")},
	} {
		err := r.Render(&failingWriter{err: boom}, req, TypeFor(req.Resource))
		assert.ErrorIs(t, err, boom)
	}
}

func TestRenderUsesWallClockByDefault(t *testing.T) {
	root := fstest.MapFS{"d.html": {Data: []byte("<cs371date>")}}
	r := &Renderer{Root: root}

	var buf bytes.Buffer
	err := r.Render(&buf, &request.Request{Resource: &request.Resource{Path: "d.html", Name: "d.html"}}, TypeHTML)
	require.NoError(t, err)

	today := time.Now().Format(DateLayout)
	assert.Equal(t, "<html><body>\n"+today+"</body></html>\n", buf.String())
}

func TestBufferPoolTiers(t *testing.T) {
	small := getBuffer(10)
	assert.Len(t, small, smallBufferSize)
	putBuffer(small)

	medium := getBuffer(1 << 20)
	assert.Len(t, medium, mediumBufferSize)
	putBuffer(medium)

	// foreign buffers are dropped silently
	putBuffer(make([]byte, 7))
}

type failingWriter struct {
	err error
}

func (w *failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}
