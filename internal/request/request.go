// Package request reads a single HTTP request head from a connection and
// resolves its target against a document root.
package request

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/Brownie44l1/webserver/internal/headers"
)

// ErrInvalidRequest is returned when the stream ends before a request line
// arrives or the request line cannot be split into a method and a target.
var ErrInvalidRequest = errors.New("invalid request")

const MethodGet = "GET"

// Resource is a regular file in the document root that a request resolved to.
type Resource struct {
	Path string // relative to the root, slash separated
	Name string // base name, used for content typing
	Size int64
}

// Request is one parsed client request.
type Request struct {
	Method  string
	Target  string // as sent by the client
	Version string
	Path    string // Target without its leading "/"

	Resource    *Resource
	LandingPage bool

	Headers        *headers.Headers
	SkippedHeaders int
}

// Found reports whether the request will be answered with 200.
func (r *Request) Found() bool {
	return r.Resource != nil || r.LandingPage
}

// Read consumes the request head from reader and resolves it against root.
func Read(reader io.Reader, root fs.FS) (*Request, error) {
	br, ok := reader.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(reader)
	}

	p := newParser()
	if err := p.parseFromReader(br); err != nil {
		return nil, err
	}

	req := &Request{
		Method:         p.line.Method,
		Target:         p.line.Target,
		Version:        p.line.Version,
		Path:           strings.TrimPrefix(p.line.Target, "/"),
		Headers:        p.headers,
		SkippedHeaders: p.skipped,
	}
	req.resolve(root)
	return req, nil
}

// resolve fills Resource or LandingPage. Only GET is served; any other
// method leaves both unset.
func (r *Request) resolve(root fs.FS) {
	if r.Method != MethodGet {
		return
	}

	if res, ok := lookup(root, r.Path); ok {
		r.Resource = res
		return
	}

	if strings.HasSuffix(r.Target, "/") {
		r.LandingPage = true
	}
}

// lookup stats name in root. fs.FS refuses names with ".." elements, so a
// request can never leave the root.
func lookup(root fs.FS, name string) (*Resource, bool) {
	if root == nil || !fs.ValidPath(name) {
		return nil, false
	}

	info, err := fs.Stat(root, name)
	if err != nil || info.IsDir() {
		return nil, false
	}

	return &Resource{
		Path: name,
		Name: path.Base(name),
		Size: info.Size(),
	}, true
}
