package content

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/Brownie44l1/webserver/internal/request"
)

// Template markers replaced inside served HTML files.
const (
	DateMarker   = "<cs371date>"
	ServerMarker = "<cs371server>"
)

// DateLayout is the form the date marker expands to.
const DateLayout = "2006-01-02"

// Canned bodies.
const (
	NotFoundBody = "<h3>404 Not Found</h3>\n"
	LandingPage  = "<html><head></head><body>\n" +
		"<h3>My web server works!</h3>\n" +
		"</body></html>\n"

	htmlOpen  = "<html><body>\n"
	htmlClose = "</body></html>\n"
)

var ErrNoRoot = errors.New("renderer has no document root")

// Renderer writes response bodies. It is safe for concurrent use; it holds
// no per-request state.
type Renderer struct {
	Root       fs.FS
	ServerName string // replaces ServerMarker
	Now        func() time.Time
}

// Render writes exactly one of: the not-found fragment, the landing page,
// the templated HTML file or the raw file bytes.
func (r *Renderer) Render(w io.Writer, req *request.Request, contentType string) error {
	switch {
	case req.Resource == nil && !req.LandingPage:
		_, err := io.WriteString(w, NotFoundBody)
		return err

	case req.LandingPage:
		_, err := io.WriteString(w, LandingPage)
		return err

	case IsHTML(contentType):
		return r.renderTemplate(w, req.Resource)

	default:
		return r.renderRaw(w, req.Resource)
	}
}

func (r *Renderer) open(res *request.Resource) (fs.File, error) {
	if r.Root == nil {
		return nil, ErrNoRoot
	}
	f, err := r.Root.Open(res.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", res.Path, err)
	}
	return f, nil
}

// renderTemplate copies the file line by line, line endings included, and
// expands the template markers.
func (r *Renderer) renderTemplate(w io.Writer, res *request.Resource) error {
	f, err := r.open(res)
	if err != nil {
		return err
	}
	defer f.Close()

	replacer := strings.NewReplacer(
		DateMarker, r.today(),
		ServerMarker, r.ServerName,
	)

	if _, err := io.WriteString(w, htmlOpen); err != nil {
		return err
	}

	br := bufio.NewReader(f)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if _, werr := replacer.WriteString(w, line); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", res.Path, err)
		}
	}

	_, err = io.WriteString(w, htmlClose)
	return err
}

func (r *Renderer) renderRaw(w io.Writer, res *request.Resource) error {
	f, err := r.open(res)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := getBuffer(res.Size)
	defer putBuffer(buf)

	// Hide any WriterTo on the file so the pooled buffer is the one used.
	if _, err := io.CopyBuffer(w, struct{ io.Reader }{f}, buf); err != nil {
		return fmt.Errorf("copy %s: %w", res.Path, err)
	}
	return nil
}

func (r *Renderer) today() string {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return now().Format(DateLayout)
}
