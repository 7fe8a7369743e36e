// Package content decides how a resolved resource is typed and renders the
// response body for it.
package content

import (
	"strings"

	"github.com/Brownie44l1/webserver/internal/request"
)

const (
	TypeHTML = "text/html"
	TypeJPEG = "image/jpeg"
	TypePNG  = "image/png"
	TypeGIF  = "image/gif"
)

// TypeFor returns the MIME type for res. A nil resource, a name without a
// dot and any extension outside the image table are all text/html.
// Extensions are matched case-sensitively.
func TypeFor(res *request.Resource) string {
	if res == nil {
		return TypeHTML
	}
	return TypeForName(res.Name)
}

// TypeForName types a bare file name.
func TypeForName(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx == -1 {
		return TypeHTML
	}
	return typeForExtension(name[idx+1:])
}

func typeForExtension(ext string) string {
	switch ext {
	case "jpeg", "jpg":
		return TypeJPEG
	case "png":
		return TypePNG
	case "gif":
		return TypeGIF
	default:
		return TypeHTML
	}
}

// IsHTML reports whether a body of this type goes through the template path.
func IsHTML(contentType string) bool {
	return contentType == TypeHTML
}
