// Package document gives the conversion pipeline a narrow view of a PDF file:
// a sequence of pages, each of which can yield its text or a raster image.
package document

import (
	"errors"
	"fmt"
	"image"
)

const (
	BackendFitz  = "fitz"
	BackendPlain = "plain"
)

var ErrRenderUnsupported = errors.New("backend cannot render pages")
var ErrPageOutOfRange = errors.New("page out of range")

// Document is an opened PDF. Pages are zero-based.
type Document interface {
	NumPages() int
	Text(page int) (string, error)
	Render(page int, dpi float64) (image.Image, error)
	Close() error
}

type Opener func(path string) (Document, error)

func NewOpener(backend string) (Opener, error) {
	switch backend {
	case "", BackendFitz:
		return OpenFitz, nil
	case BackendPlain:
		return OpenPlain, nil
	default:
		return nil, fmt.Errorf("unknown document backend %q", backend)
	}
}

func checkPage(page, count int) error {
	if page < 0 || page >= count {
		return fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page, count)
	}
	return nil
}
