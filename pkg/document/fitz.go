package document

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

type fitzDocument struct {
	doc *fitz.Document
}

// OpenFitz opens path with MuPDF, which supports both text extraction and
// rendering.
func OpenFitz(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}

	return &fitzDocument{doc: doc}, nil
}

func (d *fitzDocument) NumPages() int {
	return d.doc.NumPage()
}

func (d *fitzDocument) Text(page int) (string, error) {
	if err := checkPage(page, d.NumPages()); err != nil {
		return "", err
	}
	return d.doc.Text(page)
}

func (d *fitzDocument) Render(page int, dpi float64) (image.Image, error) {
	if err := checkPage(page, d.NumPages()); err != nil {
		return nil, err
	}
	return d.doc.ImageDPI(page, dpi)
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
