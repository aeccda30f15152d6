package document

import (
	"fmt"
	"image"
	"os"

	"github.com/ledongthuc/pdf"
)

type plainDocument struct {
	file   *os.File
	reader *pdf.Reader
}

// OpenPlain opens path with a pure Go parser. It extracts text only; Render
// always fails with ErrRenderUnsupported.
func OpenPlain(path string) (Document, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, err
	}

	return &plainDocument{file: file, reader: reader}, nil
}

func (d *plainDocument) NumPages() int {
	return d.reader.NumPage()
}

func (d *plainDocument) Text(page int) (text string, err error) {
	// the parser panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract page %d: %v", page, r)
		}
	}()

	if err := checkPage(page, d.NumPages()); err != nil {
		return "", err
	}

	p := d.reader.Page(page + 1)
	if p.V.IsNull() {
		return "", nil
	}

	return p.GetPlainText(nil)
}

func (d *plainDocument) Render(page int, dpi float64) (image.Image, error) {
	return nil, ErrRenderUnsupported
}

func (d *plainDocument) Close() error {
	return d.file.Close()
}
