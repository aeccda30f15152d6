package scratch

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/tiff"
)

const (
	FormatPng  = "png"
	FormatTiff = "tiff"
)

// ImageEncoder returns the file extension and encoder for an image format
// understood by Tesseract.
func ImageEncoder(format string) (string, func(w io.Writer, img image.Image) error, error) {
	switch format {
	case "", FormatPng:
		return ".png", png.Encode, nil
	case FormatTiff:
		return ".tif", func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return "", nil, fmt.Errorf("unsupported scratch image format %q", format)
	}
}
