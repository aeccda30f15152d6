//go:build !gosseract

package tesseract

import "errors"

// ErrGosseractDisabled is returned when the in-process engine is requested
// from a binary built without the gosseract tag.
var ErrGosseractDisabled = errors.Join(ErrNotFound, errors.New("gosseract engine not compiled in; rebuild with -tags gosseract"))

func NewGosseract(psm int) (Engine, error) {
	return nil, ErrGosseractDisabled
}
