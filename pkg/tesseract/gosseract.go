//go:build gosseract

package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Gosseract calls libtesseract in-process through cgo.
type Gosseract struct {
	psm int
}

func NewGosseract(psm int) (Engine, error) {
	return &Gosseract{psm: psm}, nil
}

func (g *Gosseract) Name() string {
	return EngineGosseract
}

func (g *Gosseract) Recognize(ctx context.Context, imagePath string, languages []string, dpi int) (string, error) {
	c := gosseract.NewClient()
	defer c.Close()

	if err := c.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(languages) > 0 {
		if err := c.SetLanguage(languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if dpi > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(dpi)); err != nil {
			return "", fmt.Errorf("set dpi: %w", err)
		}
	}
	if g.psm > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(g.psm)); err != nil {
			return "", fmt.Errorf("set psm: %w", err)
		}
	}

	return c.Text()
}
