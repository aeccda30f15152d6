package tesseract

import (
	"context"
	"fmt"
)

const (
	EngineCli       = "cli"
	EngineGosseract = "gosseract"
)

var DefaultLanguages = []string{"chi_sim", "eng"}

// Engine recognizes text in an image file. Languages are combined into a
// single recognition pass.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, imagePath string, languages []string, dpi int) (string, error)
}

type Options struct {
	Engine string `json:"engine" yaml:"engine"`
	Binary string `json:"binary" yaml:"binary"`
	Psm    int    `json:"psm" yaml:"psm"`
}

// NewEngine builds the configured engine. It fails with ErrNotFound when the
// engine cannot run on this machine.
func NewEngine(opts Options) (Engine, error) {
	switch opts.Engine {
	case "", EngineCli:
		binary, err := Locate(opts.Binary)
		if err != nil {
			return nil, err
		}
		return NewCli(binary, opts.Psm), nil
	case EngineGosseract:
		return NewGosseract(opts.Psm)
	default:
		return nil, fmt.Errorf("unknown ocr engine %q", opts.Engine)
	}
}
