package pipeline

import (
	"github.com/schidstorm/pdf2txt/pkg/document"
	"github.com/schidstorm/pdf2txt/pkg/scratch"
	"github.com/schidstorm/pdf2txt/pkg/tesseract"
)

type Options struct {
	Dpi         float64  `json:"dpi" yaml:"dpi"`
	Contrast    float64  `json:"contrast" yaml:"contrast"`
	Brightness  float64  `json:"brightness" yaml:"brightness"`
	Languages   []string `json:"languages" yaml:"languages"`
	ImageFormat string   `json:"imageFormat" yaml:"imageFormat"`
	Backend     string   `json:"backend" yaml:"backend"`
	Validate    bool     `json:"validate" yaml:"validate"`
}

func DefaultOptions() Options {
	return Options{
		Dpi:         300,
		Contrast:    2.0,
		Brightness:  1.5,
		Languages:   append([]string(nil), tesseract.DefaultLanguages...),
		ImageFormat: scratch.FormatPng,
		Backend:     document.BackendFitz,
		Validate:    true,
	}
}

// withDefaults fills zero values so a partially written config file still
// yields the documented behavior.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Dpi <= 0 {
		o.Dpi = d.Dpi
	}
	if o.Contrast == 0 {
		o.Contrast = d.Contrast
	}
	if o.Brightness == 0 {
		o.Brightness = d.Brightness
	}
	if len(o.Languages) == 0 {
		o.Languages = d.Languages
	}
	if o.ImageFormat == "" {
		o.ImageFormat = d.ImageFormat
	}
	if o.Backend == "" {
		o.Backend = d.Backend
	}
	return o
}
