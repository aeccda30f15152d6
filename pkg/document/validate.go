package document

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func validationConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Validate checks the structure of the PDF at path. Relaxed mode accepts the
// common PDF format violations that readers tolerate.
func Validate(path string) error {
	return api.ValidateFile(path, validationConfig())
}

func PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}
