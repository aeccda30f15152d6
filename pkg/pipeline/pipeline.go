// Package pipeline converts a PDF into a text file page by page, falling back
// to OCR for pages without extractable text.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/schidstorm/pdf2txt/pkg/document"
	"github.com/schidstorm/pdf2txt/pkg/enhance"
	"github.com/schidstorm/pdf2txt/pkg/logger"
	"github.com/schidstorm/pdf2txt/pkg/scratch"
	"github.com/schidstorm/pdf2txt/pkg/tesseract"
	"github.com/sirupsen/logrus"
)

// Pipeline holds everything a conversion needs. One Pipeline serves any number
// of jobs, one at a time.
type Pipeline struct {
	options  Options
	opener   document.Opener
	validate func(path string) error
	engine   tesseract.Engine
	scratch  *scratch.Dir
	imageExt string
	encode   func(w io.Writer, img image.Image) error
	logger   *logrus.Logger
}

// New builds a pipeline. A nil engine disables OCR for every job.
func New(opts Options, dir *scratch.Dir, engine tesseract.Engine) (*Pipeline, error) {
	opts = opts.withDefaults()

	opener, err := document.NewOpener(opts.Backend)
	if err != nil {
		return nil, err
	}

	ext, encode, err := scratch.ImageEncoder(opts.ImageFormat)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		options:  opts,
		opener:   opener,
		validate: document.Validate,
		engine:   engine,
		scratch:  dir,
		imageExt: ext,
		encode:   encode,
	}
	p.logger = logger.Logger(p)

	return p, nil
}

func (p *Pipeline) WithOpener(opener document.Opener) *Pipeline {
	p.opener = opener
	return p
}

func (p *Pipeline) WithValidator(validate func(path string) error) *Pipeline {
	p.validate = validate
	return p
}

func (p *Pipeline) WithEngine(engine tesseract.Engine) *Pipeline {
	p.engine = engine
	return p
}

func (p *Pipeline) Options() Options {
	return p.options
}

func (p *Pipeline) OcrAvailable() bool {
	return p.engine != nil
}

// Convert runs job and returns the number of pages processed. Pages are
// handled strictly in order and their text is appended to the output without
// separators. ctx is checked between pages only; on cancellation the pages
// already written stay in the output file and ctx.Err() is returned.
func (p *Pipeline) Convert(ctx context.Context, job Job, onPage ProgressFunc) (int, error) {
	log := p.logger.WithField("input", job.InputPath)

	if p.options.Validate && p.validate != nil {
		err := p.validate(job.InputPath)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, job.InputPath, err)
		}
	}

	doc, err := p.opener(job.InputPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, job.InputPath, err)
	}
	defer doc.Close()

	useOcr := job.UseOcr && p.engine != nil
	if job.UseOcr && !useOcr {
		log.Debug("OCR requested but no engine is available")
	}

	// an existing output is only truncated by a job that will write pages
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	out, err := os.Create(job.OutputPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIoFailure, err)
	}

	log.WithField("pages", doc.NumPages()).WithField("ocr", useOcr).Info("Converting")
	processed, err := p.convertPages(ctx, doc, out, useOcr, onPage)

	closeErr := out.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf("%w: %w", ErrIoFailure, closeErr)
	}

	return processed, err
}

func (p *Pipeline) convertPages(ctx context.Context, doc document.Document, w io.Writer, useOcr bool, onPage ProgressFunc) (int, error) {
	total := doc.NumPages()

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		result := p.ConvertPage(ctx, doc, i, useOcr)

		_, err := io.WriteString(w, result.Text)
		if err != nil {
			return i, fmt.Errorf("%w: write page %d: %w", ErrIoFailure, i+1, err)
		}

		if onPage != nil {
			onPage(i+1, total)
		}
	}

	return total, nil
}

// ConvertPage obtains the text of one page. It never fails: extraction and OCR
// errors are logged and yield empty text.
func (p *Pipeline) ConvertPage(ctx context.Context, doc document.Document, index int, useOcr bool) PageResult {
	log := p.logger.WithField("page", index+1)

	text, err := doc.Text(index)
	if err != nil {
		log.WithError(err).Warn("Direct text extraction failed")
		text = ""
	}

	if strings.TrimSpace(text) != "" {
		return PageResult{Index: index, Text: text, Source: SourceDirect}
	}

	if !useOcr || p.engine == nil {
		return PageResult{Index: index, Source: SourceDirect}
	}

	log.Debug("No text layer, running OCR")
	ocrText, err := p.recognizePage(ctx, doc, index)
	if err != nil {
		log.WithError(err).Warn("OCR failed")
		return PageResult{Index: index, Source: SourceOcr}
	}

	if strings.TrimSpace(ocrText) == "" {
		log.Warn("OCR produced no text")
		return PageResult{Index: index, Source: SourceOcr}
	}

	return PageResult{Index: index, Text: ocrText, Source: SourceOcr}
}

func (p *Pipeline) recognizePage(ctx context.Context, doc document.Document, index int) (string, error) {
	img, err := doc.Render(index, p.options.Dpi)
	if err != nil {
		return "", fmt.Errorf("%w: render page %d: %w", ErrOcrFailure, index+1, err)
	}

	gray := enhance.Preprocess(img, p.options.Contrast, p.options.Brightness)

	artifact, err := p.scratch.Write(p.imageExt, func(w io.Writer) error {
		return p.encode(w, gray)
	})
	if err != nil {
		return "", fmt.Errorf("%w: write page image: %w", ErrOcrFailure, err)
	}
	defer func() {
		if err := artifact.Close(); err != nil {
			p.logger.WithError(err).WithField("path", artifact.Path()).Warn("Failed to remove page image")
		}
	}()

	// a started recognition always runs to completion; cancellation is
	// observed between pages
	text, err := p.engine.Recognize(context.WithoutCancel(ctx), artifact.Path(), p.options.Languages, int(p.options.Dpi))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOcrFailure, err)
	}

	return text, nil
}
