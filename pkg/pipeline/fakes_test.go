package pipeline

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/schidstorm/pdf2txt/pkg/document"
	"github.com/schidstorm/pdf2txt/pkg/scratch"
	"github.com/schidstorm/pdf2txt/pkg/tesseract"
	"github.com/stretchr/testify/require"
)

type fakeDocument struct {
	pages     []string
	textErr   map[int]error
	renderErr error
	closed    bool
}

func (d *fakeDocument) NumPages() int {
	return len(d.pages)
}

func (d *fakeDocument) Text(page int) (string, error) {
	if err := d.textErr[page]; err != nil {
		return "", err
	}
	return d.pages[page], nil
}

func (d *fakeDocument) Render(page int, dpi float64) (image.Image, error) {
	if d.renderErr != nil {
		return nil, d.renderErr
	}
	return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

// fakeEngine answers OCR calls in order from results.
type fakeEngine struct {
	mu        sync.Mutex
	results   []string
	errs      []error
	calls     int
	languages [][]string
	sawFile   []bool
	during    func()
}

func (e *fakeEngine) Name() string {
	return "fake"
}

func (e *fakeEngine) Recognize(ctx context.Context, imagePath string, languages []string, dpi int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, statErr := os.Stat(imagePath)
	e.sawFile = append(e.sawFile, statErr == nil)
	e.languages = append(e.languages, languages)

	i := e.calls
	e.calls++

	if e.during != nil {
		e.during()
	}
	if i < len(e.errs) && e.errs[i] != nil {
		return "", e.errs[i]
	}
	if i < len(e.results) {
		return e.results[i], nil
	}
	return "", nil
}

var _ tesseract.Engine = (*fakeEngine)(nil)

type fixture struct {
	pipeline *Pipeline
	scratch  *scratch.Dir
	dir      string
}

func newFixture(t *testing.T, doc document.Document, engine tesseract.Engine) *fixture {
	t.Helper()

	dir := t.TempDir()
	scratchDir, err := scratch.New(scratch.Options{Dir: filepath.Join(dir, "scratch")})
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Validate = false
	p, err := New(opts, scratchDir, nil)
	require.NoError(t, err)

	p.WithOpener(func(string) (document.Document, error) {
		if doc == nil {
			return nil, errors.New("not a pdf")
		}
		return doc, nil
	})
	if engine != nil {
		p.WithEngine(engine)
	}

	return &fixture{pipeline: p, scratch: scratchDir, dir: dir}
}

func (f *fixture) job(t *testing.T, useOcr bool) Job {
	t.Helper()
	input := filepath.Join(f.dir, "input.pdf")
	require.NoError(t, os.WriteFile(input, []byte("%PDF-1.4"), 0o644))
	return NewJob(input, useOcr)
}

func readOutput(t *testing.T, job Job) string {
	t.Helper()
	content, err := os.ReadFile(job.OutputPath)
	require.NoError(t, err)
	return string(content)
}

func (f *fixture) requireScratchEmpty(t *testing.T) {
	t.Helper()
	entries, err := f.scratch.Entries()
	require.NoError(t, err)
	require.Empty(t, entries)
}
