package document

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/schidstorm/pdf2txt/pkg/pdftest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGarbage(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(p, []byte("this is not a pdf"), 0o644))
	return p
}

func TestNewOpener(t *testing.T) {
	for _, backend := range []string{"", BackendFitz, BackendPlain} {
		opener, err := NewOpener(backend)
		assert.NoError(t, err, backend)
		assert.NotNil(t, opener, backend)
	}

	_, err := NewOpener("poppler")
	assert.Error(t, err)
}

func TestOpenMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pdf")

	_, err := OpenFitz(missing)
	assert.Error(t, err)

	_, err = OpenPlain(missing)
	assert.Error(t, err)
}

func TestOpenPlainRejectsGarbage(t *testing.T) {
	_, err := OpenPlain(writeGarbage(t))
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	assert.Error(t, Validate(writeGarbage(t)))
}

func TestCheckPage(t *testing.T) {
	assert.NoError(t, checkPage(0, 1))
	assert.ErrorIs(t, checkPage(1, 1), ErrPageOutOfRange)
	assert.ErrorIs(t, checkPage(-1, 3), ErrPageOutOfRange)
}

func writeSample(t *testing.T) string {
	return pdftest.Write(t, t.TempDir(), "sample.pdf", "Hello", "", "World")
}

func TestValidateAcceptsSample(t *testing.T) {
	p := writeSample(t)
	assert.NoError(t, Validate(p))

	count, err := PageCount(p)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestBackendsExtractPerPageText(t *testing.T) {
	p := writeSample(t)

	for _, backend := range []string{BackendFitz, BackendPlain} {
		t.Run(backend, func(t *testing.T) {
			opener, err := NewOpener(backend)
			require.NoError(t, err)

			doc, err := opener(p)
			require.NoError(t, err)
			defer doc.Close()

			require.Equal(t, 3, doc.NumPages())
			for i, want := range []string{"Hello", "", "World"} {
				text, err := doc.Text(i)
				require.NoError(t, err)
				assert.Equal(t, want, strings.TrimSpace(text), "page %d", i+1)
			}

			_, err = doc.Text(3)
			assert.ErrorIs(t, err, ErrPageOutOfRange)
		})
	}
}

func TestFitzRender(t *testing.T) {
	doc, err := OpenFitz(writeSample(t))
	require.NoError(t, err)
	defer doc.Close()

	img, err := doc.Render(1, 300)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 834, 834), img.Bounds())
}

func TestPlainCannotRender(t *testing.T) {
	doc, err := OpenPlain(writeSample(t))
	require.NoError(t, err)
	defer doc.Close()

	_, err = doc.Render(0, 300)
	assert.ErrorIs(t, err, ErrRenderUnsupported)
}
