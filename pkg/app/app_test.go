package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/schidstorm/pdf2txt/pkg/pipeline"
	"github.com/schidstorm/pdf2txt/pkg/tesseract"
	"github.com/schidstorm/pdf2txt/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(t *testing.T) Options {
	opts := DefaultOptions()
	opts.Scratch.Dir = filepath.Join(t.TempDir(), "scratch")
	opts.Ocr.Binary = filepath.Join(t.TempDir(), "no-tesseract")
	return opts
}

func TestNewWithoutOcr(t *testing.T) {
	a, err := New(testOptions(t))
	require.NoError(t, err)

	assert.False(t, a.OcrAvailable())
	assert.Nil(t, a.Engine())
	assert.False(t, a.Pipeline().OcrAvailable())
	assert.ErrorIs(t, a.OcrError(), pipeline.ErrOcrUnavailable)
	assert.ErrorIs(t, a.OcrError(), tesseract.ErrNotFound)
	assert.DirExists(t, a.Scratch().Path())
}

func TestNewUnknownEngine(t *testing.T) {
	opts := testOptions(t)
	opts.Ocr.Engine = "abacus"

	_, err := New(opts)
	assert.Error(t, err)
}

func TestNewUnknownBackend(t *testing.T) {
	opts := testOptions(t)
	opts.Pipeline.Backend = "carbon-paper"

	_, err := New(opts)
	assert.Error(t, err)
}

func TestBatchReportsFailureAndCleansUp(t *testing.T) {
	a, err := New(testOptions(t))
	require.NoError(t, err)
	require.NoError(t, a.Start())

	leftover := filepath.Join(a.Scratch().Path(), "left.png")
	require.NoError(t, os.WriteFile(leftover, []byte("x"), 0o644))

	missing := filepath.Join(t.TempDir(), "missing.pdf")
	_, err = a.Worker().Submit([]pipeline.Job{pipeline.NewJob(missing, false)})
	require.NoError(t, err)

	var types []worker.EventType
	for ev := range a.Worker().Events() {
		types = append(types, ev.Type)
		if ev.Type == worker.EventJobFailed {
			assert.ErrorIs(t, ev.Err, pipeline.ErrInvalidDocument)
		}
		if ev.Type == worker.EventBatchDone {
			assert.Equal(t, 1, ev.Failed)
			break
		}
	}

	assert.Equal(t, []worker.EventType{worker.EventJobStarted, worker.EventJobFailed, worker.EventBatchDone}, types)
	assert.NoFileExists(t, pipeline.OutputPath(missing))
	assert.NoFileExists(t, leftover)
	require.NoError(t, a.Stop())
}
