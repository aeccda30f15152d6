// Package app wires the conversion pipeline, the background worker and the
// optional publisher into one runnable unit.
package app

import (
	"errors"
	"fmt"

	"github.com/schidstorm/pdf2txt/pkg/logger"
	"github.com/schidstorm/pdf2txt/pkg/pipeline"
	"github.com/schidstorm/pdf2txt/pkg/publish"
	"github.com/schidstorm/pdf2txt/pkg/scratch"
	"github.com/schidstorm/pdf2txt/pkg/tesseract"
	"github.com/schidstorm/pdf2txt/pkg/watch"
	"github.com/schidstorm/pdf2txt/pkg/worker"
	"github.com/sirupsen/logrus"
)

type LogOptions struct {
	Level string `json:"level" yaml:"level"`
	Json  bool   `json:"json" yaml:"json"`
}

type Options struct {
	Log      LogOptions        `json:"log" yaml:"log"`
	Pipeline pipeline.Options  `json:"pipeline" yaml:"pipeline"`
	Ocr      tesseract.Options `json:"ocr" yaml:"ocr"`
	Scratch  scratch.Options   `json:"scratch" yaml:"scratch"`
	Publish  publish.Options   `json:"publish" yaml:"publish"`
	Watch    watch.Options     `json:"watch" yaml:"watch"`
}

func DefaultOptions() Options {
	return Options{
		Log:      LogOptions{Level: "info"},
		Pipeline: pipeline.DefaultOptions(),
		Ocr:      tesseract.Options{Engine: tesseract.EngineCli},
		Scratch:  scratch.Options{Dir: scratch.DefaultDir()},
		Publish:  publish.Options{Port: 445},
		Watch:    watch.Options{SettleMs: 2000},
	}
}

type App struct {
	options   Options
	scratch   *scratch.Dir
	engine    tesseract.Engine
	ocrErr    error
	pipeline  *pipeline.Pipeline
	worker    *worker.Worker
	publisher *publish.Cifs
	logger    *logrus.Logger
}

// New builds every component. A missing OCR engine is not an error: it is
// reported once and OCR stays disabled for the lifetime of the App.
func New(opts Options) (*App, error) {
	a := &App{options: opts}
	a.logger = logger.Logger(a)

	dir, err := scratch.New(opts.Scratch)
	if err != nil {
		return nil, err
	}
	a.scratch = dir

	engine, err := tesseract.NewEngine(opts.Ocr)
	if errors.Is(err, tesseract.ErrNotFound) {
		a.ocrErr = fmt.Errorf("%w: %w", pipeline.ErrOcrUnavailable, err)
		a.logger.WithError(a.ocrErr).Warn("Pages without a text layer will stay empty")
	} else if err != nil {
		return nil, err
	} else {
		a.engine = engine
		a.logger.WithField("engine", engine.Name()).Debug("OCR engine ready")
	}

	a.pipeline, err = pipeline.New(opts.Pipeline, dir, a.engine)
	if err != nil {
		return nil, err
	}

	a.worker = worker.New(a.pipeline).WithCleanup(dir.Clean)

	if opts.Publish.Enabled {
		a.publisher = publish.NewCifs(opts.Publish)
		a.worker.WithPublisher(a.publisher)
	}

	return a, nil
}

func (a *App) Start() error {
	if a.publisher != nil {
		err := a.publisher.Start()
		if err != nil {
			return err
		}
	}

	return a.worker.Start()
}

// Stop closes the share connection, halts the worker and empties the scratch
// directory. The publisher goes first so an upload waiting for a connection
// returns instead of blocking the worker.
func (a *App) Stop() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Stop())
	}
	errs = append(errs, a.worker.Stop())
	errs = append(errs, a.scratch.Clean())

	return errors.Join(errs...)
}

func (a *App) Options() Options {
	return a.options
}

func (a *App) Worker() *worker.Worker {
	return a.worker
}

func (a *App) Pipeline() *pipeline.Pipeline {
	return a.pipeline
}

func (a *App) Scratch() *scratch.Dir {
	return a.scratch
}

// Engine returns nil when OCR is unavailable.
func (a *App) Engine() tesseract.Engine {
	return a.engine
}

func (a *App) OcrAvailable() bool {
	return a.engine != nil
}

// OcrError explains why OCR is unavailable. It wraps
// pipeline.ErrOcrUnavailable and is nil when an engine is ready.
func (a *App) OcrError() error {
	return a.ocrErr
}
