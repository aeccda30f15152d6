// Package watch turns a directory into a hot folder: PDFs dropped into it are
// queued for conversion once they stop changing.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/schidstorm/pdf2txt/pkg/logger"
	"github.com/schidstorm/pdf2txt/pkg/pipeline"
	"github.com/sirupsen/logrus"
)

var defaultSettle = 2 * time.Second

type Options struct {
	// SettleMs is how long a file must stay unchanged before it is queued.
	SettleMs int  `json:"settleMs" yaml:"settleMs"`
	Existing bool `json:"existing" yaml:"existing"`
	Ocr      bool `json:"ocr" yaml:"ocr"`
}

type Submitter interface {
	Submit(jobs []pipeline.Job) (int, error)
}

type Watcher struct {
	dir       string
	options   Options
	submitter Submitter
	logger    *logrus.Logger

	mutex  sync.Mutex
	timers map[string]*pending
}

// pending is one settle timer; its address identifies the event that armed it.
type pending struct {
	timer *time.Timer
}

func New(dir string, opts Options, submitter Submitter) *Watcher {
	w := &Watcher{
		dir:       dir,
		options:   opts,
		submitter: submitter,
		timers:    make(map[string]*pending),
	}
	w.logger = logger.Logger(w)

	return w
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = watcher.Add(w.dir)
	if err != nil {
		return err
	}
	w.logger.WithField("dir", w.dir).Info("Watching for PDF files")

	if w.options.Existing {
		err = w.submitExisting()
		if err != nil {
			return err
		}
	}

	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("Watcher error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !isPdf(event.Name) {
		return
	}

	switch {
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		w.schedule(event.Name)
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		w.unschedule(event.Name)
	}
}

// schedule (re)starts the settle timer of path.
func (w *Watcher) schedule(path string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if entry, ok := w.timers[path]; ok {
		entry.timer.Stop()
	}

	entry := new(pending)
	entry.timer = time.AfterFunc(w.settle(), func() {
		w.fire(path, entry)
	})
	w.timers[path] = entry
}

// fire submits path unless entry has been superseded by a later event. A
// stopped timer may still fire, so identity decides and not Stop's result.
func (w *Watcher) fire(path string, entry *pending) {
	w.mutex.Lock()
	current := w.timers[path] == entry
	if current {
		delete(w.timers, path)
	}
	w.mutex.Unlock()

	if current {
		w.submit([]string{path})
	}
}

func (w *Watcher) unschedule(path string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if entry, ok := w.timers[path]; ok {
		entry.timer.Stop()
		delete(w.timers, path)
	}
}

func (w *Watcher) stopTimers() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for path, entry := range w.timers {
		entry.timer.Stop()
		delete(w.timers, path)
	}
}

// Pending reports how many files are waiting to settle.
func (w *Watcher) Pending() int {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return len(w.timers)
}

func (w *Watcher) submitExisting() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isPdf(entry.Name()) {
			continue
		}

		p := filepath.Join(w.dir, entry.Name())
		if _, err := os.Stat(pipeline.OutputPath(p)); err == nil {
			continue
		}
		paths = append(paths, p)
	}

	if len(paths) == 0 {
		return nil
	}

	sort.Strings(paths)
	w.submit(paths)
	return nil
}

func (w *Watcher) submit(paths []string) {
	jobs := make([]pipeline.Job, 0, len(paths))
	for _, p := range paths {
		jobs = append(jobs, pipeline.NewJob(p, w.options.Ocr))
	}

	id, err := w.submitter.Submit(jobs)
	if err != nil {
		w.logger.WithError(err).WithField("files", paths).Error("Failed to queue files")
		return
	}
	w.logger.WithField("batch", id).WithField("files", paths).Info("Queued")
}

func (w *Watcher) settle() time.Duration {
	if w.options.SettleMs > 0 {
		return time.Duration(w.options.SettleMs) * time.Millisecond
	}
	return defaultSettle
}

func isPdf(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
