package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/schidstorm/pdf2txt/pkg/logger"
	"github.com/schidstorm/pdf2txt/pkg/pipeline"
	"github.com/schidstorm/pdf2txt/pkg/progress"
	"github.com/sirupsen/logrus"
)

var ErrStopped = errors.New("worker stopped")

var eventBufferSize = 64

var defaultPublishTimeout = 30 * time.Second

type Converter interface {
	Convert(ctx context.Context, job pipeline.Job, onPage pipeline.ProgressFunc) (int, error)
}

// Publisher receives every successfully written output file. UploadFile must
// return once ctx is done.
type Publisher interface {
	UploadFile(ctx context.Context, localPath string) error
}

type batch struct {
	id   int
	jobs []pipeline.Job
}

// Worker runs submitted batches one after another on a single goroutine.
// Within a batch, jobs run in order; a failed job does not stop the batch but
// Cancel does.
type Worker struct {
	converter Converter
	publisher Publisher
	cleanup   func() error
	logger    *logrus.Logger

	// publishTimeout bounds a single upload so an unreachable target cannot
	// hold up the batch.
	publishTimeout time.Duration

	queue        chan batch
	events       chan Event
	closeRequest chan struct{}
	wgClosed     *sync.WaitGroup

	mutex      sync.Mutex
	nextBatch  int
	cancelFunc context.CancelFunc
	started    bool
	stopped    bool
}

func New(converter Converter) *Worker {
	w := &Worker{
		converter:    converter,
		queue:        make(chan batch, 16),
		events:       make(chan Event, eventBufferSize),
		closeRequest: make(chan struct{}),
		wgClosed:     new(sync.WaitGroup),

		publishTimeout: defaultPublishTimeout,
	}
	w.logger = logger.Logger(w)

	return w
}

func (w *Worker) WithPublisher(publisher Publisher) *Worker {
	w.publisher = publisher
	return w
}

func (w *Worker) WithPublishTimeout(timeout time.Duration) *Worker {
	w.publishTimeout = timeout
	return w
}

// WithCleanup registers a function run after every batch.
func (w *Worker) WithCleanup(cleanup func() error) *Worker {
	w.cleanup = cleanup
	return w
}

func (w *Worker) Events() <-chan Event {
	return w.events
}

func (w *Worker) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.started {
		return nil
	}
	w.started = true

	w.wgClosed.Add(1)
	go w.run()
	return nil
}

// Stop cancels the running batch, drops queued ones and waits for the worker
// goroutine to exit. The events channel is closed afterwards.
func (w *Worker) Stop() error {
	w.mutex.Lock()
	if w.stopped {
		w.mutex.Unlock()
		return nil
	}
	w.stopped = true
	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	started := w.started
	w.mutex.Unlock()

	close(w.closeRequest)
	if started {
		w.wgClosed.Wait()
	}
	close(w.events)
	return nil
}

// Submit queues jobs as one batch and returns its id.
func (w *Worker) Submit(jobs []pipeline.Job) (int, error) {
	w.mutex.Lock()
	if w.stopped {
		w.mutex.Unlock()
		return 0, ErrStopped
	}
	w.nextBatch++
	b := batch{id: w.nextBatch, jobs: append([]pipeline.Job(nil), jobs...)}
	w.mutex.Unlock()

	select {
	case w.queue <- b:
		return b.id, nil
	case <-w.closeRequest:
		return 0, ErrStopped
	}
}

// Cancel stops the running batch after its current page. Queued batches are
// not affected.
func (w *Worker) Cancel() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
}

func (w *Worker) run() {
	defer w.wgClosed.Done()

	for {
		select {
		case <-w.closeRequest:
			return
		case b := <-w.queue:
			w.runBatch(b)
		}
	}
}

func (w *Worker) runBatch(b batch) {
	ctx, cancel := context.WithCancel(context.Background())
	w.mutex.Lock()
	w.cancelFunc = cancel
	if w.stopped {
		cancel()
	}
	w.mutex.Unlock()

	defer func() {
		w.mutex.Lock()
		w.cancelFunc = nil
		w.mutex.Unlock()
		cancel()
	}()

	log := w.logger.WithField("batch", b.id)
	log.WithField("files", len(b.jobs)).Info("Starting batch")

	tracker := progress.NewTracker(len(b.jobs))
	completed, failed := 0, 0
	cancelled := false

	for i, job := range b.jobs {
		if ctx.Err() != nil {
			cancelled = true
			break
		}

		base := Event{Batch: b.id, Job: job, FileIndex: i + 1, FileCount: len(b.jobs)}

		started := base
		started.Type = EventJobStarted
		started.Progress = tracker.Page(0, 1)
		w.emit(started)

		err := w.runJob(ctx, job, func(current, total int) {
			ev := base
			ev.Type = EventPage
			ev.Page = current
			ev.PageCount = total
			ev.Progress = tracker.Page(current, total)
			w.emit(ev)
		})

		if errors.Is(err, context.Canceled) {
			log.WithField("input", job.InputPath).Info("Cancelled")
			cancelled = true
			break
		}

		done := base
		done.Progress = tracker.FileDone()
		if err != nil {
			failed++
			log.WithField("input", job.InputPath).WithError(err).Error("Conversion failed")
			done.Type = EventJobFailed
			done.Err = err
		} else {
			completed++
			w.publish(ctx, job)
			done.Type = EventJobDone
		}
		done.Completed, done.Failed = completed, failed
		w.emit(done)
	}

	w.runCleanup()

	final := Event{
		Batch:     b.id,
		FileCount: len(b.jobs),
		Progress:  progress.Overall(0, 0, tracker.FilesCompleted(), tracker.TotalFiles()),
		Completed: completed,
		Failed:    failed,
		Type:      EventBatchDone,
	}
	if cancelled {
		final.Type = EventBatchCancelled
		final.Err = context.Canceled
	}
	log.WithField("completed", completed).WithField("failed", failed).WithField("cancelled", cancelled).Info("Batch finished")
	w.emit(final)
}

func (w *Worker) runJob(ctx context.Context, job pipeline.Job, onPage pipeline.ProgressFunc) (resErr error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.WithField("recover", r).Error("Recovered")
			resErr = fmt.Errorf("conversion panicked: %v", r)
		}
	}()

	_, err := w.converter.Convert(ctx, job, onPage)
	return err
}

func (w *Worker) publish(ctx context.Context, job pipeline.Job) {
	if w.publisher == nil {
		return
	}

	if w.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.publishTimeout)
		defer cancel()
	}

	err := w.publisher.UploadFile(ctx, job.OutputPath)
	if err != nil {
		w.logger.WithField("output", job.OutputPath).WithError(err).Warn("Failed to publish output")
	}
}

func (w *Worker) runCleanup() {
	if w.cleanup == nil {
		return
	}

	err := w.cleanup()
	if err != nil {
		w.logger.WithError(err).Warn("Scratch cleanup incomplete")
	}
}

// emit blocks until the foreground takes the event or the worker is stopped.
func (w *Worker) emit(ev Event) {
	select {
	case w.events <- ev:
	case <-w.closeRequest:
	}
}
