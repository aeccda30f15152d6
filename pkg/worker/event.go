package worker

import (
	"github.com/schidstorm/pdf2txt/pkg/pipeline"
)

type EventType int

const (
	EventJobStarted EventType = iota
	EventPage
	EventJobDone
	EventJobFailed
	EventBatchDone
	EventBatchCancelled
)

func (t EventType) String() string {
	switch t {
	case EventJobStarted:
		return "job-started"
	case EventPage:
		return "page"
	case EventJobDone:
		return "job-done"
	case EventJobFailed:
		return "job-failed"
	case EventBatchDone:
		return "batch-done"
	case EventBatchCancelled:
		return "batch-cancelled"
	default:
		return "unknown"
	}
}

// Event is a notification from the worker to the foreground. The worker never
// reads events back.
type Event struct {
	Type      EventType
	Batch     int
	Job       pipeline.Job
	FileIndex int
	FileCount int
	Page      int
	PageCount int
	// Progress is the blended batch progress in [0, 1].
	Progress float64
	// Completed and Failed count finished jobs of the batch so far.
	Completed int
	Failed    int
	Err       error
}
