package pipeline

import "errors"

var (
	// ErrInvalidDocument aborts a job: the input could not be opened or parsed.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrOcrUnavailable disables OCR for the run; it never fails a job.
	ErrOcrUnavailable = errors.New("ocr unavailable")
	// ErrOcrFailure is a per-page failure; the page contributes no text.
	ErrOcrFailure = errors.New("ocr failed")
	// ErrIoFailure aborts a job: the output could not be written.
	ErrIoFailure = errors.New("i/o failure")
)
