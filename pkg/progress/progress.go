// Package progress computes the blended batch progress shown while several
// files are converted one after another.
package progress

// Overall returns the batch progress in [0, 1]: the fraction of the current
// file plus the number of completed files, divided by the number of files.
// Files of different lengths weigh the same, so the value is not linear in
// pages.
func Overall(pagesDone, totalPages, filesCompleted, totalFiles int) float64 {
	if totalFiles <= 0 {
		return 0
	}

	var fileFraction float64
	if totalPages > 0 {
		fileFraction = float64(pagesDone) / float64(totalPages)
	}

	return (fileFraction + float64(filesCompleted)) / float64(totalFiles)
}

// Tracker follows one batch.
type Tracker struct {
	totalFiles     int
	filesCompleted int
}

func NewTracker(totalFiles int) *Tracker {
	return &Tracker{totalFiles: totalFiles}
}

// Page reports progress after page pagesDone of totalPages in the current file.
func (t *Tracker) Page(pagesDone, totalPages int) float64 {
	return Overall(pagesDone, totalPages, t.filesCompleted, t.totalFiles)
}

// FileDone marks the current file as finished, whatever its outcome.
func (t *Tracker) FileDone() float64 {
	t.filesCompleted++
	return Overall(0, 0, t.filesCompleted, t.totalFiles)
}

func (t *Tracker) FilesCompleted() int {
	return t.filesCompleted
}

func (t *Tracker) TotalFiles() int {
	return t.totalFiles
}
