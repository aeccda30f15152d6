package pipeline

import (
	"path/filepath"
	"strings"
)

type Source string

const (
	SourceDirect Source = "direct"
	SourceOcr    Source = "ocr"
)

// Job converts one input file into a sibling text file.
type Job struct {
	InputPath  string
	OutputPath string
	UseOcr     bool
}

func NewJob(inputPath string, useOcr bool) Job {
	return Job{
		InputPath:  inputPath,
		OutputPath: OutputPath(inputPath),
		UseOcr:     useOcr,
	}
}

// OutputPath replaces the extension of inputPath with .txt, or appends it
// when there is none.
func OutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".txt"
}

// PageResult is the outcome for a single page. Text may be empty.
type PageResult struct {
	Index  int
	Text   string
	Source Source
}

// ProgressFunc is called after every page with the number of pages processed
// so far and the page count of the document.
type ProgressFunc func(current, total int)
