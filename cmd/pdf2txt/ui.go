package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/schidstorm/pdf2txt/pkg/worker"
	"github.com/schollz/progressbar/v3"
)

// barScale is the resolution of the blended batch progress.
const barScale = 1000

func success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(os.Stderr, "✓ %s\n", fmt.Sprintf(format, args...))
}

func failure(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, args...))
}

func warning(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(os.Stderr, "⚠ %s\n", fmt.Sprintf(format, args...))
}

func info(format string, args ...any) {
	color.New(color.FgCyan).Fprintf(os.Stderr, "ℹ %s\n", fmt.Sprintf(format, args...))
}

func newProgressBar() *progressbar.ProgressBar {
	return progressbar.NewOptions(barScale,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + suffix
	return s
}

// describe is the one-line status shown next to the progress bar.
func describe(ev worker.Event) string {
	name := filepath.Base(ev.Job.InputPath)
	switch ev.Type {
	case worker.EventJobStarted:
		return fmt.Sprintf("[%d/%d] %s", ev.FileIndex, ev.FileCount, name)
	case worker.EventPage:
		return fmt.Sprintf("[%d/%d] %s page %d/%d", ev.FileIndex, ev.FileCount, name, ev.Page, ev.PageCount)
	default:
		return name
	}
}

func barValue(progress float64) int {
	v := int(progress * barScale)
	if v < 0 {
		return 0
	}
	if v > barScale {
		return barScale
	}
	return v
}
