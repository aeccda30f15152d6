package main

import (
	"os"
	"os/signal"

	"github.com/schidstorm/pdf2txt/pkg/pipeline"
	"github.com/schidstorm/pdf2txt/pkg/reveal"
	"github.com/schidstorm/pdf2txt/pkg/worker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const exitCancelled = 130

func runConvert(cmd *cobra.Command, args []string) {
	opts := loadOptions(cmd)
	useOcr, _ := cmd.Flags().GetBool("ocr")
	revealOutput, _ := cmd.Flags().GetBool("reveal")

	a := buildApp(opts)
	if useOcr && !a.OcrAvailable() {
		warning("%v; scanned pages will produce no text", a.OcrError())
	}

	jobs := make([]pipeline.Job, 0, len(args))
	for _, arg := range args {
		jobs = append(jobs, pipeline.NewJob(arg, useOcr))
	}

	stopSignals := cancelOnInterrupt(a.Worker())

	id, err := a.Worker().Submit(jobs)
	if err != nil {
		stopSignals()
		a.Stop()
		logrus.WithError(err).Fatal("Failed to queue files")
	}

	final, lastOutput := renderBatch(a.Worker().Events(), id)
	stopSignals()

	err = a.Stop()
	if err != nil {
		logrus.WithError(err).Warn("Shutdown incomplete")
	}

	if revealOutput && lastOutput != "" {
		reveal.Reveal(lastOutput)
	}

	switch {
	case final.Type == worker.EventBatchCancelled:
		os.Exit(exitCancelled)
	case final.Failed > 0:
		os.Exit(1)
	}
}

// cancelOnInterrupt turns every SIGINT into a cooperative cancel of the running
// batch until the returned function is called.
func cancelOnInterrupt(w interface{ Cancel() }) func() {
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-signalChannel:
				w.Cancel()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(signalChannel)
		close(done)
	}
}

// renderBatch draws events of batch id until it finishes and returns the
// final event and the last output written.
func renderBatch(events <-chan worker.Event, id int) (worker.Event, string) {
	bar := newProgressBar()
	var lastOutput string

	for ev := range events {
		if ev.Batch != id {
			continue
		}

		bar.Set(barValue(ev.Progress))

		switch ev.Type {
		case worker.EventJobStarted, worker.EventPage:
			bar.Describe(describe(ev))
		case worker.EventJobDone:
			bar.Clear()
			success("%s → %s", ev.Job.InputPath, ev.Job.OutputPath)
			lastOutput = ev.Job.OutputPath
		case worker.EventJobFailed:
			bar.Clear()
			failure("%s: %v", ev.Job.InputPath, ev.Err)
		case worker.EventBatchDone:
			bar.Finish()
			info("%d converted, %d failed", ev.Completed, ev.Failed)
			return ev, lastOutput
		case worker.EventBatchCancelled:
			bar.Clear()
			warning("Cancelled after %d converted, %d failed", ev.Completed, ev.Failed)
			return ev, lastOutput
		}
	}

	return worker.Event{Type: worker.EventBatchCancelled}, lastOutput
}
