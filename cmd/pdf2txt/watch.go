package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/briandowns/spinner"
	"github.com/schidstorm/pdf2txt/pkg/watch"
	"github.com/schidstorm/pdf2txt/pkg/worker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runWatch(cmd *cobra.Command, args []string) {
	opts := loadOptions(cmd)
	if cmd.Flags().Changed("ocr") {
		opts.Watch.Ocr, _ = cmd.Flags().GetBool("ocr")
	}
	if cmd.Flags().Changed("existing") {
		opts.Watch.Existing, _ = cmd.Flags().GetBool("existing")
	}

	a := buildApp(opts)
	if opts.Watch.Ocr && !a.OcrAvailable() {
		warning("%v; scanned pages will produce no text", a.OcrError())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	watcher := watch.New(args[0], opts.Watch, a.Worker())
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- watcher.Run(ctx)
	}()

	idle := "Waiting for PDF files in " + args[0]
	s := newSpinner(idle)
	s.Start()

	var err error
loop:
	for {
		select {
		case err = <-watchErr:
			break loop
		case <-ctx.Done():
			a.Worker().Cancel()
			err = <-watchErr
			break loop
		case ev, ok := <-a.Worker().Events():
			if !ok {
				break loop
			}
			renderWatchEvent(s, ev, idle)
		}
	}

	s.Stop()
	if err != nil {
		logrus.WithError(err).Error("Watcher failed")
	}

	err = a.Stop()
	if err != nil {
		logrus.WithError(err).Warn("Shutdown incomplete")
	}
}

func renderWatchEvent(s *spinner.Spinner, ev worker.Event, idle string) {
	switch ev.Type {
	case worker.EventJobStarted, worker.EventPage:
		setSuffix(s, describe(ev))
	case worker.EventJobDone:
		s.Stop()
		success("%s → %s", ev.Job.InputPath, ev.Job.OutputPath)
		s.Start()
	case worker.EventJobFailed:
		s.Stop()
		failure("%s: %v", ev.Job.InputPath, ev.Err)
		s.Start()
	case worker.EventBatchDone, worker.EventBatchCancelled:
		setSuffix(s, idle)
	}
}

func setSuffix(s *spinner.Spinner, text string) {
	s.Lock()
	s.Suffix = " " + text
	s.Unlock()
}
