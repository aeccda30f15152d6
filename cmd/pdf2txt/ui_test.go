package main

import (
	"testing"

	"github.com/schidstorm/pdf2txt/pkg/pipeline"
	"github.com/schidstorm/pdf2txt/pkg/worker"
	"github.com/stretchr/testify/assert"
)

func TestBarValue(t *testing.T) {
	assert.Equal(t, 0, barValue(-0.1))
	assert.Equal(t, 625, barValue(0.625))
	assert.Equal(t, barScale, barValue(1))
	assert.Equal(t, barScale, barValue(1.5))
}

func TestDescribe(t *testing.T) {
	ev := worker.Event{
		Type:      worker.EventPage,
		Job:       pipeline.NewJob("/scans/report.pdf", true),
		FileIndex: 2,
		FileCount: 3,
		Page:      4,
		PageCount: 10,
	}
	assert.Equal(t, "[2/3] report.pdf page 4/10", describe(ev))

	ev.Type = worker.EventJobStarted
	assert.Equal(t, "[2/3] report.pdf", describe(ev))
}

func TestRenderBatchIgnoresOtherBatches(t *testing.T) {
	events := make(chan worker.Event, 4)
	events <- worker.Event{Type: worker.EventBatchDone, Batch: 1}
	events <- worker.Event{Type: worker.EventJobDone, Batch: 2, Job: pipeline.NewJob("a.pdf", false)}
	events <- worker.Event{Type: worker.EventBatchDone, Batch: 2, Completed: 1, Progress: 1}
	close(events)

	final, lastOutput := renderBatch(events, 2)
	assert.Equal(t, worker.EventBatchDone, final.Type)
	assert.Equal(t, 1, final.Completed)
	assert.Equal(t, "a.txt", lastOutput)
}

func TestRenderBatchClosedChannel(t *testing.T) {
	events := make(chan worker.Event)
	close(events)

	final, _ := renderBatch(events, 1)
	assert.Equal(t, worker.EventBatchCancelled, final.Type)
}

func TestIsBlank(t *testing.T) {
	assert.True(t, isBlank(" \n\t"))
	assert.False(t, isBlank(" a "))
}
