package publish

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCifsDefaultPort(t *testing.T) {
	assert.Equal(t, 445, NewCifs(Options{}).options.Port)
	assert.Equal(t, 1445, NewCifs(Options{Port: 1445}).options.Port)
}

func TestCandidatePath(t *testing.T) {
	c := NewCifs(Options{BasePath: "texts"})

	assert.Equal(t, "texts/report.txt", c.candidatePath("/home/me/report.txt", 0))
	assert.Equal(t, "texts/report-2.txt", c.candidatePath("/home/me/report.txt", 2))

	c = NewCifs(Options{})
	assert.Equal(t, "report.txt", c.candidatePath("report.txt", 0))
}

func TestUploadAfterStopFails(t *testing.T) {
	c := NewCifs(Options{Hostname: "127.0.0.1", Port: 1})
	close(c.closeChannel)

	err := c.UploadReader(context.Background(), "report.txt", strings.NewReader("text"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestUploadGivesUpWhenContextDone(t *testing.T) {
	c := NewCifs(Options{Hostname: "127.0.0.1", Port: 1, Share: "texts"})
	require.NoError(t, c.Start())
	defer c.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	started := time.Now()
	err := c.UploadReader(ctx, "report.txt", strings.NewReader("text"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), 2*time.Second)
}
