package main

import (
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCanceler struct {
	calls atomic.Int32
}

func (c *countingCanceler) Cancel() {
	c.calls.Add(1)
}

func TestCancelOnInterrupt(t *testing.T) {
	canceler := &countingCanceler{}
	stop := cancelOnInterrupt(canceler)
	defer stop()

	self, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, self.Signal(os.Interrupt))

	assert.Eventually(t, func() bool {
		return canceler.calls.Load() == 1
	}, 5*time.Second, 10*time.Millisecond)
}
