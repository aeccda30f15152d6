package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleComponent struct{}

func TestLoggerIsCachedPerType(t *testing.T) {
	a := Logger(&sampleComponent{})
	b := Logger(sampleComponent{})
	c := Logger("sampleComponent")

	assert.Same(t, a, b)
	assert.Same(t, a, c)
}

func TestLoggerInjectsName(t *testing.T) {
	l := Logger("named-test")
	buf := new(bytes.Buffer)
	l.SetOutput(buf)

	l.Warn("hello")
	assert.Contains(t, buf.String(), "name=named-test")
}

func TestConfigure(t *testing.T) {
	previous := logrus.GetLevel()
	t.Cleanup(func() {
		require.NoError(t, Configure(previous.String(), false))
	})

	l := Logger("configure-test")
	require.NoError(t, Configure("debug", true))

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.Equal(t, logrus.DebugLevel, l.Level)

	buf := new(bytes.Buffer)
	l.SetOutput(buf)
	l.Debug("json")
	assert.Contains(t, buf.String(), `"name":"configure-test"`)

	assert.Error(t, Configure("loud", false))
}
