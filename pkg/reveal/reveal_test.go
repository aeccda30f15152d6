package reveal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandFor(t *testing.T) {
	file := filepath.Join("docs", "report.txt")

	name, args := commandFor("windows", file)
	assert.Equal(t, "explorer", name)
	assert.Equal(t, []string{"/select," + file}, args)

	name, args = commandFor("darwin", file)
	assert.Equal(t, "open", name)
	assert.Equal(t, []string{"-R", file}, args)

	name, args = commandFor("linux", file)
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{"docs"}, args)
}
