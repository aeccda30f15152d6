package scratch

import (
	"errors"
	"os"
)

// Artifact is a scratch file that is deleted on Close.
type Artifact struct {
	path string
}

func (a *Artifact) Path() string {
	return a.path
}

func (a *Artifact) Close() error {
	err := os.Remove(a.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
