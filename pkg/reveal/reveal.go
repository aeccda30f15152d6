// Package reveal shows a file in the platform's file manager.
package reveal

import (
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Reveal opens the file manager at path. It does not wait for the file
// manager and ignores every failure.
func Reveal(path string) {
	name, args := commandFor(runtime.GOOS, path)

	cmd := exec.Command(name, args...)
	err := cmd.Start()
	if err != nil {
		logrus.WithError(err).WithField("path", path).Debug("Failed to reveal file")
		return
	}

	go cmd.Wait()
}

func commandFor(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "explorer", []string{"/select," + path}
	case "darwin":
		return "open", []string{"-R", path}
	default:
		return "xdg-open", []string{filepath.Dir(path)}
	}
}
