package tesseract

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("tesseract not found")

const binaryEnv = "PDF2TXT_TESSERACT"

// Locate finds the tesseract executable. An explicitly configured path wins,
// then the PDF2TXT_TESSERACT environment variable, then PATH, then the usual
// install locations of the current platform.
func Locate(configured string) (string, error) {
	if configured != "" {
		if isExecutable(configured) {
			return configured, nil
		}
		return "", errors.Join(ErrNotFound, errors.New("configured binary is not executable: "+configured))
	}

	if fromEnv := os.Getenv(binaryEnv); fromEnv != "" {
		if isExecutable(fromEnv) {
			return fromEnv, nil
		}
		logrus.WithField("path", fromEnv).Warn(binaryEnv + " does not point to an executable")
	}

	if p, err := exec.LookPath("tesseract"); err == nil {
		return p, nil
	}

	for _, candidate := range wellKnownPaths(runtime.GOOS) {
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	return "", ErrNotFound
}

func wellKnownPaths(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			filepath.Join(os.Getenv("ProgramFiles"), "Tesseract-OCR", "tesseract.exe"),
			filepath.Join(os.Getenv("ProgramFiles(x86)"), "Tesseract-OCR", "tesseract.exe"),
			filepath.Join(os.Getenv("LOCALAPPDATA"), "Programs", "Tesseract-OCR", "tesseract.exe"),
		}
	case "darwin":
		return []string{"/opt/homebrew/bin/tesseract", "/usr/local/bin/tesseract", "/opt/local/bin/tesseract"}
	default:
		return []string{"/usr/bin/tesseract", "/usr/local/bin/tesseract", "/snap/bin/tesseract"}
	}
}

func isExecutable(p string) bool {
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
