package scratch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultDir is the per-user scratch location used when none is configured.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("pdf2txt-%d", os.Getuid()))
}

type Options struct {
	Dir string `json:"dir" yaml:"dir"`
}

type Dir struct {
	path string
}

// New prepares the scratch directory, creating it if absent.
func New(opts Options) (*Dir, error) {
	p := opts.Dir
	if p == "" {
		p = DefaultDir()
	}

	err := ensureDir(p)
	if err != nil {
		return nil, err
	}

	return &Dir{path: p}, nil
}

func (d *Dir) Path() string {
	return d.path
}

// Write creates a uniquely named file with the given extension and fills it
// using encode. The file is closed before Write returns; on any failure it is
// removed again.
func (d *Dir) Write(ext string, encode func(w io.Writer) error) (*Artifact, error) {
	err := ensureDir(d.path)
	if err != nil {
		return nil, err
	}

	filePath := filepath.Join(d.path, uuid.NewString()+ext)
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, err
	}

	err = encode(file)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
		return nil, err
	}

	return &Artifact{path: filePath}, nil
}

// Entries lists the names of files currently in the directory.
func (d *Dir) Entries() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// Clean removes everything inside the directory, keeping the directory itself.
// It keeps going past individual failures and reports them joined.
func (d *Dir) Clean() error {
	names, err := d.Entries()
	if err != nil {
		return err
	}

	var errs []error
	for _, name := range names {
		err := os.RemoveAll(filepath.Join(d.path, name))
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func ensureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0o700)
		if err != nil {
			return err
		}
	}

	return nil
}
