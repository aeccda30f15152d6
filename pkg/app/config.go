package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedConfig = errors.New("unsupported config file format")

const (
	envTesseract  = "PDF2TXT_TESSERACT"
	envScratchDir = "PDF2TXT_SCRATCH_DIR"
	envLogLevel   = "PDF2TXT_LOG_LEVEL"
)

// LoadEnv loads the given dotenv files into the process environment. Missing
// files are skipped and variables already set are left alone.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}

		err := godotenv.Load(f)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}

	return nil
}

// LoadConfig starts from DefaultOptions, overlays the file at p (JSON or
// YAML by extension, skipped when p is empty) and applies environment
// overrides last.
func LoadConfig(p string) (Options, error) {
	opts := DefaultOptions()

	if p != "" {
		fileContent, err := os.ReadFile(p)
		if err != nil {
			return opts, err
		}

		switch path.Ext(p) {
		case ".json":
			err = json.Unmarshal(fileContent, &opts)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(fileContent, &opts)
		default:
			return opts, fmt.Errorf("%w: %s", ErrUnsupportedConfig, p)
		}
		if err != nil {
			return opts, fmt.Errorf("%s: %w", p, err)
		}
	}

	applyEnv(&opts)
	return opts, nil
}

func applyEnv(opts *Options) {
	if v := os.Getenv(envTesseract); v != "" {
		opts.Ocr.Binary = v
	}
	if v := os.Getenv(envScratchDir); v != "" {
		opts.Scratch.Dir = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		opts.Log.Level = v
	}
}
