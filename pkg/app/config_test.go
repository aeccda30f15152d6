package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	opts, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 300.0, opts.Pipeline.Dpi)
	assert.Equal(t, 2.0, opts.Pipeline.Contrast)
	assert.Equal(t, 1.5, opts.Pipeline.Brightness)
	assert.Equal(t, []string{"chi_sim", "eng"}, opts.Pipeline.Languages)
	assert.True(t, opts.Pipeline.Validate)
}

func TestLoadConfigYaml(t *testing.T) {
	p := writeConfig(t, "config.yml", `
log:
  level: debug
pipeline:
  dpi: 200
  languages: [eng]
ocr:
  psm: 6
publish:
  enabled: true
  hostname: nas
`)

	opts, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, "debug", opts.Log.Level)
	assert.Equal(t, 200.0, opts.Pipeline.Dpi)
	assert.Equal(t, 2.0, opts.Pipeline.Contrast)
	assert.Equal(t, []string{"eng"}, opts.Pipeline.Languages)
	assert.Equal(t, 6, opts.Ocr.Psm)
	assert.True(t, opts.Publish.Enabled)
	assert.Equal(t, "nas", opts.Publish.Hostname)
	assert.Equal(t, 445, opts.Publish.Port)
}

func TestLoadConfigJson(t *testing.T) {
	p := writeConfig(t, "config.json", `{"pipeline": {"imageFormat": "tiff", "validate": false}}`)

	opts, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, "tiff", opts.Pipeline.ImageFormat)
	assert.False(t, opts.Pipeline.Validate)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "config.toml", "dpi = 1"))
	assert.ErrorIs(t, err, ErrUnsupportedConfig)

	_, err = LoadConfig(writeConfig(t, "config.json", "{"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv(envTesseract, "/opt/tesseract")
	t.Setenv(envScratchDir, "/var/tmp/pdf2txt")
	t.Setenv(envLogLevel, "warn")

	p := writeConfig(t, "config.yaml", "ocr:\n  binary: /usr/bin/tesseract\n")
	opts, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, "/opt/tesseract", opts.Ocr.Binary)
	assert.Equal(t, "/var/tmp/pdf2txt", opts.Scratch.Dir)
	assert.Equal(t, "warn", opts.Log.Level)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(envLogLevel, "")
	os.Unsetenv(envLogLevel)

	env := writeConfig(t, ".env", envLogLevel+"=error\n")
	require.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "absent.env"), env))
	t.Cleanup(func() { os.Unsetenv(envLogLevel) })

	opts, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "error", opts.Log.Level)
}
