package tesseract

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Cli runs the tesseract executable once per image.
type Cli struct {
	binary string
	psm    int
}

func NewCli(binary string, psm int) *Cli {
	return &Cli{binary: binary, psm: psm}
}

func (c *Cli) Name() string {
	return EngineCli
}

func (c *Cli) Binary() string {
	return c.binary
}

func (c *Cli) Recognize(ctx context.Context, imagePath string, languages []string, dpi int) (string, error) {
	args := c.args(imagePath, languages, dpi)
	logrus.WithField("args", args).Debug("Running tesseract")

	return c.run(ctx, args...)
}

// Languages lists the traineddata installed for this binary.
func (c *Cli) Languages(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "--list-langs")
	if err != nil {
		return nil, err
	}

	var langs []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of available languages") {
			continue
		}
		langs = append(langs, line)
	}

	return langs, nil
}

func (c *Cli) args(imagePath string, languages []string, dpi int) []string {
	args := []string{imagePath, "stdout"}
	if len(languages) > 0 {
		args = append(args, "-l", strings.Join(languages, "+"))
	}
	if dpi > 0 {
		args = append(args, "--dpi", strconv.Itoa(dpi))
	}
	if c.psm > 0 {
		args = append(args, "--psm", strconv.Itoa(c.psm))
	}
	return args
}

func (c *Cli) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.binary, args...)
	outputBuffer := &bytes.Buffer{}
	cmd.Stdout = outputBuffer
	errorBuffer := &bytes.Buffer{}
	cmd.Stderr = errorBuffer
	err := cmd.Run()

	if err != nil {
		return "", errors.Join(err, errors.New(strings.TrimSpace(errorBuffer.String())))
	}

	return outputBuffer.String(), nil
}
