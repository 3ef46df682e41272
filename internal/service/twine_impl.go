package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/winytils/release/internal/domain"
)

// twineService uploads built artifacts to the package index via twine.
// Credentials come from the twine configuration file when one is set,
// otherwise from twine's own ambient configuration (~/.pypirc, TWINE_*
// environment variables).
type twineService struct {
	fs afero.Fs
	// pypirc is the credential source passed as --config-file; empty
	// leaves credential resolution to twine
	pypirc string
	// timeout for command execution
	timeout time.Duration
}

// NewTwineService creates a new UploadService.
func NewTwineService(fs afero.Fs, pypirc string) UploadService {
	return &twineService{
		fs:      fs,
		pypirc:  pypirc,
		timeout: DefaultUploadTimeout,
	}
}

// Upload publishes every artifact in the output directory.
func (s *twineService) Upload(ctx context.Context, outputDir string) error {
	artifacts, err := s.artifacts(outputDir)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	args := []string{"upload"}
	if s.pypirc != "" {
		args = append(args, "--config-file", s.pypirc)
	}
	args = append(args, artifacts...)

	var captured bytes.Buffer
	cmd := exec.CommandContext(ctx, "twine", args...)
	cmd.Stdout = io.MultiWriter(os.Stdout, &captured)
	cmd.Stderr = io.MultiWriter(os.Stderr, &captured)

	if runErr := cmd.Run(); runErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return domain.NewUploadError(captured.String(), fmt.Errorf("upload timed out after %v", s.timeout))
		}
		return domain.NewUploadError(captured.String(), runErr)
	}
	return nil
}

// artifacts lists the files the build step left in the output directory.
func (s *twineService) artifacts(outputDir string) ([]string, error) {
	matches, err := afero.Glob(s.fs, filepath.Join(outputDir, "*"))
	if err != nil {
		return nil, domain.NewUploadError("", fmt.Errorf("failed to scan output directory %s: %w", outputDir, err))
	}
	var artifacts []string
	for _, m := range matches {
		info, statErr := s.fs.Stat(m)
		if statErr != nil || info.IsDir() {
			continue
		}
		artifacts = append(artifacts, m)
	}
	if len(artifacts) == 0 {
		return nil, domain.NewUploadError("", fmt.Errorf("no artifacts to publish in %s", outputDir))
	}
	return artifacts, nil
}
