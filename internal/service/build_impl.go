package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/winytils/release/internal/domain"
)

// buildService runs the Python build frontend as a subprocess.
type buildService struct {
	python string
	// timeout for command execution
	timeout time.Duration
}

// NewBuildService creates a new BuildService.
func NewBuildService() BuildService {
	return &buildService{
		python:  "python",
		timeout: DefaultBuildTimeout,
	}
}

// Build produces distributable artifacts into the output directory by
// running `python -m build`. Output is streamed through and kept for
// the error diagnostic.
func (s *buildService) Build(ctx context.Context, outputDir string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var captured bytes.Buffer
	cmd := exec.CommandContext(ctx, s.python, "-m", "build", "--outdir", outputDir)
	cmd.Stdout = io.MultiWriter(os.Stdout, &captured)
	cmd.Stderr = io.MultiWriter(os.Stderr, &captured)

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return domain.NewBuildError(captured.String(), fmt.Errorf("build timed out after %v", s.timeout))
		}
		return domain.NewBuildError(captured.String(), err)
	}
	return nil
}
