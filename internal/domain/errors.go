package domain

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrorKind classifies a failed release step.
type ErrorKind string

const (
	RemotePushError    ErrorKind = "RemotePushError"
	TagError           ErrorKind = "TagError"
	BuildError         ErrorKind = "BuildError"
	UploadError        ErrorKind = "UploadError"
	GithubReleaseError ErrorKind = "GithubReleaseError"
)

// StepError wraps the failure of a single release step together with
// the diagnostic output of the underlying tool.
type StepError struct {
	Kind   ErrorKind
	Step   StepKind
	Output string
	Err    error
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("%s: step %q failed: %v", e.Kind, e.Step, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewRemotePushError wraps a rejected push. The step distinguishes
// branch pushes from tag pushes.
func NewRemotePushError(step StepKind, err error) *StepError {
	return &StepError{Kind: RemotePushError, Step: step, Err: err}
}

// NewTagError wraps a failed tag creation.
func NewTagError(err error) *StepError {
	return &StepError{Kind: TagError, Step: StepTag, Err: err}
}

// NewBuildError wraps a non-zero exit from the build tool.
func NewBuildError(output string, err error) *StepError {
	return &StepError{Kind: BuildError, Step: StepBuild, Output: output, Err: err}
}

// NewUploadError wraps a non-zero exit from the upload client.
func NewUploadError(output string, err error) *StepError {
	return &StepError{Kind: UploadError, Step: StepUpload, Output: output, Err: err}
}

// NewGithubReleaseError wraps a failed GitHub release creation.
func NewGithubReleaseError(err error) *StepError {
	return &StepError{Kind: GithubReleaseError, Step: StepGithubRelease, Err: err}
}

// ExitCode maps an error to the process exit code. Subprocess failures
// keep the child's exit code; everything else maps to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
