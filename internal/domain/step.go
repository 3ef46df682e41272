package domain

import "context"

// StepKind identifies a release step for logging and error reporting.
type StepKind string

const (
	StepPushBranch    StepKind = "push-branch"
	StepTag           StepKind = "tag"
	StepPushTag       StepKind = "push-tag"
	StepBuild         StepKind = "build"
	StepUpload        StepKind = "upload"
	StepCleanup       StepKind = "cleanup"
	StepGithubRelease StepKind = "github-release"
)

// Step is a single operation in the release sequence. AfterFailure
// marks a step that still runs when the step directly before it was
// attempted and failed; this is how the output-directory cleanup stays
// tied to the upload attempt.
type Step struct {
	Kind         StepKind
	Name         string
	Run          func(ctx context.Context) error
	AfterFailure bool
}
