package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/winytils/release/internal/domain"
	"github.com/winytils/release/internal/repository"
	"github.com/winytils/release/internal/service"
)

// ReleaseConfig contains configuration for a single release run.
type ReleaseConfig struct {
	PrimaryRemote     string
	MirrorRemote      string
	OutputDir         string
	DryRun            bool
	SkipGithubRelease bool
}

// ReleaseOrchestrator runs the fixed release sequence: push the current
// branch to both remotes, tag, push the tag to both remotes, build,
// upload, clean up.
type ReleaseOrchestrator struct {
	gitRepo   repository.GitRepository
	fsRepo    repository.FileSystemRepository
	buildSvc  service.BuildService
	uploadSvc service.UploadService
	// githubRepo is optional; when nil the GitHub release step is not planned
	githubRepo repository.GithubRepository
	lock       *repository.ReleaseLock
	logger     *zap.Logger
}

// NewReleaseOrchestrator creates a new release orchestrator.
func NewReleaseOrchestrator(
	gitRepo repository.GitRepository,
	fsRepo repository.FileSystemRepository,
	buildSvc service.BuildService,
	uploadSvc service.UploadService,
	githubRepo repository.GithubRepository,
	lock *repository.ReleaseLock,
	logger *zap.Logger,
) *ReleaseOrchestrator {
	return &ReleaseOrchestrator{
		gitRepo:    gitRepo,
		fsRepo:     fsRepo,
		buildSvc:   buildSvc,
		uploadSvc:  uploadSvc,
		githubRepo: githubRepo,
		lock:       lock,
		logger:     logger,
	}
}

// Execute runs the complete release sequence for one version, fail-fast
// and without retries.
func (o *ReleaseOrchestrator) Execute(ctx context.Context, cfg ReleaseConfig, version *domain.Version) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultReleaseTimeout)
	defer cancel()

	logger := o.logger.With(
		zap.String("run_id", uuid.New().String()),
		zap.String("version", version.String()))

	branch, err := o.gitRepo.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve current branch: %w", err)
	}
	release := domain.NewRelease(version, branch, cfg.OutputDir)
	steps := o.planSteps(release, cfg)

	if cfg.DryRun {
		o.printPlan(steps)
		return nil
	}

	if err := o.lock.Acquire(); err != nil {
		return err
	}
	defer func() {
		if unlockErr := o.lock.Release(); unlockErr != nil {
			logger.Warn("failed to release lock", zap.Error(unlockErr))
		}
	}()

	logger.Info("starting release",
		zap.String("branch", branch),
		zap.String("tag", release.TagName))
	if err := NewStepExecutor(logger).Execute(ctx, steps); err != nil {
		return err
	}
	logger.Info("release completed", zap.String("tag", release.TagName))
	return nil
}

// planSteps builds the ordered step list. The order is the contract:
// push branch twice, tag, push tag twice, build, upload, cleanup.
func (o *ReleaseOrchestrator) planSteps(release *domain.Release, cfg ReleaseConfig) []domain.Step {
	steps := []domain.Step{
		{
			Kind: domain.StepPushBranch,
			Name: fmt.Sprintf("push %s to %s", release.Branch, cfg.PrimaryRemote),
			Run: func(ctx context.Context) error {
				if err := o.gitRepo.PushBranch(ctx, cfg.PrimaryRemote, release.Branch); err != nil {
					return domain.NewRemotePushError(domain.StepPushBranch, err)
				}
				return nil
			},
		},
		{
			Kind: domain.StepPushBranch,
			Name: fmt.Sprintf("push %s to %s", release.Branch, cfg.MirrorRemote),
			Run: func(ctx context.Context) error {
				if err := o.gitRepo.PushBranch(ctx, cfg.MirrorRemote, release.Branch); err != nil {
					return domain.NewRemotePushError(domain.StepPushBranch, err)
				}
				return nil
			},
		},
		{
			Kind: domain.StepTag,
			Name: fmt.Sprintf("create tag %s", release.TagName),
			Run: func(ctx context.Context) error {
				exists, err := o.gitRepo.TagExists(ctx, release.TagName)
				if err != nil {
					return domain.NewTagError(err)
				}
				if exists {
					return domain.NewTagError(fmt.Errorf("tag %s already exists", release.TagName))
				}
				if err := o.gitRepo.CreateTag(ctx, release.TagName, release.Version.TagMessage()); err != nil {
					return domain.NewTagError(err)
				}
				return nil
			},
		},
		{
			Kind: domain.StepPushTag,
			Name: fmt.Sprintf("push tag %s to %s", release.TagName, cfg.PrimaryRemote),
			Run: func(ctx context.Context) error {
				if err := o.gitRepo.PushTag(ctx, cfg.PrimaryRemote, release.TagName); err != nil {
					return domain.NewRemotePushError(domain.StepPushTag, err)
				}
				return nil
			},
		},
		{
			Kind: domain.StepPushTag,
			Name: fmt.Sprintf("push tag %s to %s", release.TagName, cfg.MirrorRemote),
			Run: func(ctx context.Context) error {
				if err := o.gitRepo.PushTag(ctx, cfg.MirrorRemote, release.TagName); err != nil {
					return domain.NewRemotePushError(domain.StepPushTag, err)
				}
				return nil
			},
		},
		{
			Kind: domain.StepBuild,
			Name: fmt.Sprintf("build artifacts into %s", release.OutputDir),
			Run: func(ctx context.Context) error {
				return o.buildSvc.Build(ctx, release.OutputDir)
			},
		},
		{
			Kind: domain.StepUpload,
			Name: fmt.Sprintf("upload artifacts from %s", release.OutputDir),
			Run: func(ctx context.Context) error {
				return o.uploadSvc.Upload(ctx, release.OutputDir)
			},
		},
		{
			Kind:         domain.StepCleanup,
			Name:         fmt.Sprintf("remove %s", release.OutputDir),
			AfterFailure: true,
			Run: func(_ context.Context) error {
				return o.fsRepo.RemoveAll(release.OutputDir)
			},
		},
	}
	if o.githubRepo != nil && !cfg.SkipGithubRelease {
		steps = append(steps, domain.Step{
			Kind: domain.StepGithubRelease,
			Name: fmt.Sprintf("create GitHub release %s", release.TagName),
			Run: func(ctx context.Context) error {
				url, err := o.githubRepo.CreateRelease(ctx, release.TagName, release.TagName, "")
				if err != nil {
					return domain.NewGithubReleaseError(err)
				}
				o.logger.Info("created GitHub release", zap.String("url", url))
				return nil
			},
		})
	}
	return steps
}

// printPlan lists the planned steps without executing anything.
func (o *ReleaseOrchestrator) printPlan(steps []domain.Step) {
	for i, step := range steps {
		fmt.Printf("%d. [%s] %s\n", i+1, step.Kind, step.Name)
	}
}
