package cmd

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spf13/afero"

	"github.com/winytils/release/internal/config"
	"github.com/winytils/release/internal/orchestrator"
	"github.com/winytils/release/internal/repository"
	"github.com/winytils/release/internal/service"
)

// lockFileName sits next to the repository so concurrent invocations in
// the same working tree exclude each other.
const lockFileName = ".release.lock"

// container holds all the dependencies for the application.

type container struct {
	cfg    *config.Config
	logger *zap.Logger

	fsRepo   repository.FileSystemRepository
	gitRepo  repository.GitRepository
	ghRepo   repository.GithubRepository
	buildSvc service.BuildService
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger()
	if err != nil {
		return nil, err
	}

	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	gitRepo, err := repository.NewGitRepository()
	if err != nil {
		return nil, err
	}

	// GitHub repository is optional - only create if token is provided
	var ghRepo repository.GithubRepository
	if cfg.GithubToken != "" {
		ghRepo, err = repository.NewGithubRepository(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo)
		if err != nil {
			return nil, err
		}
	}

	return &container{
		cfg:      cfg,
		logger:   logger,
		fsRepo:   fsRepo,
		gitRepo:  gitRepo,
		ghRepo:   ghRepo,
		buildSvc: service.NewBuildService(),
	}, nil
}

// releaseOrchestrator wires the release workflow. The upload service is
// built here because the credential source can be overridden per run.
func (c *container) releaseOrchestrator(pypirc string) *orchestrator.ReleaseOrchestrator {
	uploadSvc := service.NewTwineService(c.fsRepo, pypirc)
	lock := repository.NewReleaseLock(lockFileName)
	return orchestrator.NewReleaseOrchestrator(
		c.gitRepo,
		c.fsRepo,
		c.buildSvc,
		uploadSvc,
		c.ghRepo,
		lock,
		c.logger,
	)
}

// newLogger builds a console logger suited to interactive CLI use.
func newLogger() (*zap.Logger, error) {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.InfoLevel),
		Encoding:         "console",
		EncoderConfig:    encCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build()
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	rootCmd = newReleaseCmd(c)
	rootCmd.AddCommand(newVersionCmd())
	return nil
}
