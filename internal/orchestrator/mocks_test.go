package orchestrator

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock for GitRepository - implements ALL methods from GitRepository interface
type mockGitRepository struct{ mock.Mock }

func (m *mockGitRepository) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockGitRepository) PushBranch(ctx context.Context, remote, branch string) error {
	args := m.Called(ctx, remote, branch)
	return args.Error(0)
}
func (m *mockGitRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	args := m.Called(ctx, tag)
	return args.Bool(0), args.Error(1)
}
func (m *mockGitRepository) CreateTag(ctx context.Context, tag, msg string) error {
	args := m.Called(ctx, tag, msg)
	return args.Error(0)
}
func (m *mockGitRepository) PushTag(ctx context.Context, remote, tag string) error {
	args := m.Called(ctx, remote, tag)
	return args.Error(0)
}

// Mock for BuildService
type mockBuildService struct{ mock.Mock }

func (m *mockBuildService) Build(ctx context.Context, outputDir string) error {
	args := m.Called(ctx, outputDir)
	return args.Error(0)
}

// Mock for UploadService
type mockUploadService struct{ mock.Mock }

func (m *mockUploadService) Upload(ctx context.Context, outputDir string) error {
	args := m.Called(ctx, outputDir)
	return args.Error(0)
}

// Mock for GithubRepository
type mockGithubRepository struct{ mock.Mock }

func (m *mockGithubRepository) CreateRelease(ctx context.Context, tag, name, body string) (string, error) {
	args := m.Called(ctx, tag, name, body)
	return args.String(0), args.Error(1)
}
