package repository

import "context"

// GitRepository defines the interface for Git operations. Remotes are
// always named explicitly; the release sequence pushes every ref to two
// of them.

type GitRepository interface {
	CurrentBranch(ctx context.Context) (string, error)
	PushBranch(ctx context.Context, remote, branch string) error
	TagExists(ctx context.Context, tag string) (bool, error)
	CreateTag(ctx context.Context, tag, msg string) error
	PushTag(ctx context.Context, remote, tag string) error
}
