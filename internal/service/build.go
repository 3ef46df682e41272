package service

import "context"

// BuildService defines the interface for the package build tool.

type BuildService interface {
	Build(ctx context.Context, outputDir string) error
}
