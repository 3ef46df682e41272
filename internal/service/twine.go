package service

import "context"

// UploadService defines the interface for the package-index upload
// client.

type UploadService interface {
	Upload(ctx context.Context, outputDir string) error
}
