package service

import "time"

// Timeout constants for service operations
const (
	// DefaultBuildTimeout is the timeout for the package build
	DefaultBuildTimeout = 10 * time.Minute
	// DefaultUploadTimeout is the timeout for the index upload
	DefaultUploadTimeout = 10 * time.Minute
)
