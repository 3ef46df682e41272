package repository

import "github.com/spf13/afero"

// FileSystemRepository defines the interface for filesystem operations.
// The cleanup step and the upload artifact scan go through it so tests
// can substitute an in-memory filesystem.

type FileSystemRepository interface {
	afero.Fs
}
