package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an artifact does not exist
var ErrNotFound = errors.New("storage: artifact not found")

// ArtifactStore persists rendered chart artifacts. Paths are slash separated
// and relative to the store root.
type ArtifactStore interface {
	// Close releases the underlying client
	Close() error

	// StoreFile writes data to folder/filename and returns the stored path
	StoreFile(ctx context.Context, folder, filename string, data []byte) (string, error)

	// GetFile reads an artifact
	GetFile(ctx context.Context, path string) ([]byte, error)

	// FileExists checks if an artifact exists
	FileExists(ctx context.Context, path string) (bool, error)

	// ListRenders lists index.html paths of stored renders, newest first
	ListRenders(ctx context.Context, limit int) ([]string, error)
}
