package storage

import (
	"context"
	"io"
)

// Storage persists uploaded files (hotel gallery photos) under relative
// paths. Implementations own the mapping to a physical location.
type Storage interface {
	// Save writes content to the given relative path, creating parent
	// directories as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the relative path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the relative path. Missing files are not
	// an error.
	Delete(ctx context.Context, path string) error
}
