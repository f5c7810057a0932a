package storage

import (
	"context"
	"io"
)

// StorageInterface defines the interface for product image storage backends
type StorageInterface interface {
	// SaveFile stores the content read from reader under key, replacing any previous file.
	SaveFile(ctx context.Context, key string, reader io.Reader) error

	// ReadFile opens a stored file for reading.
	ReadFile(ctx context.Context, key string) (io.ReadCloser, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage
	DeleteFile(ctx context.Context, key string) error
}
