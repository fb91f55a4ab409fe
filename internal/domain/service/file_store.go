package service

import (
	"context"
	"io"
)

// FileStore defines the interface for document file storage.
// This abstracts the blob backend (local disk, S3, GCS) from the use cases.
type FileStore interface {
	// Save writes the file contents under the given key and returns the
	// number of bytes written.
	Save(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)

	// Open returns a reader for the stored file. The caller must close it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a stored file. Deleting a missing key is an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a file is stored under the key.
	Exists(ctx context.Context, key string) (bool, error)
}
