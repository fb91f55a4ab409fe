// Package storage implements document file storage on top of Go CDK blob buckets.
package storage

import (
	"context"
	"io"
	"log/slog"

	"unishare/config"
	"unishare/internal/domain/lifecycle"
	"unishare/internal/domain/service"
	"unishare/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Registered bucket drivers. The bucket URL in config selects one,
	// e.g. file:///var/lib/unishare/files or mem:// for tests.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// blobStore implements the service.FileStore interface over a blob.Bucket.
type blobStore struct {
	bucket *blob.Bucket
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and wires its lifetime into the app.
func New(params Params) (service.FileStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open blob bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("blob storage initialized",
		slog.String("bucketURL", params.Config.Storage.BucketURL),
	)

	return NewBlobStore(bucket), nil
}

// NewBlobStore wraps an already-open bucket. Split from New so tests can
// inject an in-memory bucket directly.
func NewBlobStore(bucket *blob.Bucket) service.FileStore {
	return &blobStore{bucket: bucket}
}

// Save writes the file contents under the given key.
func (s *blobStore) Save(ctx context.Context, key string, contentType string, r io.Reader) (int64, error) {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to open blob writer")
	}

	n, err := io.Copy(w, r)
	if err != nil {
		// Abort the write; Close still runs to release the writer.
		_ = w.Close()

		return 0, errors.Wrap(err, "failed to write blob")
	}

	if err := w.Close(); err != nil {
		return 0, errors.Wrap(err, "failed to finalize blob")
	}

	return n, nil
}

// Open returns a reader for the stored file.
func (s *blobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open blob reader")
	}

	return r, nil
}

// Delete removes a stored file.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrap(err, "failed to delete blob")
	}

	return nil
}

// Exists reports whether a file is stored under the key.
func (s *blobStore) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return false, errors.Wrap(err, "failed to check blob existence")
	}

	return ok, nil
}
