// Package storage implements object storage over the gocloud.dev blob API.
package storage

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/s3blob" // Register the s3:// URL scheme.
	"gocloud.dev/gcerrors"

	"bazar/config"
	"bazar/internal/domain/lifecycle"
	"bazar/internal/domain/service"
	"bazar/internal/errors"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// blobStorage is a concrete implementation of the ObjectStorage interface
// over a gocloud.dev bucket.
type blobStorage struct {
	bucket *blob.Bucket
}

// New opens the configured bucket and binds its lifetime to the app.
func New(params Params) (service.ObjectStorage, error) {
	if params.Config.Storage == nil || params.Config.Storage.BucketURL == "" {
		return nil, errors.New("storage bucket url must be provided")
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "open bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{bucket: bucket}, nil
}

// NewWithBucket wraps an already opened bucket. Used by tests with an
// in-memory bucket.
func NewWithBucket(bucket *blob.Bucket) service.ObjectStorage {
	return &blobStorage{bucket: bucket}
}

// Upload writes the object under the given key.
func (s *blobStorage) Upload(ctx context.Context, key string, contentType string, body io.Reader) error {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "new writer")
	}

	if _, err := io.Copy(w, body); err != nil {
		// Close discards the partial write when Copy failed.
		_ = w.Close()

		return errors.Wrap(err, "write object")
	}

	if err := w.Close(); err != nil {
		return errors.Wrap(err, "close writer")
	}

	return nil
}

// SignedURL returns a time-limited read URL for the key.
func (s *blobStorage) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	url, err := s.bucket.SignedURL(ctx, key, &blob.SignedURLOptions{Expiry: ttl})
	if err != nil {
		return "", errors.Wrap(err, "sign url")
	}

	return url, nil
}

// Delete removes the object. Deleting a missing key is not an error.
func (s *blobStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrap(err, "delete object")
	}

	return nil
}
