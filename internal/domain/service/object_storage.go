package service

import (
	"context"
	"io"
	"time"
)

// ObjectStorage stores uploaded images under opaque keys. Entities
// persist keys only; display URLs are signed on read.
type ObjectStorage interface {
	// Upload writes the object and returns nothing; the caller owns key
	// construction so storage stays policy-free.
	Upload(ctx context.Context, key string, contentType string, body io.Reader) error

	// SignedURL returns a time-limited read URL for the key.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
