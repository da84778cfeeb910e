package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobStorage_UploadAndDelete(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := NewWithBucket(bucket)
	ctx := context.Background()

	err := store.Upload(ctx, "users/avatar.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	data, err := bucket.ReadAll(ctx, "users/avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "users/avatar.png"))

	exists, err := bucket.Exists(ctx, "users/avatar.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBlobStorage_DeleteMissingKey(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := NewWithBucket(bucket)

	assert.NoError(t, store.Delete(context.Background(), "never-uploaded"))
	assert.NoError(t, store.Delete(context.Background(), ""))
}
