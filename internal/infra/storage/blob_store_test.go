package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobStore_SaveOpenRoundTrip(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := NewBlobStore(bucket)
	ctx := context.Background()

	n, err := store.Save(ctx, "documents/abc.pdf", "application/pdf", strings.NewReader("hello world"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)

	ok, err := store.Exists(ctx, "documents/abc.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	r, err := store.Open(ctx, "documents/abc.pdf")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestBlobStore_Delete(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := NewBlobStore(bucket)
	ctx := context.Background()

	_, err := store.Save(ctx, "documents/gone.pdf", "application/pdf", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "documents/gone.pdf"))

	ok, err := store.Exists(ctx, "documents/gone.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBlobStore_OpenMissing(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := NewBlobStore(bucket)

	_, err := store.Open(context.Background(), "documents/missing.pdf")
	assert.Error(t, err)
}
