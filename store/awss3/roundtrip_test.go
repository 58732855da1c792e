package awss3

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock"
	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/internal/testutil"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/server"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/store/memory"
)

// TestStore_AgainstMockServer drives the SDK client against the mock server,
// so the store reads back what the memory store behind the server holds.
func TestStore_AgainstMockServer(t *testing.T) {
	ctx := context.Background()

	backing := memory.New()
	svc, err := s3mock.New(backing)
	require.NoError(t, err)
	ts := httptest.NewServer(server.New("", svc).Handler())
	t.Cleanup(ts.Close)

	s, err := New(ctx, Config{
		Region:         "us-east-1",
		Endpoint:       ts.URL,
		ForcePathStyle: true,
		AccessKey:      "test",
		SecretKey:      "test",
	})
	require.NoError(t, err)

	require.NoError(t, s.CreateBucket(ctx, "bucket-a"))
	assert.ErrorIs(t, s.CreateBucket(ctx, "bucket-a"), s3errors.ErrBucketAlreadyExists)
	for _, key := range testutil.ListingKeys {
		_, err := backing.PutObject(ctx, "bucket-a", key, []byte(key))
		require.NoError(t, err)
	}

	entries, err := s.Snapshot(ctx, "bucket-a")
	require.NoError(t, err)
	assert.Equal(t, testutil.ListingKeys, testutil.Keys(entries))
	for _, e := range entries {
		assert.Equal(t, testutil.CalculateETag([]byte(e.Key)), e.ETag, e.Key)
		assert.Equal(t, int64(len(e.Key)), e.Size, e.Key)
		assert.Equal(t, "s3-mock-file-store", e.Owner.DisplayName, e.Key)
		assert.Equal(t, int64(123), e.Owner.ID, e.Key)
	}

	buckets, err := s.Buckets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bucket-a"}, buckets)

	_, err = s.Snapshot(ctx, "missing")
	assert.True(t, s3errors.IsBucketNotFound(err))
}
