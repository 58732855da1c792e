package awss3

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/internal/testutil"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
)

func TestStore_SnapshotFollowsPages(t *testing.T) {
	mock := testutil.NewMockBuilder().
		WithPagedObjects(testutil.ListingKeys, 5).
		Build()

	var calls int
	list := mock.ListObjectsV2Func
	mock.ListObjectsV2Func = func(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		calls++
		assert.Equal(t, "bucket-a", aws.ToString(in.Bucket))
		assert.Equal(t, int32(5), aws.ToInt32(in.MaxKeys))
		assert.True(t, aws.ToBool(in.FetchOwner))
		assert.Nil(t, in.Delimiter)
		return list(ctx, in, opts...)
	}

	s := NewWithClient(mock, WithPageSize(5))
	entries, err := s.Snapshot(context.Background(), "bucket-a")
	require.NoError(t, err)

	assert.Equal(t, 3, calls)
	assert.Equal(t, testutil.ListingKeys, testutil.Keys(entries))
	assert.Equal(t, testutil.NewEntry("b/1/2"), entries[6])
}

func TestStore_SnapshotEmptyBucket(t *testing.T) {
	s := NewWithClient(testutil.NewMockBuilder().WithPagedObjects(nil, 0).Build())

	entries, err := s.Snapshot(context.Background(), "bucket-a")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_SnapshotDefaults(t *testing.T) {
	owner := s3types.Owner{ID: 9, DisplayName: "nine"}
	mock := testutil.NewMockBuilder().
		WithListObjectsV2(func(ctx context.Context, in *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
			return &s3.ListObjectsV2Output{
				Contents: []types.Object{
					{Key: aws.String("plain"), Size: aws.Int64(1)},
					{
						Key:   aws.String("named"),
						Owner: &types.Owner{ID: aws.String("not-a-number"), DisplayName: aws.String("someone")},
					},
				},
			}, nil
		}).
		Build()

	entries, err := NewWithClient(mock, WithOwner(owner)).Snapshot(context.Background(), "bucket-a")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "named", entries[0].Key)
	assert.Equal(t, s3types.Owner{ID: 9, DisplayName: "someone"}, entries[0].Owner)
	assert.Equal(t, "plain", entries[1].Key)
	assert.Equal(t, owner, entries[1].Owner)
	assert.Equal(t, "STANDARD", entries[1].StorageClass)
}

func TestStore_SnapshotErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(*testutil.MockBuilder) *testutil.MockBuilder
		check func(error) bool
	}{
		{
			name:  "no such bucket",
			build: (*testutil.MockBuilder).WithNoSuchBucket,
			check: s3errors.IsBucketNotFound,
		},
		{
			name:  "access denied",
			build: (*testutil.MockBuilder).WithAccessDenied,
			check: s3errors.IsAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewWithClient(tt.build(testutil.NewMockBuilder()).Build())

			_, err := s.Snapshot(context.Background(), "bucket-a")
			require.Error(t, err)
			assert.True(t, tt.check(err))

			var e *s3errors.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, "bucket-a", e.Bucket)
		})
	}
}

func TestStore_Buckets(t *testing.T) {
	s := NewWithClient(testutil.NewMockBuilder().WithBuckets("zeta", "alpha").Build())

	buckets, err := s.Buckets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, buckets)

	denied := NewWithClient(testutil.NewMockBuilder().WithAccessDenied().Build())
	_, err = denied.Buckets(context.Background())
	assert.True(t, s3errors.IsAccessDenied(err))
}

func TestStore_CreateBucket(t *testing.T) {
	var created []string
	mock := &testutil.MockS3Client{
		CreateBucketFunc: func(ctx context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
			name := aws.ToString(in.Bucket)
			for _, c := range created {
				if c == name {
					return nil, &types.BucketAlreadyOwnedByYou{}
				}
			}
			created = append(created, name)
			return &s3.CreateBucketOutput{}, nil
		},
	}

	s := NewWithClient(mock)
	require.NoError(t, s.CreateBucket(context.Background(), "bucket-a"))
	assert.Equal(t, []string{"bucket-a"}, created)
	assert.ErrorIs(t, s.CreateBucket(context.Background(), "bucket-a"), s3errors.ErrBucketAlreadyExists)
}

func TestConvertAWSError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"typed no such bucket", &types.NoSuchBucket{}, s3errors.ErrBucketNotFound},
		{"typed already exists", &types.BucketAlreadyExists{}, s3errors.ErrBucketAlreadyExists},
		{"api code no such bucket", &smithy.GenericAPIError{Code: "NoSuchBucket"}, s3errors.ErrBucketNotFound},
		{"api code access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, s3errors.ErrAccessDenied},
		{"api code invalid name", &smithy.GenericAPIError{Code: "InvalidBucketName"}, s3errors.ErrInvalidBucketName},
		{"message only", errors.New("api error AccessDenied: Access Denied"), s3errors.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertAWSError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	plain := errors.New("connection reset")
	assert.Same(t, plain, convertAWSError(plain))
}
