// Package testutil provides a builder for creating mock S3 clients.
package testutil

import (
	"context"
	"errors"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// MockBuilder provides a fluent interface for building MockS3Client instances.
type MockBuilder struct {
	client *MockS3Client
}

// NewMockBuilder creates a new MockBuilder.
func NewMockBuilder() *MockBuilder {
	return &MockBuilder{
		client: &MockS3Client{},
	}
}

// Build returns the configured MockS3Client.
func (b *MockBuilder) Build() *MockS3Client {
	return b.client
}

// WithListObjectsV2 configures the ListObjectsV2 behavior.
func (b *MockBuilder) WithListObjectsV2(
	fn func(context.Context, *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error),
) *MockBuilder {
	b.client.ListObjectsV2Func = func(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		return fn(ctx, params)
	}
	return b
}

// WithPagedObjects serves keys as a flat listing split into pages of pageSize.
// Continuation tokens are the decimal offset of the next page.
func (b *MockBuilder) WithPagedObjects(keys []string, pageSize int) *MockBuilder {
	if pageSize <= 0 {
		pageSize = 1000
	}

	b.client.ListObjectsV2Func = func(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		start := 0
		if params.ContinuationToken != nil {
			n, err := strconv.Atoi(*params.ContinuationToken)
			if err != nil {
				return nil, errors.New("invalid continuation token")
			}
			start = n
		}

		end := min(start+pageSize, len(keys))
		objects := make([]types.Object, 0, end-start)
		for _, key := range keys[start:end] {
			objects = append(objects, CreateTestObject(key, int64(len(key)), FixedTime))
		}

		output := CreateListObjectsV2Output(objects, "", "", end < len(keys))
		output.Name = params.Bucket
		if end < len(keys) {
			output.NextContinuationToken = StringPtr(strconv.Itoa(end))
		}
		return output, nil
	}
	return b
}

// WithBuckets configures ListBuckets to report the given bucket names.
func (b *MockBuilder) WithBuckets(names ...string) *MockBuilder {
	b.client.ListBucketsFunc = func(ctx context.Context, params *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
		buckets := make([]types.Bucket, 0, len(names))
		for _, name := range names {
			buckets = append(buckets, types.Bucket{Name: StringPtr(name)})
		}
		return &s3.ListBucketsOutput{Buckets: buckets}, nil
	}
	return b
}

// WithNoSuchBucket configures the mock to report a missing bucket.
func (b *MockBuilder) WithNoSuchBucket() *MockBuilder {
	notFoundErr := &types.NoSuchBucket{
		Message: StringPtr("The specified bucket does not exist"),
	}

	b.client.ListObjectsV2Func = func(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		return nil, notFoundErr
	}
	return b
}

// WithAccessDenied configures the mock to return access denied errors.
func (b *MockBuilder) WithAccessDenied() *MockBuilder {
	accessDeniedErr := errors.New("api error AccessDenied: Access Denied")

	b.client.ListObjectsV2Func = func(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		return nil, accessDeniedErr
	}
	b.client.ListBucketsFunc = func(ctx context.Context, params *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
		return nil, accessDeniedErr
	}
	return b
}
