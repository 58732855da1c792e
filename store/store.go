// Package store defines the storage backend contract consumed by the listing
// service. A backend hands out point-in-time snapshots of a bucket's entries;
// the listing pipeline never sees the backend itself.
package store

import (
	"context"
	"slices"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
)

// Store provides read-only snapshots of bucket contents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Snapshot returns every entry in bucket. The returned slice is owned by
	// the caller and is not modified by the store afterwards. An unknown
	// bucket yields errors.ErrBucketNotFound.
	Snapshot(ctx context.Context, bucket string) ([]s3types.Entry, error)

	// Buckets returns the names of all buckets, sorted.
	Buckets(ctx context.Context) ([]string, error)
}

// BucketCreator is implemented by stores that can create buckets.
type BucketCreator interface {
	CreateBucket(ctx context.Context, bucket string) error
}

// SortEntries orders entries by key, the order S3 reports them in.
func SortEntries(entries []s3types.Entry) {
	slices.SortFunc(entries, func(a, b s3types.Entry) int {
		return strings.Compare(a.Key, b.Key)
	})
}
