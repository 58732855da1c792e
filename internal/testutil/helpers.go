// Package testutil provides helper functions for testing.
package testutil

import (
	"crypto/md5"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
)

// FixedTime is the modification time stamped on generated fixtures.
var FixedTime = time.Date(2021, time.March, 4, 12, 30, 0, 0, time.UTC)

// ListingKeys is the canonical key set used to exercise prefix and delimiter
// listings. It mixes nested keys, keys that equal a shared segment ("b" next
// to "b/1"), near-miss prefixes ("3330/" and "33309/") and a second
// delimiter candidate (":").
var ListingKeys = []string{
	"3330/0", "33309/0", "a",
	"b", "b/1", "b/1/1", "b/1/2", "b/2",
	"c/1", "c/1/1",
	"d:1", "d:1:1",
	"eor.txt", "foo/eor.txt",
}

// StringPtr returns a pointer to the given string.
func StringPtr(s string) *string {
	return &s
}

// CalculateETag calculates the quoted MD5 ETag for the given data.
func CalculateETag(data []byte) string {
	h := md5.Sum(data)
	return fmt.Sprintf(`"%x"`, h)
}

// NewEntry creates a listing entry for key with placeholder metadata.
func NewEntry(key string) s3types.Entry {
	return s3types.Entry{
		Key:          key,
		LastModified: FixedTime,
		ETag:         CalculateETag([]byte(key)),
		Size:         int64(len(key)),
		StorageClass: string(s3types.StorageClassStandard),
		Owner:        s3types.DefaultOwner,
	}
}

// Entries creates listing entries for keys, in order.
func Entries(keys ...string) []s3types.Entry {
	entries := make([]s3types.Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, NewEntry(key))
	}
	return entries
}

// Keys extracts the keys of entries, in order.
func Keys(entries []s3types.Entry) []string {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// CreateTestObject creates a test S3 object structure.
// This is useful for mocking ListObjectsV2 responses.
func CreateTestObject(key string, size int64, lastModified time.Time) types.Object {
	return types.Object{
		Key:          StringPtr(key),
		Size:         aws.Int64(size),
		LastModified: aws.Time(lastModified),
		ETag:         StringPtr(CalculateETag([]byte(key))),
		StorageClass: types.ObjectStorageClassStandard,
		Owner: &types.Owner{
			ID:          StringPtr("123"),
			DisplayName: StringPtr("s3-mock-file-store"),
		},
	}
}

// CreateListObjectsV2Output creates a test ListObjectsV2Output structure.
// This is useful for mocking S3 list operations.
func CreateListObjectsV2Output(
	objects []types.Object, prefix, delimiter string, truncated bool,
) *s3.ListObjectsV2Output {
	output := &s3.ListObjectsV2Output{
		Contents:    objects,
		KeyCount:    aws.Int32(int32(len(objects))),
		MaxKeys:     aws.Int32(1000),
		Name:        StringPtr("test-bucket"),
		Prefix:      StringPtr(prefix),
		Delimiter:   StringPtr(delimiter),
		IsTruncated: aws.Bool(truncated),
	}
	if truncated && len(objects) > 0 {
		output.NextContinuationToken = StringPtr("next-token")
	}
	return output
}
