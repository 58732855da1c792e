// Package memory provides an in-process Store backed by maps.
// It is the default backend of the mock server and the usual fixture in tests.
package memory

import (
	"context"
	"crypto/md5"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/store"
)

var (
	_ store.Store         = (*Store)(nil)
	_ store.BucketCreator = (*Store)(nil)
)

// Store keeps bucket contents in memory.
// All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	buckets map[string]map[string]s3types.Entry
	owner   s3types.Owner
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithOwner sets the owner stamped on stored entries.
func WithOwner(owner s3types.Owner) Option {
	return func(s *Store) {
		s.owner = owner
	}
}

// WithClock overrides the clock used for LastModified.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		buckets: make(map[string]map[string]s3types.Entry),
		owner:   s3types.DefaultOwner,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBucket creates an empty bucket.
func (s *Store) CreateBucket(ctx context.Context, bucket string) error {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buckets[bucket]; ok {
		return errors.NewBucketError("createBucket", bucket, errors.ErrBucketAlreadyExists)
	}
	s.buckets[bucket] = make(map[string]s3types.Entry)
	return nil
}

// PutObject stores data under key, replacing any previous entry.
func (s *Store) PutObject(ctx context.Context, bucket, key string, data []byte) (s3types.Entry, error) {
	if err := validation.ValidateObjectKey(key); err != nil {
		return s3types.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	objects, ok := s.buckets[bucket]
	if !ok {
		return s3types.Entry{}, errors.NewObjectError("putObject", bucket, key, errors.ErrBucketNotFound)
	}

	entry := s3types.Entry{
		Key:          key,
		LastModified: s.now().UTC(),
		ETag:         fmt.Sprintf(`"%x"`, md5.Sum(data)),
		Size:         int64(len(data)),
		StorageClass: string(s3types.StorageClassStandard),
		Owner:        s.owner,
	}
	objects[key] = entry
	return entry, nil
}

// DeleteObject removes key from bucket. Deleting a missing key is not an error.
func (s *Store) DeleteObject(ctx context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	objects, ok := s.buckets[bucket]
	if !ok {
		return errors.NewObjectError("deleteObject", bucket, key, errors.ErrBucketNotFound)
	}
	delete(objects, key)
	return nil
}

// Snapshot returns a sorted copy of the bucket's entries.
func (s *Store) Snapshot(ctx context.Context, bucket string) ([]s3types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, ok := s.buckets[bucket]
	if !ok {
		return nil, errors.NewBucketError("snapshot", bucket, errors.ErrBucketNotFound)
	}

	entries := slices.Collect(maps.Values(objects))
	store.SortEntries(entries)
	return entries, nil
}

// Buckets returns the bucket names in lexicographic order.
func (s *Store) Buckets(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.buckets)), nil
}
