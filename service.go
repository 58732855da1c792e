package s3mock

import (
	"context"
	"log/slog"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/listing"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/store"
)

// Service lists bucket contents held by a store.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	store  store.Store
	logger *slog.Logger
	owner  s3types.Owner
}

// New creates a Service reading from st.
func New(st store.Store, opts ...s3types.Option) (*Service, error) {
	if st == nil {
		return nil, errors.NewError("new", errors.ErrInvalidConfig).
			WithMessage("store cannot be nil")
	}

	cfg := &s3types.ServiceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Service{
		store:  st,
		logger: cfg.Logger,
		owner:  cfg.Owner,
	}, nil
}

// ListObjects lists bucket the way S3 does for a prefix and delimiter.
//
// Objects whose key starts with the prefix are considered. With a delimiter,
// every key that contains it after the prefix contributes the prefix plus
// the segment up to and including the first delimiter to CommonPrefixes and
// is left out of Objects. Both slices are sorted.
//
// Errors:
//   - ErrInvalidInput: If bucket is empty or the encoding type is not "url"
//   - ErrBucketNotFound: If the bucket does not exist in the store
func (s *Service) ListObjects(
	ctx context.Context,
	bucket string,
	opts ...s3types.ListOption,
) (*s3types.ListResult, error) {
	if bucket == "" {
		return nil, errors.NewError("listObjects", errors.ErrInvalidInput).
			WithMessage("bucket name cannot be empty")
	}

	cfg := &s3types.ListOptionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := validation.ValidateEncodingType(cfg.EncodingType); err != nil {
		return nil, err
	}

	start := time.Now()

	entries, err := s.store.Snapshot(ctx, bucket)
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to snapshot bucket",
				"bucket", bucket,
				"error", err)
		}
		return nil, err
	}

	filtered := listing.Apply(entries, cfg.Prefix, cfg.Delimiter)
	if s.owner != (s3types.Owner{}) {
		for i := range filtered.Entries {
			filtered.Entries[i].Owner = s.owner
		}
	}

	result := &s3types.ListResult{
		Bucket:         bucket,
		Prefix:         cfg.Prefix,
		Delimiter:      cfg.Delimiter,
		EncodingType:   cfg.EncodingType,
		Objects:        filtered.Entries,
		CommonPrefixes: filtered.CommonPrefixes.Sorted(),
		Duration:       time.Since(start),
	}
	store.SortEntries(result.Objects)
	result.KeyCount = len(result.Objects) + len(result.CommonPrefixes)

	if s.logger != nil {
		s.logger.DebugContext(ctx, "listed objects",
			"bucket", bucket,
			"prefix", cfg.Prefix,
			"delimiter", cfg.Delimiter,
			"snapshot", len(entries),
			"objects", len(result.Objects),
			"common_prefixes", len(result.CommonPrefixes),
			"duration", result.Duration)
	}

	return result, nil
}

// CreateBucket creates bucket if the store supports bucket creation.
//
// Errors:
//   - ErrNotImplemented: If the store is read-only
//   - ErrBucketAlreadyExists: If the bucket exists
//   - ErrInvalidBucketName: If the name is not a valid bucket name
func (s *Service) CreateBucket(ctx context.Context, bucket string) error {
	creator, ok := s.store.(store.BucketCreator)
	if !ok {
		return errors.NewBucketError("createBucket", bucket, errors.ErrNotImplemented).
			WithMessage("store does not support bucket creation")
	}

	if err := creator.CreateBucket(ctx, bucket); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "bucket created", "bucket", bucket)
	}
	return nil
}

// Exists reports whether bucket is present in the store.
func (s *Service) Exists(ctx context.Context, bucket string) (bool, error) {
	buckets, err := s.Buckets(ctx)
	if err != nil {
		return false, err
	}
	for _, b := range buckets {
		if b == bucket {
			return true, nil
		}
	}
	return false, nil
}

// Buckets returns the store's bucket names, sorted.
func (s *Service) Buckets(ctx context.Context) ([]string, error) {
	return s.store.Buckets(ctx)
}
