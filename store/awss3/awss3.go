// Package awss3 provides a Store that snapshots buckets of Amazon S3, or any
// endpoint speaking its API, through the AWS SDK for Go v2.
package awss3

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/store"
)

var (
	_ store.Store         = (*Store)(nil)
	_ store.BucketCreator = (*Store)(nil)
)

// Config holds the connection settings for the S3 endpoint.
type Config struct {
	// Region is the AWS region; empty uses the SDK default chain.
	Region string

	// Endpoint overrides the service endpoint, e.g. for LocalStack.
	Endpoint string

	// ForcePathStyle addresses buckets as path segments instead of hosts.
	ForcePathStyle bool

	// AccessKey and SecretKey set static credentials. When empty the SDK
	// default credential chain is used.
	AccessKey string
	SecretKey string
}

// Store lists objects from S3.
type Store struct {
	client   s3api.S3API
	owner    s3types.Owner
	pageSize int32
}

// Option configures a Store.
type Option func(*Store)

// WithOwner sets the owner reported for objects S3 returns without one.
func WithOwner(owner s3types.Owner) Option {
	return func(s *Store) {
		s.owner = owner
	}
}

// WithPageSize sets the number of keys requested per ListObjectsV2 call.
func WithPageSize(size int32) Option {
	return func(s *Store) {
		s.pageSize = size
	}
}

// New loads the AWS configuration and creates a Store.
func New(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, s3errors.NewError("connect", s3errors.ErrInvalidConfig).
			WithMessage(fmt.Sprintf("failed to load AWS config: %v", err))
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})
	return NewWithClient(client, opts...), nil
}

// NewWithClient wraps an existing S3 client.
func NewWithClient(client s3api.S3API, opts ...Option) *Store {
	s := &Store{
		client:   client,
		owner:    s3types.DefaultOwner,
		pageSize: maxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBucket creates bucket.
func (s *Store) CreateBucket(ctx context.Context, bucket string) error {
	_, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return s3errors.NewBucketError("createBucket", bucket, convertAWSError(err))
	}
	return nil
}

// Snapshot reads the whole bucket with a flat listing, following
// continuation tokens until the listing is exhausted.
func (s *Store) Snapshot(ctx context.Context, bucket string) ([]s3types.Entry, error) {
	var entries []s3types.Entry

	p := newPaginator(s.client, bucket, s.pageSize)
	for p.HasMorePages() {
		objects, err := p.NextPage(ctx)
		if err != nil {
			return nil, s3errors.NewBucketError("snapshot", bucket, convertAWSError(err))
		}
		for _, obj := range objects {
			entries = append(entries, s.toEntry(obj))
		}
	}

	store.SortEntries(entries)
	return entries, nil
}

// Buckets returns the account's bucket names, sorted.
func (s *Store) Buckets(ctx context.Context) ([]string, error) {
	output, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, s3errors.NewError("buckets", convertAWSError(err))
	}

	buckets := make([]string, 0, len(output.Buckets))
	for _, b := range output.Buckets {
		buckets = append(buckets, aws.ToString(b.Name))
	}
	slices.Sort(buckets)
	return buckets, nil
}

func (s *Store) toEntry(obj types.Object) s3types.Entry {
	storageClass := string(obj.StorageClass)
	if storageClass == "" {
		storageClass = string(s3types.StorageClassStandard)
	}

	owner := s.owner
	if obj.Owner != nil {
		if id, err := strconv.ParseInt(aws.ToString(obj.Owner.ID), 10, 64); err == nil {
			owner.ID = id
		}
		if name := aws.ToString(obj.Owner.DisplayName); name != "" {
			owner.DisplayName = name
		}
	}

	return s3types.Entry{
		Key:          aws.ToString(obj.Key),
		LastModified: aws.ToTime(obj.LastModified).UTC(),
		ETag:         aws.ToString(obj.ETag),
		Size:         aws.ToInt64(obj.Size),
		StorageClass: storageClass,
		Owner:        owner,
	}
}

// convertAWSError converts AWS SDK errors to the module's sentinels.
// The original error stays in the chain.
func convertAWSError(err error) error {
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return fmt.Errorf("%w: %w", s3errors.ErrBucketNotFound, err)
	}
	var alreadyExists *types.BucketAlreadyExists
	if errors.As(err, &alreadyExists) {
		return fmt.Errorf("%w: %w", s3errors.ErrBucketAlreadyExists, err)
	}
	var alreadyOwned *types.BucketAlreadyOwnedByYou
	if errors.As(err, &alreadyOwned) {
		return fmt.Errorf("%w: %w", s3errors.ErrBucketAlreadyExists, err)
	}

	code := ""
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.ErrorCode()
	}

	errMsg := err.Error()
	switch {
	case code == "NoSuchBucket", strings.Contains(errMsg, "NoSuchBucket"):
		return fmt.Errorf("%w: %w", s3errors.ErrBucketNotFound, err)
	case code == "AccessDenied", strings.Contains(errMsg, "AccessDenied"):
		return fmt.Errorf("%w: %w", s3errors.ErrAccessDenied, err)
	case code == "InvalidBucketName", strings.Contains(errMsg, "InvalidBucketName"):
		return fmt.Errorf("%w: %w", s3errors.ErrInvalidBucketName, err)
	}
	return err
}
