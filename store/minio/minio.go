// Package minio provides a Store that snapshots buckets of a MinIO (or any
// S3-compatible) server through minio-go.
package minio

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/store"
)

var (
	_ store.Store         = (*Store)(nil)
	_ store.BucketCreator = (*Store)(nil)
)

// Config holds the connection settings for a MinIO server.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// Store lists objects from a MinIO server.
type Store struct {
	client *minio.Client
	owner  s3types.Owner
}

// New connects to the server described by cfg.
// No request is made until the store is used.
func New(cfg Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, errors.NewError("connect", errors.ErrInvalidConfig).
			WithMessage("minio endpoint cannot be empty")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.NewError("connect", err)
	}
	return NewWithClient(client), nil
}

// NewWithClient wraps an existing minio client.
func NewWithClient(client *minio.Client) *Store {
	return &Store{
		client: client,
		owner:  s3types.DefaultOwner,
	}
}

// CreateBucket creates bucket on the server.
func (s *Store) CreateBucket(ctx context.Context, bucket string) error {
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return errors.NewBucketError("createBucket", bucket, translateError(err))
	}
	return nil
}

// Snapshot lists every object in the bucket with a recursive listing, so
// the server does no delimiter processing of its own.
func (s *Store) Snapshot(ctx context.Context, bucket string) ([]s3types.Entry, error) {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, errors.NewBucketError("snapshot", bucket, translateError(err))
	}
	if !exists {
		return nil, errors.NewBucketError("snapshot", bucket, errors.ErrBucketNotFound)
	}

	var entries []s3types.Entry
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Recursive:    true,
		WithMetadata: false,
	}) {
		if obj.Err != nil {
			return nil, errors.NewBucketError("snapshot", bucket, translateError(obj.Err))
		}
		entries = append(entries, s.toEntry(obj))
	}

	store.SortEntries(entries)
	return entries, nil
}

// Buckets returns the server's bucket names, sorted.
func (s *Store) Buckets(ctx context.Context) ([]string, error) {
	infos, err := s.client.ListBuckets(ctx)
	if err != nil {
		return nil, errors.NewError("buckets", translateError(err))
	}

	buckets := make([]string, 0, len(infos))
	for _, info := range infos {
		buckets = append(buckets, info.Name)
	}
	slices.Sort(buckets)
	return buckets, nil
}

func (s *Store) toEntry(obj minio.ObjectInfo) s3types.Entry {
	storageClass := obj.StorageClass
	if storageClass == "" {
		storageClass = string(s3types.StorageClassStandard)
	}

	return s3types.Entry{
		Key:          obj.Key,
		LastModified: obj.LastModified.UTC(),
		ETag:         quoteETag(obj.ETag),
		Size:         obj.Size,
		StorageClass: storageClass,
		Owner:        s.ownerOf(obj.Owner),
	}
}

func (s *Store) ownerOf(owner minio.Owner) s3types.Owner {
	if owner.DisplayName == "" && owner.ID == "" {
		return s.owner
	}

	// minio-go decodes <ID> into DisplayName and <DisplayName> into ID.
	id, err := strconv.ParseInt(owner.DisplayName, 10, 64)
	if err != nil {
		id = s.owner.ID
	}
	return s3types.Owner{ID: id, DisplayName: owner.ID}
}

// quoteETag restores the quotes minio-go strips from ETags.
func quoteETag(etag string) string {
	if etag == "" || strings.HasPrefix(etag, `"`) {
		return etag
	}
	return `"` + etag + `"`
}

// translateError maps minio error responses onto the module's sentinels.
func translateError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchBucket":
		return fmt.Errorf("%w: %w", errors.ErrBucketNotFound, err)
	case "AccessDenied":
		return fmt.Errorf("%w: %w", errors.ErrAccessDenied, err)
	case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
		return fmt.Errorf("%w: %w", errors.ErrBucketAlreadyExists, err)
	case "InvalidBucketName":
		return fmt.Errorf("%w: %w", errors.ErrInvalidBucketName, err)
	default:
		return err
	}
}
