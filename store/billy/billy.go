// Package billy provides a file-based Store on top of go-billy.
//
// Every top-level directory under the filesystem root is a bucket. Each
// object lives in its own directory below the bucket, named after the
// path-escaped key, holding the object data in a file called binaryData:
//
//	<root>/<bucket>/<escaped key>/binaryData
//
// Escaping keeps keys such as "b" and "b/1" or the directory marker "b/"
// apart, which a plain key-to-path mapping cannot. Production code uses an
// OS filesystem rooted at a data directory; tests use an in-memory one.
package billy

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/store"
)

// DataFile is the name of the file holding an object's content.
const DataFile = "binaryData"

var (
	_ store.Store         = (*Store)(nil)
	_ store.BucketCreator = (*Store)(nil)
)

// Store lists objects stored as files in a billy filesystem.
type Store struct {
	fs    billy.Filesystem
	owner s3types.Owner
}

// Option configures a Store.
type Option func(*Store)

// WithOwner sets the owner reported for every object.
func WithOwner(owner s3types.Owner) Option {
	return func(s *Store) {
		s.owner = owner
	}
}

// New creates a Store over fs.
func New(fs billy.Filesystem, opts ...Option) *Store {
	s := &Store{
		fs:    fs,
		owner: s3types.DefaultOwner,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewOS creates a Store rooted at dir on the local filesystem.
func NewOS(dir string, opts ...Option) *Store {
	return New(osfs.New(dir), opts...)
}

// NewMemory creates a Store over an empty in-memory filesystem.
func NewMemory(opts ...Option) *Store {
	return New(memfs.New(), opts...)
}

// CreateBucket creates the bucket directory.
func (s *Store) CreateBucket(ctx context.Context, bucket string) error {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return err
	}

	if _, err := s.fs.Stat(bucket); err == nil {
		return errors.NewBucketError("createBucket", bucket, errors.ErrBucketAlreadyExists)
	}
	if err := s.fs.MkdirAll(bucket, 0o755); err != nil {
		return errors.NewBucketError("createBucket", bucket, err)
	}
	return nil
}

// PutObject writes data as the content of key, replacing previous content.
func (s *Store) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	if err := validation.ValidateObjectKey(key); err != nil {
		return err
	}
	if err := s.checkBucket(bucket); err != nil {
		return err
	}

	dir := path.Join(bucket, EscapeKey(key))
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return errors.NewObjectError("putObject", bucket, key, err)
	}
	if err := util.WriteFile(s.fs, path.Join(dir, DataFile), data, 0o644); err != nil {
		return errors.NewObjectError("putObject", bucket, key, err)
	}
	return nil
}

// Snapshot reads every object directory of the bucket.
// Directories without a data file and stray files are skipped.
func (s *Store) Snapshot(ctx context.Context, bucket string) ([]s3types.Entry, error) {
	if err := s.checkBucket(bucket); err != nil {
		return nil, err
	}

	infos, err := s.fs.ReadDir(bucket)
	if err != nil {
		return nil, errors.NewBucketError("snapshot", bucket, err)
	}

	entries := make([]s3types.Entry, 0, len(infos))
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewBucketError("snapshot", bucket, err)
		}
		if !info.IsDir() {
			continue
		}

		key, err := UnescapeKey(info.Name())
		if err != nil {
			continue
		}

		name := path.Join(bucket, info.Name(), DataFile)
		data, err := s.fs.Stat(name)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.NewObjectError("snapshot", bucket, key, err)
		}

		etag, err := s.etag(name)
		if err != nil {
			return nil, errors.NewObjectError("snapshot", bucket, key, err)
		}

		entries = append(entries, s3types.Entry{
			Key:          key,
			LastModified: data.ModTime().UTC(),
			ETag:         etag,
			Size:         data.Size(),
			StorageClass: string(s3types.StorageClassStandard),
			Owner:        s.owner,
		})
	}

	store.SortEntries(entries)
	return entries, nil
}

// Buckets returns the top-level directory names, sorted.
func (s *Store) Buckets(ctx context.Context) ([]string, error) {
	infos, err := s.fs.ReadDir("/")
	if err != nil {
		return nil, errors.NewError("buckets", err)
	}

	var buckets []string
	for _, info := range infos {
		if info.IsDir() {
			buckets = append(buckets, info.Name())
		}
	}
	slices.Sort(buckets)
	return buckets, nil
}

// EscapeKey maps an object key onto a single path segment.
// Dots are escaped too so that "." and ".." keys stay distinct directories.
func EscapeKey(key string) string {
	return strings.ReplaceAll(url.PathEscape(key), ".", "%2E")
}

// UnescapeKey reverses EscapeKey.
func UnescapeKey(segment string) (string, error) {
	return url.PathUnescape(segment)
}

func (s *Store) checkBucket(bucket string) error {
	info, err := s.fs.Stat(bucket)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil, os.IsNotExist(err):
		return errors.NewBucketError("stat", bucket, errors.ErrBucketNotFound)
	default:
		return errors.NewBucketError("stat", bucket, err)
	}
}

func (s *Store) etag(name string) (string, error) {
	f, err := s.fs.Open(name)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf(`"%x"`, h.Sum(nil)), nil
}
