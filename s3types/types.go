// Package s3types provides shared type definitions for the s3mock module.
package s3types

import (
	"log/slog"
	"time"
)

// StorageClass represents the S3 storage class for objects.
type StorageClass string

// Predefined S3 storage classes
const (
	// StorageClassStandard is the default S3 storage class
	StorageClassStandard StorageClass = "STANDARD"

	// StorageClassReducedRedundancy provides reduced redundancy storage
	StorageClassReducedRedundancy StorageClass = "REDUCED_REDUNDANCY"

	// StorageClassStandardIA provides infrequent access storage
	StorageClassStandardIA StorageClass = "STANDARD_IA"

	// StorageClassGlacier provides Glacier archival storage
	StorageClassGlacier StorageClass = "GLACIER"
)

// EncodingTypeURL is the only encoding type S3 accepts for listings.
const EncodingTypeURL = "url"

// DefaultOwner is stamped on entries created by the mock stores.
var DefaultOwner = Owner{
	ID:          123,
	DisplayName: "s3-mock-file-store",
}

// Owner identifies the owner of an object.
type Owner struct {
	// ID is the numeric owner identifier
	ID int64

	// DisplayName is the human readable owner name
	DisplayName string
}

// Entry is one stored object as exposed to a listing.
// Entries are value snapshots; the listing pipeline never mutates them.
type Entry struct {
	// Key is the object key, unique within a bucket
	Key string

	// LastModified is when the object was last modified
	LastModified time.Time

	// ETag is the entity tag for the object, including quotes
	ETag string

	// Size is the object size in bytes
	Size int64

	// StorageClass is the S3 storage class
	StorageClass string

	// Owner is the object owner
	Owner Owner
}

// ListResult contains the result of a list operation.
type ListResult struct {
	// Bucket is the bucket that was listed
	Bucket string

	// Prefix is the prefix the listing was restricted to
	Prefix string

	// Delimiter is the delimiter used to collapse common prefixes
	Delimiter string

	// EncodingType echoes the requested encoding type, if any
	EncodingType string

	// Objects contains the entries reported individually, sorted by key
	Objects []Entry

	// CommonPrefixes contains the collapsed prefixes, sorted
	CommonPrefixes []string

	// KeyCount is the number of objects plus common prefixes
	KeyCount int

	// Duration is how long the operation took
	Duration time.Duration
}

// ServiceConfig holds configuration for the listing service.
type ServiceConfig struct {
	Logger *slog.Logger
	Owner  Owner
}

// ListOptionConfig holds configuration for list operations via functional options.
type ListOptionConfig struct {
	Prefix       string
	Delimiter    string
	EncodingType string
}

type (
	// Option is a functional option for configuring the listing service.
	Option func(*ServiceConfig)
	// ListOption is a functional option for configuring list operations.
	ListOption func(*ListOptionConfig)
)
