// Package errors defines the error values shared by the s3mock service, its
// stores and the HTTP server.
//
// Stores wrap failures in *Error so callers can see which bucket or key an
// operation touched, and match the cause with errors.Is against the sentinels
// below. CodeOf maps any of them onto an S3 error code.
package errors

import (
	"errors"
	"fmt"
)

// Error records the operation, bucket and key a failure belongs to.
type Error struct {
	// Op names the failing operation, e.g. "snapshot" or "createBucket"
	Op string

	Bucket string
	Key    string

	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("s3mock.%s%s: %v", e.Op, e.subject(), e.Err)
}

// subject renders the bucket and key part of the message.
func (e *Error) subject() string {
	switch {
	case e.Bucket != "" && e.Key != "":
		return " " + e.Bucket + "/" + e.Key
	case e.Bucket != "":
		return " bucket " + e.Bucket
	case e.Key != "":
		return " object " + e.Key
	default:
		return ""
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket sets the bucket and returns e.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey sets the object key and returns e.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage prefixes the cause with message. The cause stays reachable
// through errors.Is.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

func NewError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

func NewBucketError(op, bucket string, err error) *Error {
	return &Error{Op: op, Bucket: bucket, Err: err}
}

func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{Op: op, Bucket: bucket, Key: key, Err: err}
}

var (
	ErrBucketNotFound      = errors.New("s3mock: bucket not found")
	ErrBucketAlreadyExists = errors.New("s3mock: bucket already exists")
	ErrAccessDenied        = errors.New("s3mock: access denied")

	// ErrInvalidInput covers malformed request parameters. The more specific
	// name and key errors below are reported as invalid input too.
	ErrInvalidInput      = errors.New("s3mock: invalid input")
	ErrInvalidBucketName = errors.New("s3mock: invalid bucket name")
	ErrInvalidObjectKey  = errors.New("s3mock: invalid object key")

	ErrInvalidConfig = errors.New("s3mock: invalid configuration")

	// ErrNotImplemented is returned when the configured store lacks an
	// optional capability such as bucket creation.
	ErrNotImplemented = errors.New("s3mock: not implemented")
)

func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}

func IsBucketAlreadyExists(err error) bool {
	return errors.Is(err, ErrBucketAlreadyExists)
}

func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsInvalidInput reports whether err stems from a bad bucket name, object key
// or other request parameter.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidBucketName) ||
		errors.Is(err, ErrInvalidObjectKey)
}
