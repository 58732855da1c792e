package errors

import (
	"errors"
	"net/http"
)

// ErrorCode is an S3 error code as reported in the <Code> element of an
// error response. Codes are string-based to match the wire format.
type ErrorCode string

const (
	// CodeNoSuchBucket indicates the specified bucket does not exist.
	CodeNoSuchBucket ErrorCode = "NoSuchBucket"

	// CodeBucketAlreadyExists indicates the bucket name is already taken.
	CodeBucketAlreadyExists ErrorCode = "BucketAlreadyExists"

	// CodeInvalidArgument indicates a request parameter is invalid.
	CodeInvalidArgument ErrorCode = "InvalidArgument"

	// CodeInvalidBucketName indicates the bucket name is not valid.
	CodeInvalidBucketName ErrorCode = "InvalidBucketName"

	// CodeAccessDenied indicates the caller may not access the resource.
	CodeAccessDenied ErrorCode = "AccessDenied"

	// CodeNotImplemented indicates the requested functionality is not implemented.
	CodeNotImplemented ErrorCode = "NotImplemented"

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "InternalError"
)

// HTTPStatus returns the HTTP status code S3 uses for the error code.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeNoSuchBucket:
		return http.StatusNotFound
	case CodeBucketAlreadyExists:
		return http.StatusConflict
	case CodeInvalidArgument, CodeInvalidBucketName:
		return http.StatusBadRequest
	case CodeAccessDenied:
		return http.StatusForbidden
	case CodeNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// Description returns the human readable message S3 sends with the code.
func (c ErrorCode) Description() string {
	switch c {
	case CodeNoSuchBucket:
		return "The specified bucket does not exist"
	case CodeBucketAlreadyExists:
		return "The requested bucket name is not available"
	case CodeInvalidArgument:
		return "Invalid Argument"
	case CodeInvalidBucketName:
		return "The specified bucket is not valid"
	case CodeAccessDenied:
		return "Access Denied"
	case CodeNotImplemented:
		return "A header you provided implies functionality that is not implemented"
	default:
		return "We encountered an internal error. Please try again."
	}
}

// CodeOf classifies err into the S3 error code reported to clients.
func CodeOf(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrBucketNotFound):
		return CodeNoSuchBucket
	case errors.Is(err, ErrBucketAlreadyExists):
		return CodeBucketAlreadyExists
	case errors.Is(err, ErrInvalidBucketName):
		return CodeInvalidBucketName
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidObjectKey):
		return CodeInvalidArgument
	case errors.Is(err, ErrAccessDenied):
		return CodeAccessDenied
	case errors.Is(err, ErrNotImplemented):
		return CodeNotImplemented
	default:
		return CodeInternal
	}
}
