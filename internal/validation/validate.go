// Package validation provides input validation for bucket names, object keys
// and listing parameters.
package validation

import (
	"net"
	"strings"
	"unicode"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
)

// ValidateBucketName validates that a bucket name is DNS-compliant according to S3 rules.
// Returns ErrInvalidBucketName if the bucket name is invalid.
func ValidateBucketName(bucket string) error {
	if len(bucket) < 3 || len(bucket) > 63 {
		return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage("bucket name must be between 3 and 63 characters long")
	}

	for _, char := range bucket {
		if !isValidBucketChar(char) {
			return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
				WithBucket(bucket).
				WithMessage("bucket name can only contain lowercase letters, numbers, dots, and hyphens")
		}
	}

	first, last := bucket[0], bucket[len(bucket)-1]
	if first == '-' || first == '.' || last == '-' || last == '.' {
		return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage("bucket name must start and end with a letter or number")
	}

	if strings.Contains(bucket, "..") {
		return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage("bucket name cannot contain two adjacent periods")
	}

	if net.ParseIP(bucket) != nil {
		return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage("bucket name cannot be formatted as an IP address")
	}

	return nil
}

// ValidateObjectKey validates that an object key is valid according to S3 rules.
func ValidateObjectKey(key string) error {
	if key == "" {
		return errors.NewError("validateObjectKey", errors.ErrInvalidObjectKey).
			WithMessage("object key cannot be empty")
	}

	if len(key) > 1024 {
		return errors.NewError("validateObjectKey", errors.ErrInvalidObjectKey).
			WithKey(key).
			WithMessage("object key cannot exceed 1024 bytes")
	}

	if strings.IndexFunc(key, unicode.IsControl) >= 0 {
		return errors.NewError("validateObjectKey", errors.ErrInvalidObjectKey).
			WithKey(key).
			WithMessage("object key cannot contain control characters")
	}

	return nil
}

// ValidateEncodingType accepts an empty encoding type or "url".
func ValidateEncodingType(encodingType string) error {
	if encodingType == "" || encodingType == s3types.EncodingTypeURL {
		return nil
	}
	return errors.NewError("validateEncodingType", errors.ErrInvalidInput).
		WithMessage("invalid encoding type " + encodingType)
}

func isValidBucketChar(char rune) bool {
	return (char >= '0' && char <= '9') || (char >= 'a' && char <= 'z') || char == '.' || char == '-'
}
