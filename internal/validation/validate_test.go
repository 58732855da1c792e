package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/errors"
)

func TestValidateBucketName(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		wantErr bool
	}{
		{"simple", "bucket-a", false},
		{"digits and dots", "3330.logs", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 64), true},
		{"uppercase", "Bucket", true},
		{"underscore", "my_bucket", true},
		{"leading hyphen", "-bucket", true},
		{"trailing dot", "bucket.", true},
		{"adjacent periods", "my..bucket", true},
		{"ip address", "192.168.5.4", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBucketName(tt.bucket)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidBucketName)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateObjectKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"nested", "b/1/2", false},
		{"colon", "d:1:1", false},
		{"trailing delimiter", "b/", false},
		{"empty", "", true},
		{"too long", strings.Repeat("k", 1025), true},
		{"control character", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidObjectKey)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateEncodingType(t *testing.T) {
	assert.NoError(t, ValidateEncodingType(""))
	assert.NoError(t, ValidateEncodingType("url"))
	err := ValidateEncodingType("base64")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}
