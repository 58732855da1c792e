package s3mock

import (
	"log/slog"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
)

// WithLogger sets the logger used for operation logging.
// Without a logger the service logs nothing.
func WithLogger(logger *slog.Logger) s3types.Option {
	return func(c *s3types.ServiceConfig) {
		c.Logger = logger
	}
}

// WithOwner replaces the owner reported on every listed object.
// By default the owner recorded by the store is reported.
func WithOwner(owner s3types.Owner) s3types.Option {
	return func(c *s3types.ServiceConfig) {
		c.Owner = owner
	}
}

// WithPrefix restricts a listing to keys starting with prefix.
func WithPrefix(prefix string) s3types.ListOption {
	return func(c *s3types.ListOptionConfig) {
		c.Prefix = prefix
	}
}

// WithDelimiter rolls keys up into common prefixes at the first occurrence
// of delimiter after the prefix.
func WithDelimiter(delimiter string) s3types.ListOption {
	return func(c *s3types.ListOptionConfig) {
		c.Delimiter = delimiter
	}
}

// WithEncodingType requests encoded keys in the response. Only "url" is
// accepted. The service echoes it; encoding itself is done on the wire.
func WithEncodingType(encodingType string) s3types.ListOption {
	return func(c *s3types.ListOptionConfig) {
		c.EncodingType = encodingType
	}
}
