// Package s3mock emulates the object listing behaviour of Amazon S3 over a
// pluggable storage backend.
//
// A Service takes a point-in-time snapshot of a bucket from a store.Store and
// runs it through the listing pipeline: entries are narrowed to a prefix, keys
// that share a segment up to the first delimiter after the prefix are rolled
// up into common prefixes, and the remaining entries are reported
// individually. The package server exposes the Service over the S3 REST API.
//
// Example usage:
//
//	svc, err := s3mock.New(memory.New(), s3mock.WithLogger(slog.Default()))
//	if err != nil {
//	    return err
//	}
//
//	result, err := svc.ListObjects(ctx, "my-bucket",
//	    s3mock.WithPrefix("photos/"),
//	    s3mock.WithDelimiter("/"),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, p := range result.CommonPrefixes {
//	    fmt.Println("dir:", p)
//	}
package s3mock
