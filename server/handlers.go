package server

import (
	"encoding/xml"
	"net/http"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/errors"
)

// listObjects serves ListObjects and ListObjectsV2 on GET /{bucket}.
// GetBucketLocation shares the route and is selected by the location query.
func (s *Server) listObjects(w http.ResponseWriter, r *http.Request) {
	bucket := r.PathValue("bucket")
	query := r.URL.Query()

	if query.Has("location") {
		s.bucketLocation(w, r, bucket)
		return
	}

	result, err := s.svc.ListObjects(r.Context(), bucket,
		s3mock.WithPrefix(query.Get("prefix")),
		s3mock.WithDelimiter(query.Get("delimiter")),
		s3mock.WithEncodingType(query.Get("encoding-type")),
	)
	if err != nil {
		s.writeError(w, r, err, "/"+bucket)
		return
	}
	s.metrics.ObserveListing(len(result.CommonPrefixes))

	if query.Get("list-type") == "2" {
		s.writeXML(w, r, http.StatusOK, newListBucketResultV2(result, query.Get("fetch-owner") == "true"))
		return
	}
	s.writeXML(w, r, http.StatusOK, newListBucketResult(result))
}

func (s *Server) bucketLocation(w http.ResponseWriter, r *http.Request, bucket string) {
	ok, err := s.svc.Exists(r.Context(), bucket)
	if err != nil {
		s.writeError(w, r, err, "/"+bucket)
		return
	}
	if !ok {
		s.writeError(w, r, errors.NewBucketError("getBucketLocation", bucket, errors.ErrBucketNotFound), "/"+bucket)
		return
	}
	s.writeXML(w, r, http.StatusOK, &LocationConstraint{Xmlns: Namespace})
}

// headBucket answers HEAD /{bucket} without a body.
func (s *Server) headBucket(w http.ResponseWriter, r *http.Request) {
	bucket := r.PathValue("bucket")

	ok, err := s.svc.Exists(r.Context(), bucket)
	switch {
	case err != nil:
		w.WriteHeader(errors.CodeOf(err).HTTPStatus())
	case !ok:
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

// createBucket serves PUT /{bucket}.
func (s *Server) createBucket(w http.ResponseWriter, r *http.Request) {
	bucket := r.PathValue("bucket")

	if err := s.svc.CreateBucket(r.Context(), bucket); err != nil {
		s.writeError(w, r, err, "/"+bucket)
		return
	}
	w.Header().Set("Location", "/"+bucket)
	w.WriteHeader(http.StatusOK)
}

// listBuckets serves ListBuckets on GET /.
func (s *Server) listBuckets(w http.ResponseWriter, r *http.Request) {
	names, err := s.svc.Buckets(r.Context())
	if err != nil {
		s.writeError(w, r, err, "/")
		return
	}

	buckets := make([]BucketInfo, 0, len(names))
	for _, name := range names {
		buckets = append(buckets, BucketInfo{
			Name:         name,
			CreationDate: formatTime(s.started),
		})
	}

	s.writeXML(w, r, http.StatusOK, &ListAllMyBucketsResult{
		Xmlns:   Namespace,
		Owner:   *newObjectOwner(s.owner),
		Buckets: BucketList{Buckets: buckets},
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// writeError renders err as an S3 error response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	code := errors.CodeOf(err)
	if s.logger != nil && code == errors.CodeInternal {
		s.logger.ErrorContext(r.Context(), "request failed",
			"request_id", RequestID(r.Context()),
			"resource", resource,
			"error", err)
	}

	s.writeXML(w, r, code.HTTPStatus(), &ErrorResponse{
		Code:      string(code),
		Message:   code.Description(),
		Resource:  resource,
		RequestID: RequestID(r.Context()),
	})
}

func (s *Server) writeXML(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := xml.Marshal(v)
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(r.Context(), "failed to encode response", "error", err)
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(body)
}
