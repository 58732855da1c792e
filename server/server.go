// Package server exposes an s3mock.Service over the S3 REST API.
//
// Buckets are addressed path-style. The server answers the listing calls a
// client needs to walk a bucket:
//
//	GET  /                      ListBuckets
//	GET  /{bucket}              ListObjects, or ListObjectsV2 with list-type=2
//	GET  /{bucket}?location     GetBucketLocation
//	HEAD /{bucket}              HeadBucket
//	PUT  /{bucket}              CreateBucket
//
// plus /healthz and a Prometheus /metrics endpoint. Every response carries an
// x-amz-request-id header.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
)

// Server serves the S3 listing API.
type Server struct {
	svc      *s3mock.Service
	logger   *slog.Logger
	owner    s3types.Owner
	registry *prometheus.Registry
	metrics  *Metrics
	started  time.Time
	handler  http.Handler
	http     *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for access and error logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry sets the registry the server metrics are registered with and
// served from. By default each server has a registry of its own.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = registry
	}
}

// WithOwner sets the owner reported by ListBuckets.
func WithOwner(owner s3types.Owner) Option {
	return func(s *Server) {
		s.owner = owner
	}
}

// New creates a Server for svc listening on addr.
func New(addr string, svc *s3mock.Service, opts ...Option) *Server {
	s := &Server{
		svc:     svc,
		owner:   s3types.DefaultOwner,
		started: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = NewMetrics(s.registry)
	s.handler = s.routes()

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", s.instrument("healthz", s.healthz))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.Handle("GET /{$}", s.instrument("list_buckets", s.listBuckets))

	// A GET pattern also matches HEAD. A separate HEAD pattern would
	// conflict with the literal GET routes above.
	list := s.instrument("list_objects", s.listObjects)
	head := s.instrument("head_bucket", s.headBucket)
	bucket := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			head.ServeHTTP(w, r)
			return
		}
		list.ServeHTTP(w, r)
	})
	create := s.instrument("create_bucket", s.createBucket)

	// Clients address buckets both with and without a trailing slash.
	for _, path := range []string{"/{bucket}", "/{bucket}/{$}"} {
		mux.Handle("GET "+path, bucket)
		mux.Handle("PUT "+path, create)
	}
	return mux
}

// Start listens on the configured address and serves until Shutdown is
// called. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	if s.logger != nil {
		s.logger.Info("s3mock listening", "addr", ln.Addr().String())
	}
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("s3mock shutting down")
	}
	return s.http.Shutdown(ctx)
}
