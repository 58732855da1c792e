// Command s3mock serves S3 bucket listings from a configurable backend.
//
// Configuration is read from S3MOCK_* environment variables and an optional
// .env file in the working directory. See package config for the variables.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/config"
	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stderr, ".env"); err != nil {
		fmt.Fprintf(os.Stderr, "s3mock: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled, then shuts the server down gracefully.
func run(ctx context.Context, logOutput io.Writer, envFiles ...string) error {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(logOutput)

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	svc, err := s3mock.New(st, s3mock.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := createInitialBuckets(ctx, svc, cfg.InitialBuckets, logger); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.HTTPAddr, err)
	}

	srv := server.New(cfg.HTTPAddr, svc, server.WithLogger(logger))
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// createInitialBuckets creates the configured buckets. Buckets that already
// exist are left alone.
func createInitialBuckets(ctx context.Context, svc *s3mock.Service, buckets []string, logger *slog.Logger) error {
	for _, bucket := range buckets {
		err := svc.CreateBucket(ctx, bucket)
		switch {
		case err == nil:
		case s3errors.IsBucketAlreadyExists(err):
			logger.DebugContext(ctx, "initial bucket exists", "bucket", bucket)
		default:
			return fmt.Errorf("create initial bucket %s: %w", bucket, err)
		}
	}
	return nil
}
