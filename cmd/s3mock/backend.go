package main

import (
	"context"
	"fmt"
	"os"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/config"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/store"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/store/awss3"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/store/billy"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/store/memory"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/store/minio"
)

// newStore builds the storage backend selected by cfg.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), nil

	case config.BackendFilesystem:
		if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		return billy.NewOS(cfg.Root), nil

	case config.BackendMinIO:
		return minio.New(minio.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Region:    cfg.MinIO.Region,
		})

	case config.BackendS3:
		return awss3.New(ctx, s3StoreConfig(cfg.S3))

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func s3StoreConfig(cfg config.S3Config) awss3.Config {
	return awss3.Config{
		Region:         cfg.Region,
		Endpoint:       cfg.Endpoint,
		ForcePathStyle: cfg.ForcePathStyle,
		AccessKey:      cfg.AccessKey,
		SecretKey:      cfg.SecretKey,
	}
}
