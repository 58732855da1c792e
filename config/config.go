// Package config loads the s3mock server configuration from the environment.
//
// Values are read from S3MOCK_* environment variables. Optional .env files
// are loaded first and never override variables already set in the process
// environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/internal/validation"
)

// Storage backends.
const (
	BackendMemory     = "memory"
	BackendFilesystem = "filesystem"
	BackendMinIO      = "minio"
	BackendS3         = "s3"
)

// Config is the complete server configuration.
type Config struct {
	// HTTPAddr is the address the server listens on
	HTTPAddr string

	// Backend selects the storage backend
	Backend string

	// Root is the data directory of the filesystem backend. Defaults to
	// s3mock under the XDG data home.
	Root string

	// InitialBuckets are created at startup
	InitialBuckets []string

	// ShutdownTimeout bounds the graceful shutdown
	ShutdownTimeout time.Duration

	Log   LogConfig
	MinIO MinIOConfig
	S3    S3Config
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string
	Format string
}

// MinIOConfig holds the settings of the minio backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// S3Config holds the settings of the s3 backend.
type S3Config struct {
	Region         string
	Endpoint       string
	ForcePathStyle bool

	// AccessKey and SecretKey are optional. When empty the AWS default
	// credential chain is used.
	AccessKey string
	SecretKey string
}

// Load reads the configuration from the environment after loading envFiles.
// Missing env files are skipped. The result is validated.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	cfg := parse()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFiles(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return errors.NewError("loadConfig", errors.ErrInvalidConfig).
				WithMessage(fmt.Sprintf("failed to load %s: %v", file, err))
		}
	}
	return nil
}

func parse() *Config {
	return &Config{
		HTTPAddr:        getEnv("S3MOCK_HTTP_ADDR", ":9090"),
		Backend:         strings.ToLower(getEnv("S3MOCK_BACKEND", BackendMemory)),
		Root:            getEnv("S3MOCK_ROOT", filepath.Join(xdg.DataHome, "s3mock")),
		InitialBuckets:  getList("S3MOCK_INITIAL_BUCKETS"),
		ShutdownTimeout: getDuration("S3MOCK_SHUTDOWN_TIMEOUT", "10s"),

		Log: LogConfig{
			Level:  strings.ToLower(getEnv("S3MOCK_LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("S3MOCK_LOG_FORMAT", "text")),
		},

		MinIO: MinIOConfig{
			Endpoint:  getEnv("S3MOCK_MINIO_ENDPOINT", ""),
			AccessKey: getEnv("S3MOCK_MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("S3MOCK_MINIO_SECRET_KEY", ""),
			UseSSL:    getBool("S3MOCK_MINIO_USE_SSL", false),
			Region:    getEnv("S3MOCK_MINIO_REGION", ""),
		},

		S3: S3Config{
			Region:         getEnv("S3MOCK_S3_REGION", ""),
			Endpoint:       getEnv("S3MOCK_S3_ENDPOINT", ""),
			ForcePathStyle: getBool("S3MOCK_S3_FORCE_PATH_STYLE", false),
			AccessKey:      getEnv("S3MOCK_S3_ACCESS_KEY", ""),
			SecretKey:      getEnv("S3MOCK_S3_SECRET_KEY", ""),
		},
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.HTTPAddr == "" {
		problems = append(problems, "S3MOCK_HTTP_ADDR is required")
	}

	switch c.Backend {
	case BackendMemory, BackendS3:
	case BackendFilesystem:
		if c.Root == "" {
			problems = append(problems, "S3MOCK_ROOT is required for the filesystem backend")
		}
	case BackendMinIO:
		if c.MinIO.Endpoint == "" {
			problems = append(problems, "S3MOCK_MINIO_ENDPOINT is required for the minio backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("S3MOCK_BACKEND must be one of memory, filesystem, minio, s3; got %q", c.Backend))
	}

	for _, bucket := range c.InitialBuckets {
		if err := validation.ValidateBucketName(bucket); err != nil {
			problems = append(problems, fmt.Sprintf("S3MOCK_INITIAL_BUCKETS: invalid bucket name %q", bucket))
		}
	}

	if _, err := c.Log.level(); err != nil {
		problems = append(problems, "S3MOCK_LOG_LEVEL must be one of debug, info, warn, error")
	}
	if !slices.Contains([]string{"text", "json"}, c.Log.Format) {
		problems = append(problems, "S3MOCK_LOG_FORMAT must be text or json")
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, "S3MOCK_SHUTDOWN_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return errors.NewError("validateConfig", errors.ErrInvalidConfig).
			WithMessage(strings.Join(problems, "; "))
	}
	return nil
}

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}
