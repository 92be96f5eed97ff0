// Package config holds the process-wide settings of the upload URL function.
// They are read from the environment once at cold start and never mutated.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/sh3r4rd/upload_url/internal/model"
)

// Config is the immutable runtime configuration.
//
// Fields:
//   - Bucket: target S3 bucket for uploads.
//   - URLExpiration: lifetime of issued URLs, in seconds.
//   - Region / Endpoint / UsePathStyle: S3 client settings; Endpoint targets
//     S3-compatible stores such as MinIO or LocalStack.
//   - AccessKeyID / SecretAccessKey: static credentials; when empty the SDK
//     default chain (the Lambda execution role) is used.
//   - RejectUnsafeFileNames: refuse names that would escape a flat key space.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Bucket                string `env:"BUCKET_NAME" env-required:"true"`
	URLExpiration         int    `env:"URL_EXPIRATION" env-default:"3600"`
	Region                string `env:"AWS_REGION"`
	Endpoint              string `env:"S3_ENDPOINT"`
	UsePathStyle          bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	AccessKeyID           string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey       string `env:"S3_SECRET_ACCESS_KEY"`
	RejectUnsafeFileNames bool   `env:"REJECT_UNSAFE_FILE_NAMES" env-default:"false"`
	LogLevel              string `env:"LOG_LEVEL" env-default:"info"`
}

var (
	ErrBucketRequired    = errors.New("config: bucket name is required")
	ErrInvalidExpiration = errors.New("config: invalid URL expiration")
	ErrPartialCredential = errors.New("config: both S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY must be set")
)

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks invariants that struct tags cannot express.
func (c Config) Validate() error {
	if c.Bucket == "" {
		return ErrBucketRequired
	}
	if c.URLExpiration <= 0 || c.URLExpiration > model.MaxURLExpirationSeconds {
		return fmt.Errorf("%w: %d seconds (want 1..%d)", ErrInvalidExpiration, c.URLExpiration, model.MaxURLExpirationSeconds)
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return ErrPartialCredential
	}
	return nil
}

// Expiration returns URLExpiration as a duration.
func (c Config) Expiration() time.Duration {
	return time.Duration(c.URLExpiration) * time.Second
}

// Usage renders the environment variables the function understands.
func Usage() string {
	var cfg Config
	desc, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return desc
}
