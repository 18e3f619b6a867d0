package main

import (
	"fmt"
	"os"

	"github.com/protokolbase/protokolbase/internal/blob"
	"github.com/protokolbase/protokolbase/pkg/config/env"
)

// Config is built once at startup and passed into the component
// constructors; nothing reads the environment after this point.
type Config struct {
	DatabaseURL string
	Blob        blob.S3Config
}

// LoadConfig reads .env and the process environment.
func LoadConfig() (*Config, error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), ".env"); err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Blob: blob.S3Config{
			Endpoint:    os.Getenv("BLOB_S3_ENDPOINT"),
			Region:      os.Getenv("BLOB_S3_REGION"),
			Bucket:      os.Getenv("BLOB_S3_BUCKET"),
			AccessKeyID: os.Getenv("BLOB_S3_ACCESS_KEY_ID"),
			SecretKey:   os.Getenv("BLOB_S3_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	return cfg, nil
}

// ValidateBlob checks that object storage is fully configured; the
// ingest command calls it only when it will actually upload.
func (c *Config) ValidateBlob() error {
	if c.Blob.Endpoint == "" || c.Blob.Bucket == "" {
		return fmt.Errorf("blob storage is not configured: BLOB_S3_ENDPOINT and BLOB_S3_BUCKET are required")
	}
	if c.Blob.AccessKeyID == "" || c.Blob.SecretKey == "" {
		return fmt.Errorf("blob storage credentials are not set")
	}
	return nil
}
