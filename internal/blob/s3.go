package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultDownloadTTL = 24 * time.Hour

// S3Config configures an S3-compatible object storage backend.
type S3Config struct {
	Endpoint    string
	Region      string
	Bucket      string
	AccessKeyID string
	SecretKey   string
	// DownloadTTL bounds the validity of presigned download URLs.
	DownloadTTL time.Duration
}

// S3Store writes blobs to S3-compatible object storage using the AWS SDK
// v2 with path-style addressing.
type S3Store struct {
	client      *s3.Client
	presigner   *s3.PresignClient
	bucket      string
	endpoint    string
	downloadTTL time.Duration
}

// NewS3Store creates a store for the configured bucket.
func NewS3Store(cfg S3Config) *S3Store {
	endpoint := cfg.Endpoint
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	client := s3.New(s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretKey, "",
		),
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true,
	})

	ttl := cfg.DownloadTTL
	if ttl <= 0 {
		ttl = defaultDownloadTTL
	}

	return &S3Store{
		client:      client,
		presigner:   s3.NewPresignClient(client),
		bucket:      cfg.Bucket,
		endpoint:    endpoint,
		downloadTTL: ttl,
	}
}

// Put uploads body to pathname, overwriting any existing object. It
// returns the public URL, a presigned download URL and the canonical key.
func (s *S3Store) Put(ctx context.Context, pathname string, body []byte, contentType string) (Info, error) {
	key := strings.TrimLeft(pathname, "/")

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Info{}, fmt.Errorf("put object %q: %w", key, err)
	}

	presigned, err := s.presigner.PresignGetObject(ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(s.downloadTTL),
	)
	if err != nil {
		return Info{}, fmt.Errorf("presign GetObject for %q: %w", key, err)
	}

	return Info{
		URL:         fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key),
		DownloadURL: presigned.URL,
		Pathname:    key,
		SizeBytes:   int64(len(body)),
	}, nil
}
