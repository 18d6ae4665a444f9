package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrDisabled = errors.New("object storage is not configured")

// Uploader stores a blob and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

type S3Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3(cfg S3Config) *S3Uploader {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	public := strings.TrimRight(cfg.PublicURL, "/")
	if public == "" {
		if cfg.Endpoint != "" {
			public = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			public = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &S3Uploader{
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		publicURL: public,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return u.URL(key), nil
}

func (u *S3Uploader) URL(key string) string {
	return u.publicURL + "/" + strings.TrimLeft(key, "/")
}

// Disabled rejects every upload with ErrDisabled.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, []byte) (string, error) {
	return "", ErrDisabled
}

// Memory keeps uploads in a map. Used in tests and memory-store runs.
type Memory struct {
	BaseURL string

	mu      sync.Mutex
	Objects map[string][]byte
}

func NewMemory(baseURL string) *Memory {
	return &Memory{BaseURL: strings.TrimRight(baseURL, "/"), Objects: map[string][]byte{}}
}

func (m *Memory) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = append([]byte(nil), data...)
	return m.BaseURL + "/" + key, nil
}
