// Package storage puts uploaded objects (avatars, stock sheets) in S3.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/salon-pos/internal/config"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
)

type Store interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

// New returns an S3 store, or Disabled when no bucket is configured.
func New(cfg *config.Config) Store {
	if !cfg.StorageEnabled() {
		return Disabled{}
	}
	return NewS3(cfg)
}

// ===============================
// S3
// ===============================

type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3(cfg *config.Config) *S3Store {
	opts := s3.Options{
		Region:       cfg.S3Region,
		UsePathStyle: cfg.S3Endpoint != "",
	}
	if cfg.S3AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
	}

	return &S3Store{
		client: s3.New(opts),
		bucket: cfg.S3Bucket,
	}
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

// ===============================
// Fallbacks
// ===============================

type Disabled struct{}

func (Disabled) Put(context.Context, string, string, []byte) error {
	return httperr.ErrBusiness("storage_disabled")
}

// Memory keeps objects in a map.
type Memory struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
}

func NewMemory() *Memory {
	return &Memory{Objects: map[string][]byte{}, Types: map[string]string{}}
}

func (m *Memory) Put(_ context.Context, key, contentType string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = append([]byte(nil), body...)
	m.Types[key] = contentType
	return nil
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Objects[key]
	return b, ok
}
