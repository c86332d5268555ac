package storage

import (
	"context"
	"io"
	"time"
)

type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// Storage is an S3-compatible object store holding issued certificates.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) error
	// PresignGet returns a time-limited download URL for key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
