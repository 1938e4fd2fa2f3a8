package ports

import (
	"context"
	"io"
)

type S3Client interface {
	PutObject(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignDownloadURL(ctx context.Context, key string) (string, error)
	GetPublicURL(key string) string
	GetBucket() string
}
