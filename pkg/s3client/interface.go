package s3client

import (
	"context"
	"time"
)

// Interface defines the operations the publisher needs from an S3 client
type Interface interface {
	UploadBlob(ctx context.Context, name string, data []byte, contentType string) error
	ObjectExists(ctx context.Context, name string) (bool, error)
	PresignedGetURL(ctx context.Context, name string, expiry time.Duration) (string, error)
	GetBucketName() string
	GetPrefix() string
}
