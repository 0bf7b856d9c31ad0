package s3client

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bstardust/datestamp/internal/logger"
)

// Config represents the configuration for an S3 client
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Prefix    string
}

// Client publishes stamped outputs to S3-compatible storage
type Client struct {
	client *minio.Client
	config Config
}

// New creates a new S3 client
func New(ctx context.Context, cfg Config) (*Client, error) {
	// Validate configuration
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("S3 endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("S3 access key and secret key are required")
	}

	// Remove protocol prefix if present
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupAuto,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	// Check if bucket exists
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	logger.Info("Connected to S3 endpoint %s, bucket %s", endpoint, cfg.Bucket)

	return &Client{
		client: client,
		config: cfg,
	}, nil
}

// UploadBlob uploads an in-memory blob under the configured prefix
func (c *Client) UploadBlob(ctx context.Context, name string, data []byte, contentType string) error {
	key := c.objectKey(name)

	_, err := c.client.PutObject(ctx, c.config.Bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	logger.Debug("Uploaded %s (%d bytes, %s)", key, len(data), contentType)
	return nil
}

// ObjectExists checks whether an object is already in the bucket
func (c *Client) ObjectExists(ctx context.Context, name string) (bool, error) {
	_, err := c.client.StatObject(ctx, c.config.Bucket, c.objectKey(name), minio.StatObjectOptions{})
	if err != nil {
		if IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// PresignedGetURL returns a time-limited download link for a published object
func (c *Client) PresignedGetURL(ctx context.Context, name string, expiry time.Duration) (string, error) {
	u, err := c.client.PresignedGetObject(ctx, c.config.Bucket, c.objectKey(name), expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", name, err)
	}
	return u.String(), nil
}

// GetBucketName returns the configured bucket
func (c *Client) GetBucketName() string {
	return c.config.Bucket
}

// GetPrefix returns the configured key prefix
func (c *Client) GetPrefix() string {
	return c.config.Prefix
}

func (c *Client) objectKey(name string) string {
	if c.config.Prefix == "" {
		return name
	}
	return path.Join(c.config.Prefix, name)
}
