// Package publisher pushes stamped outputs to S3-compatible storage. A
// publish failure leaves items Done; the user can rerun the export.
package publisher

import (
	"context"
	"sync"
	"time"

	"github.com/bstardust/datestamp/internal/fileinfo"
	"github.com/bstardust/datestamp/internal/logger"
	"github.com/bstardust/datestamp/internal/worker"
	"github.com/bstardust/datestamp/pkg/models"
	"github.com/bstardust/datestamp/pkg/s3client"
)

// presignExpiry keeps download links around for a week
const presignExpiry = 7 * 24 * time.Hour

// Publisher uploads finished WorkItem outputs
type Publisher struct {
	client s3client.Interface
	pool   *worker.Pool
}

// New creates a Publisher uploading with the given concurrency
func New(client s3client.Interface, concurrency int) *Publisher {
	return &Publisher{
		client: client,
		pool:   worker.NewPool(concurrency),
	}
}

// Publish uploads every Done item's output. Items upload independently;
// the first error is returned after all uploads settle. Outputs already in
// the bucket (from an earlier run the user is retrying) are not re-uploaded.
func (p *Publisher) Publish(ctx context.Context, items []models.WorkItem) error {
	dest := p.client.GetBucketName()
	if prefix := p.client.GetPrefix(); prefix != "" {
		dest += "/" + prefix
	}
	logger.Info("Publishing to %s", dest)

	var mu sync.Mutex
	var firstErr error

	for _, item := range items {
		if item.State != models.StateDone {
			continue
		}

		it := item
		p.pool.Submit(func() {
			if err := p.upload(ctx, it); err != nil {
				logger.Error("Failed to publish %s: %v", it.OutputName, err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
	}

	p.pool.Wait()
	return firstErr
}

func (p *Publisher) upload(ctx context.Context, item models.WorkItem) error {
	exists, err := p.client.ObjectExists(ctx, item.OutputName)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("Skipping %s: already published", item.OutputName)
	} else {
		contentType := fileinfo.GetContentType(item.OutputName)
		if err := p.client.UploadBlob(ctx, item.OutputName, item.Output, contentType); err != nil {
			return err
		}
	}

	url, err := p.client.PresignedGetURL(ctx, item.OutputName, presignExpiry)
	if err != nil {
		// The object is up; a broken link is only worth a warning.
		logger.Warn("Uploaded %s but could not presign a link: %v", item.OutputName, err)
		return nil
	}

	logger.Info("Published %s: %s", item.OutputName, url)
	return nil
}
