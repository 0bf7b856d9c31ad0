package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bstardust/datestamp/pkg/models"
)

// Mock S3 client
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) UploadBlob(ctx context.Context, name string, data []byte, contentType string) error {
	args := m.Called(ctx, name, data, contentType)
	return args.Error(0)
}

func (m *MockS3Client) ObjectExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockS3Client) PresignedGetURL(ctx context.Context, name string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, name, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockS3Client) GetBucketName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockS3Client) GetPrefix() string {
	args := m.Called()
	return args.String(0)
}

func newMockS3() *MockS3Client {
	mockS3 := new(MockS3Client)
	mockS3.On("GetBucketName").Return("photos")
	mockS3.On("GetPrefix").Return("")
	return mockS3
}

func TestPublishUploadsDoneItems(t *testing.T) {
	mockS3 := newMockS3()
	ctx := context.Background()

	items := []models.WorkItem{
		{ID: "1", State: models.StateDone, OutputName: "a-stamped.jpg", Output: []byte("a")},
		{ID: "2", State: models.StateFailed, SourceName: "broken.jpg"},
		{ID: "3", State: models.StateDone, OutputName: "b-stamped.jpg", Output: []byte("b")},
	}

	mockS3.On("ObjectExists", ctx, mock.Anything).Return(false, nil)
	mockS3.On("UploadBlob", ctx, "a-stamped.jpg", []byte("a"), "image/jpeg").Return(nil)
	mockS3.On("UploadBlob", ctx, "b-stamped.jpg", []byte("b"), "image/jpeg").Return(nil)
	mockS3.On("PresignedGetURL", ctx, mock.Anything, mock.Anything).Return("https://example.com/x", nil)

	p := New(mockS3, 2)
	err := p.Publish(ctx, items)

	assert.NoError(t, err)
	mockS3.AssertNumberOfCalls(t, "UploadBlob", 2)
}

func TestPublishSkipsAlreadyPublished(t *testing.T) {
	mockS3 := newMockS3()
	ctx := context.Background()

	items := []models.WorkItem{
		{ID: "1", State: models.StateDone, OutputName: "a-stamped.jpg", Output: []byte("a")},
		{ID: "2", State: models.StateDone, OutputName: "b-stamped.jpg", Output: []byte("b")},
	}

	// a-stamped.jpg made it up on a previous run; only b gets uploaded, but
	// both still get download links.
	mockS3.On("ObjectExists", ctx, "a-stamped.jpg").Return(true, nil)
	mockS3.On("ObjectExists", ctx, "b-stamped.jpg").Return(false, nil)
	mockS3.On("UploadBlob", ctx, "b-stamped.jpg", []byte("b"), "image/jpeg").Return(nil)
	mockS3.On("PresignedGetURL", ctx, mock.Anything, mock.Anything).Return("https://example.com/x", nil)

	p := New(mockS3, 1)
	assert.NoError(t, p.Publish(ctx, items))

	mockS3.AssertNumberOfCalls(t, "UploadBlob", 1)
	mockS3.AssertNumberOfCalls(t, "PresignedGetURL", 2)
}

func TestPublishExistenceCheckFailure(t *testing.T) {
	mockS3 := newMockS3()
	ctx := context.Background()

	items := []models.WorkItem{
		{ID: "1", State: models.StateDone, OutputName: "a-stamped.jpg", Output: []byte("a")},
	}

	statErr := errors.New("access denied")
	mockS3.On("ObjectExists", ctx, "a-stamped.jpg").Return(false, statErr)

	p := New(mockS3, 1)
	assert.ErrorIs(t, p.Publish(ctx, items), statErr)
	mockS3.AssertNotCalled(t, "UploadBlob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPublishContinuesPastFailures(t *testing.T) {
	mockS3 := newMockS3()
	ctx := context.Background()

	items := []models.WorkItem{
		{ID: "1", State: models.StateDone, OutputName: "a-stamped.jpg", Output: []byte("a")},
		{ID: "2", State: models.StateDone, OutputName: "b-stamped.jpg", Output: []byte("b")},
	}

	uploadErr := errors.New("connection reset")
	mockS3.On("ObjectExists", ctx, mock.Anything).Return(false, nil)
	mockS3.On("UploadBlob", ctx, "a-stamped.jpg", []byte("a"), "image/jpeg").Return(uploadErr)
	mockS3.On("UploadBlob", ctx, "b-stamped.jpg", []byte("b"), "image/jpeg").Return(nil)
	mockS3.On("PresignedGetURL", ctx, "b-stamped.jpg", mock.Anything).Return("https://example.com/b", nil)

	p := New(mockS3, 1)
	err := p.Publish(ctx, items)

	assert.ErrorIs(t, err, uploadErr)
	mockS3.AssertNumberOfCalls(t, "UploadBlob", 2)
}

func TestPublishPresignFailureIsNotFatal(t *testing.T) {
	mockS3 := newMockS3()
	ctx := context.Background()

	items := []models.WorkItem{
		{ID: "1", State: models.StateDone, OutputName: "a-stamped.jpg", Output: []byte("a")},
	}

	mockS3.On("ObjectExists", ctx, "a-stamped.jpg").Return(false, nil)
	mockS3.On("UploadBlob", ctx, "a-stamped.jpg", []byte("a"), "image/jpeg").Return(nil)
	mockS3.On("PresignedGetURL", ctx, "a-stamped.jpg", mock.Anything).Return("", errors.New("presign unsupported"))

	p := New(mockS3, 1)
	assert.NoError(t, p.Publish(ctx, items))
}
