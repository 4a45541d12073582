package services

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"serverless-functions/internal/adapters/storage"
	"serverless-functions/internal/models"
)

// mockObjectStorage is a testify mock of storage.ObjectStorage
type mockObjectStorage struct {
	mock.Mock
}

func (m *mockObjectStorage) PutObject(ctx context.Context, bucket, key string, data []byte, opts *storage.PutOptions) (*storage.PutObjectResult, error) {
	args := m.Called(ctx, bucket, key, data, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PutObjectResult), args.Error(1)
}

func (m *mockObjectStorage) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockObjectStorage) HeadObject(ctx context.Context, bucket, key string) (*storage.ObjectInfo, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ObjectInfo), args.Error(1)
}

func (m *mockObjectStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	return m.Called(ctx, bucket, key).Error(0)
}

func (m *mockObjectStorage) Close() error {
	return m.Called().Error(0)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestCalculatorService_Add(t *testing.T) {
	svc := NewCalculatorService(quietLogger())
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.AdditionRequest
		want string
	}{
		{name: "scenario 10 + 15", req: &models.AdditionRequest{Number1: "10", Number2: "15"}, want: "25"},
		{name: "missing number2", req: &models.AdditionRequest{Number1: "4"}, want: "4"},
		{name: "nil request", req: nil, want: "0"},
		{name: "floats", req: &models.AdditionRequest{Number1: "2.5", Number2: "-0.5"}, want: "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Add(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCalculatorService_AddRejectsNonNumeric(t *testing.T) {
	svc := NewCalculatorService(quietLogger())

	_, err := svc.Add(context.Background(), &models.AdditionRequest{Number1: "ten", Number2: "1"})
	assert.Error(t, err)
}

func TestCalculatorService_AddProperty(t *testing.T) {
	svc := NewCalculatorService(quietLogger())
	ctx := context.Background()

	for a := int64(-50); a <= 50; a += 7 {
		for b := int64(-50); b <= 50; b += 11 {
			req := &models.AdditionRequest{
				Number1: jsonInt(a),
				Number2: jsonInt(b),
			}
			got, err := svc.Add(ctx, req)
			require.NoError(t, err)

			sum, err := got.Int64()
			require.NoError(t, err)
			assert.Equal(t, a+b, sum, "Add(%d, %d)", a, b)
		}
	}
}

func TestDocumentService_UploadSuccess(t *testing.T) {
	objectStorage := new(mockObjectStorage)
	svc := NewDocumentService(objectStorage, quietLogger())
	ctx := context.Background()

	content := []byte("%PDF-1.4\nhello\n%%EOF")
	expected := &storage.PutObjectResult{Bucket: "b", Key: "k.pdf", ETag: `"etag"`}

	objectStorage.On("PutObject", ctx, "b", "k.pdf", content, &storage.PutOptions{ContentType: "application/pdf"}).
		Return(expected, nil).Once()

	result, err := svc.Upload(ctx, &models.StorageRequest{
		Bucket:      "b",
		Key:         "k.pdf",
		FileContent: base64.StdEncoding.EncodeToString(content),
	})
	require.NoError(t, err)
	assert.Same(t, expected, result)
	objectStorage.AssertExpectations(t)
}

func TestDocumentService_ContentTypeIsAlwaysPDF(t *testing.T) {
	objectStorage := storage.NewMockObjectStorage()
	svc := NewDocumentService(objectStorage, quietLogger())
	ctx := context.Background()

	_, err := svc.Upload(ctx, &models.StorageRequest{
		Bucket:      "b",
		Key:         "notes.txt",
		FileContent: base64.StdEncoding.EncodeToString([]byte("plain text, not a pdf")),
	})
	require.NoError(t, err)

	info, err := objectStorage.HeadObject(ctx, "b", "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", info.ContentType)
}

func TestDocumentService_MissingParameters(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString([]byte("x"))

	tests := []struct {
		name        string
		req         *models.StorageRequest
		wantMissing string
	}{
		{name: "empty bucket", req: &models.StorageRequest{Bucket: "", Key: "k.pdf", FileContent: "x"}, wantMissing: "bucket"},
		{name: "empty key", req: &models.StorageRequest{Bucket: "b", FileContent: valid}, wantMissing: "key"},
		{name: "empty content", req: &models.StorageRequest{Bucket: "b", Key: "k.pdf"}, wantMissing: "file_content"},
		{name: "everything missing", req: &models.StorageRequest{}, wantMissing: "bucket,key,file_content"},
		{name: "nil request", req: nil, wantMissing: "bucket,key,file_content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objectStorage := new(mockObjectStorage)
			svc := NewDocumentService(objectStorage, quietLogger())

			_, err := svc.Upload(context.Background(), tt.req)

			var validationErr *models.ValidationError
			require.True(t, errors.As(err, &validationErr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantMissing, validationErr.Field)
			assert.Equal(t, "Missing required parameters: bucket, key, or file_content.", validationErr.Message)
			objectStorage.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDocumentService_InvalidBase64(t *testing.T) {
	objectStorage := new(mockObjectStorage)
	svc := NewDocumentService(objectStorage, quietLogger())

	_, err := svc.Upload(context.Background(), &models.StorageRequest{
		Bucket:      "b",
		Key:         "k.pdf",
		FileContent: "not base64!!",
	})

	var uploadErr *models.UploadError
	require.True(t, errors.As(err, &uploadErr), "expected UploadError, got %v", err)
	assert.Equal(t, "decode", uploadErr.Stage)
	assert.Contains(t, uploadErr.Error(), "illegal base64 data")
	objectStorage.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_StorageFailure(t *testing.T) {
	objectStorage := new(mockObjectStorage)
	svc := NewDocumentService(objectStorage, quietLogger())
	ctx := context.Background()

	storageErr := storage.NewStorageError("PutObject", "b", "k.pdf", storage.ErrBucketNotFound)
	objectStorage.On("PutObject", ctx, "b", "k.pdf", []byte("x"), mock.Anything).Return(nil, storageErr).Once()

	_, err := svc.Upload(ctx, &models.StorageRequest{
		Bucket:      "b",
		Key:         "k.pdf",
		FileContent: base64.StdEncoding.EncodeToString([]byte("x")),
	})

	var uploadErr *models.UploadError
	require.True(t, errors.As(err, &uploadErr), "expected UploadError, got %v", err)
	assert.Equal(t, "store", uploadErr.Stage)
	assert.ErrorIs(t, err, storage.ErrBucketNotFound)
	objectStorage.AssertExpectations(t)
}

func TestNewServiceContainer(t *testing.T) {
	_, err := NewServiceContainer(nil, quietLogger())
	assert.Error(t, err)

	container, err := NewServiceContainer(storage.NewMockObjectStorage(), nil)
	require.NoError(t, err)
	assert.NotNil(t, container.CalculatorService)
	assert.NotNil(t, container.DocumentService)
}
