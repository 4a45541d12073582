package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioObjectStorage implements ObjectStorage on a MinIO (or other S3-compatible) server
type MinioObjectStorage struct {
	client *minio.Client
}

// NewMinioObjectStorage creates a new MinIO-backed storage
func NewMinioObjectStorage(cfg *StorageConfig) (*MinioObjectStorage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	return &MinioObjectStorage{client: client}, nil
}

// PutObject implements ObjectStorage.PutObject
func (m *MinioObjectStorage) PutObject(ctx context.Context, bucket, key string, data []byte, opts *PutOptions) (*PutObjectResult, error) {
	if err := validateLocation("PutObject", bucket, key); err != nil {
		return nil, err
	}

	putOpts := minio.PutObjectOptions{
		ContentType: contentTypeOrDefault(opts),
	}
	if opts != nil && len(opts.Metadata) > 0 {
		putOpts.UserMetadata = opts.Metadata
	}

	info, err := m.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), putOpts)
	if err != nil {
		return nil, NewStorageError("PutObject", bucket, key, translateMinioError(err))
	}

	return &PutObjectResult{
		Bucket:    bucket,
		Key:       key,
		ETag:      info.ETag,
		VersionID: info.VersionID,
		Size:      info.Size,
		Location:  info.Location,
		ResponseMetadata: ResponseMetadata{
			HTTPStatusCode: http.StatusOK,
		},
	}, nil
}

// GetObject implements ObjectStorage.GetObject
func (m *MinioObjectStorage) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := validateLocation("GetObject", bucket, key); err != nil {
		return nil, err
	}

	object, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, NewStorageError("GetObject", bucket, key, translateMinioError(err))
	}
	defer object.Close()

	// minio defers the request until the first read, so not-found surfaces here
	data, err := io.ReadAll(object)
	if err != nil {
		return nil, NewStorageError("GetObject", bucket, key, translateMinioError(err))
	}

	return data, nil
}

// HeadObject implements ObjectStorage.HeadObject
func (m *MinioObjectStorage) HeadObject(ctx context.Context, bucket, key string) (*ObjectInfo, error) {
	if err := validateLocation("HeadObject", bucket, key); err != nil {
		return nil, err
	}

	stat, err := m.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, NewStorageError("HeadObject", bucket, key, translateMinioError(err))
	}

	return &ObjectInfo{
		Bucket:       bucket,
		Key:          key,
		Size:         stat.Size,
		ContentType:  stat.ContentType,
		LastModified: stat.LastModified,
		ETag:         stat.ETag,
		Metadata:     lowerKeys(stat.UserMetadata),
	}, nil
}

// DeleteObject implements ObjectStorage.DeleteObject
func (m *MinioObjectStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	if err := validateLocation("DeleteObject", bucket, key); err != nil {
		return err
	}

	// S3 deletes of missing keys succeed; report them like the other backends do
	if _, err := m.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		return NewStorageError("DeleteObject", bucket, key, translateMinioError(err))
	}

	if err := m.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return NewStorageError("DeleteObject", bucket, key, translateMinioError(err))
	}
	return nil
}

// Close implements ObjectStorage.Close
func (m *MinioObjectStorage) Close() error {
	return nil
}

func translateMinioError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey":
		return fmt.Errorf("%w: %w", ErrObjectNotFound, err)
	case "NoSuchBucket":
		return fmt.Errorf("%w: %w", ErrBucketNotFound, err)
	case "AccessDenied":
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// lowerKeys normalises user metadata keys, which minio returns in canonical
// header case
func lowerKeys(metadata map[string]string) map[string]string {
	if len(metadata) == 0 {
		return nil
	}
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		out[strings.ToLower(k)] = v
	}
	return out
}
