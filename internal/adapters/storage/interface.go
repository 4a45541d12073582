package storage

import (
	"context"
	"time"
)

// ResponseMetadata carries the provider's transport-level details for a request
type ResponseMetadata struct {
	RequestID      string `json:"RequestId,omitempty"`
	HTTPStatusCode int    `json:"HTTPStatusCode"`
}

// PutObjectResult is the provider metadata returned from a successful put.
// Field names follow the S3 response shape so callers can pass it through untouched.
type PutObjectResult struct {
	Bucket               string           `json:"Bucket"`
	Key                  string           `json:"Key"`
	ETag                 string           `json:"ETag,omitempty"`
	VersionID            string           `json:"VersionId,omitempty"`
	ServerSideEncryption string           `json:"ServerSideEncryption,omitempty"`
	Size                 int64            `json:"Size"`
	Location             string           `json:"Location,omitempty"`
	ResponseMetadata     ResponseMetadata `json:"ResponseMetadata"`
}

// ObjectInfo describes a stored object
type ObjectInfo struct {
	Bucket       string            `json:"bucket"`
	Key          string            `json:"key"`
	Size         int64             `json:"size"`
	ContentType  string            `json:"content_type"`
	LastModified time.Time         `json:"last_modified"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// PutOptions provides options for storing objects
type PutOptions struct {
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ObjectStorage is a bucket/key addressed blob store.
// Implementations are safe for concurrent use and hold no per-request state,
// so a single instance can be shared by every invocation of a function.
type ObjectStorage interface {
	// PutObject creates or overwrites the object at bucket/key
	PutObject(ctx context.Context, bucket, key string, data []byte, opts *PutOptions) (*PutObjectResult, error)

	// GetObject returns the full content of the object at bucket/key
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)

	// HeadObject returns the object's metadata without its content
	HeadObject(ctx context.Context, bucket, key string) (*ObjectInfo, error)

	// DeleteObject removes the object at bucket/key
	DeleteObject(ctx context.Context, bucket, key string) error

	// Close releases any resources held by the implementation
	Close() error
}

// StorageConfig represents configuration for storage providers
type StorageConfig struct {
	Type         string `json:"type" yaml:"type"`           // "s3", "minio", "local", "mock"
	BasePath     string `json:"base_path" yaml:"base_path"` // For local storage
	Region       string `json:"region" yaml:"region"`
	Endpoint     string `json:"endpoint" yaml:"endpoint"`
	AccessKey    string `json:"-" yaml:"access_key"`
	SecretKey    string `json:"-" yaml:"secret_key"`
	UsePathStyle bool   `json:"use_path_style" yaml:"use_path_style"`
	UseSSL       bool   `json:"use_ssl" yaml:"use_ssl"`
}

const defaultContentType = "application/octet-stream"

func contentTypeOrDefault(opts *PutOptions) string {
	if opts != nil && opts.ContentType != "" {
		return opts.ContentType
	}
	return defaultContentType
}

func validateLocation(op, bucket, key string) error {
	if bucket == "" {
		return NewStorageError(op, bucket, key, ErrInvalidBucket)
	}
	if key == "" {
		return NewStorageError(op, bucket, key, ErrInvalidKey)
	}
	return nil
}
