package storage

import (
	"errors"
	"fmt"
)

// Common storage error types
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrInvalidKey         = errors.New("invalid object key")
	ErrInvalidBucket      = errors.New("invalid bucket name")
	ErrStorageUnavailable = errors.New("storage service unavailable")
	ErrPermissionDenied   = errors.New("permission denied")
)

// StorageError represents a storage operation error with additional context
type StorageError struct {
	Op     string // Operation that failed (e.g., "PutObject", "GetObject")
	Bucket string
	Key    string
	Err    error // Underlying error
}

func (e *StorageError) Error() string {
	if e.Bucket != "" || e.Key != "" {
		return fmt.Sprintf("storage %s operation failed for '%s/%s': %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s operation failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(op, bucket, key string, err error) *StorageError {
	return &StorageError{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// IsNotFound returns true if the error indicates a missing object or bucket
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound) || errors.Is(err, ErrBucketNotFound)
}

// IsInvalidInput returns true if the error was caused by an unusable bucket or key
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidKey) || errors.Is(err, ErrInvalidBucket)
}
