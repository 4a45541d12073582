package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"
)

// MockObjectStorage is an in-memory implementation of ObjectStorage for testing
type MockObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]*mockObject
	puts    int

	// PutErr, when set, is returned by every PutObject call
	PutErr error
}

type mockObject struct {
	data         []byte
	metadata     map[string]string
	contentType  string
	lastModified time.Time
	etag         string
}

// NewMockObjectStorage creates a new MockObjectStorage instance
func NewMockObjectStorage() *MockObjectStorage {
	return &MockObjectStorage{
		objects: make(map[string]*mockObject),
	}
}

func objectID(bucket, key string) string {
	return bucket + "/" + key
}

// PutObject implements ObjectStorage.PutObject
func (m *MockObjectStorage) PutObject(ctx context.Context, bucket, key string, data []byte, opts *PutOptions) (*PutObjectResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.puts++

	if err := validateLocation("PutObject", bucket, key); err != nil {
		return nil, err
	}
	if m.PutErr != nil {
		return nil, NewStorageError("PutObject", bucket, key, m.PutErr)
	}

	var metadata map[string]string
	if opts != nil && opts.Metadata != nil {
		metadata = make(map[string]string, len(opts.Metadata))
		for k, v := range opts.Metadata {
			metadata[k] = v
		}
	}

	sum := md5.Sum(data)
	etag := `"` + hex.EncodeToString(sum[:]) + `"`

	m.objects[objectID(bucket, key)] = &mockObject{
		data:         append([]byte(nil), data...), // Copy data
		metadata:     metadata,
		contentType:  contentTypeOrDefault(opts),
		lastModified: time.Now(),
		etag:         etag,
	}

	return &PutObjectResult{
		Bucket: bucket,
		Key:    key,
		ETag:   etag,
		Size:   int64(len(data)),
		ResponseMetadata: ResponseMetadata{
			HTTPStatusCode: 200,
		},
	}, nil
}

// GetObject implements ObjectStorage.GetObject
func (m *MockObjectStorage) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := validateLocation("GetObject", bucket, key); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, exists := m.objects[objectID(bucket, key)]
	if !exists {
		return nil, NewStorageError("GetObject", bucket, key, ErrObjectNotFound)
	}

	return append([]byte(nil), obj.data...), nil
}

// HeadObject implements ObjectStorage.HeadObject
func (m *MockObjectStorage) HeadObject(ctx context.Context, bucket, key string) (*ObjectInfo, error) {
	if err := validateLocation("HeadObject", bucket, key); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, exists := m.objects[objectID(bucket, key)]
	if !exists {
		return nil, NewStorageError("HeadObject", bucket, key, ErrObjectNotFound)
	}

	return &ObjectInfo{
		Bucket:       bucket,
		Key:          key,
		Size:         int64(len(obj.data)),
		ContentType:  obj.contentType,
		LastModified: obj.lastModified,
		ETag:         obj.etag,
		Metadata:     obj.metadata,
	}, nil
}

// DeleteObject implements ObjectStorage.DeleteObject
func (m *MockObjectStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	if err := validateLocation("DeleteObject", bucket, key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := objectID(bucket, key)
	if _, exists := m.objects[id]; !exists {
		return NewStorageError("DeleteObject", bucket, key, ErrObjectNotFound)
	}

	delete(m.objects, id)
	return nil
}

// Close implements ObjectStorage.Close
func (m *MockObjectStorage) Close() error {
	return nil
}

// PutCount reports how many PutObject calls were made, including failed ones
func (m *MockObjectStorage) PutCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

// ObjectCount returns the number of stored objects
func (m *MockObjectStorage) ObjectCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// Reset clears all objects and counters
func (m *MockObjectStorage) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects = make(map[string]*mockObject)
	m.puts = 0
	m.PutErr = nil
}
