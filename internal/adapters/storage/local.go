package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// LocalObjectStorage implements ObjectStorage on the local filesystem.
// Buckets are directories under basePath.
type LocalObjectStorage struct {
	basePath string
}

// localSidecar is persisted next to each object
type localSidecar struct {
	ContentType string            `json:"content_type"`
	ETag        string            `json:"etag"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewLocalObjectStorage creates a new LocalObjectStorage instance
func NewLocalObjectStorage(basePath string) (*LocalObjectStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, NewStorageError("NewLocalObjectStorage", "", "", err)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, NewStorageError("NewLocalObjectStorage", "", "", err)
	}

	return &LocalObjectStorage{basePath: absPath}, nil
}

// PutObject implements ObjectStorage.PutObject
func (l *LocalObjectStorage) PutObject(ctx context.Context, bucket, key string, data []byte, opts *PutOptions) (*PutObjectResult, error) {
	if err := l.validate("PutObject", bucket, key); err != nil {
		return nil, err
	}

	filePath := l.objectPath(bucket, key)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, NewStorageError("PutObject", bucket, key, err)
	}

	// Write to a temp file first so readers never see a partial object
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return nil, NewStorageError("PutObject", bucket, key, err)
	}
	if err := os.Rename(tempPath, filePath); err != nil {
		os.Remove(tempPath)
		return nil, NewStorageError("PutObject", bucket, key, err)
	}

	sum := md5.Sum(data)
	sidecar := localSidecar{
		ContentType: contentTypeOrDefault(opts),
		ETag:        `"` + hex.EncodeToString(sum[:]) + `"`,
	}
	if opts != nil {
		sidecar.Metadata = opts.Metadata
	}
	if err := l.writeSidecar(bucket, key, &sidecar); err != nil {
		return nil, NewStorageError("PutObject", bucket, key, err)
	}

	return &PutObjectResult{
		Bucket:   bucket,
		Key:      key,
		ETag:     sidecar.ETag,
		Size:     int64(len(data)),
		Location: "file://" + filepath.ToSlash(filePath),
		ResponseMetadata: ResponseMetadata{
			HTTPStatusCode: 200,
		},
	}, nil
}

// GetObject implements ObjectStorage.GetObject
func (l *LocalObjectStorage) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := l.validate("GetObject", bucket, key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.objectPath(bucket, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStorageError("GetObject", bucket, key, ErrObjectNotFound)
		}
		return nil, NewStorageError("GetObject", bucket, key, err)
	}

	return data, nil
}

// HeadObject implements ObjectStorage.HeadObject
func (l *LocalObjectStorage) HeadObject(ctx context.Context, bucket, key string) (*ObjectInfo, error) {
	if err := l.validate("HeadObject", bucket, key); err != nil {
		return nil, err
	}

	stat, err := os.Stat(l.objectPath(bucket, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStorageError("HeadObject", bucket, key, ErrObjectNotFound)
		}
		return nil, NewStorageError("HeadObject", bucket, key, err)
	}

	info := &ObjectInfo{
		Bucket:       bucket,
		Key:          key,
		Size:         stat.Size(),
		ContentType:  defaultContentType,
		LastModified: stat.ModTime(),
	}

	// A missing sidecar only loses the recorded content type
	if sidecar, err := l.readSidecar(bucket, key); err == nil {
		info.ContentType = sidecar.ContentType
		info.ETag = sidecar.ETag
		info.Metadata = sidecar.Metadata
	}

	return info, nil
}

// DeleteObject implements ObjectStorage.DeleteObject
func (l *LocalObjectStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	if err := l.validate("DeleteObject", bucket, key); err != nil {
		return err
	}

	if err := os.Remove(l.objectPath(bucket, key)); err != nil {
		if os.IsNotExist(err) {
			return NewStorageError("DeleteObject", bucket, key, ErrObjectNotFound)
		}
		return NewStorageError("DeleteObject", bucket, key, err)
	}

	os.Remove(l.sidecarPath(bucket, key))
	return nil
}

// Close implements ObjectStorage.Close
func (l *LocalObjectStorage) Close() error {
	return nil
}

func (l *LocalObjectStorage) validate(op, bucket, key string) error {
	if err := validateLocation(op, bucket, key); err != nil {
		return err
	}

	// Prevent directory traversal
	if strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return NewStorageError(op, bucket, key, ErrInvalidBucket)
	}
	if strings.HasPrefix(key, "/") || hasParentSegment(key) {
		return NewStorageError(op, bucket, key, ErrInvalidKey)
	}

	return nil
}

// hasParentSegment reports whether any path segment of key is ".."
func hasParentSegment(key string) bool {
	segments := strings.FieldsFunc(key, func(r rune) bool { return r == '/' || r == '\\' })
	for _, segment := range segments {
		if segment == ".." {
			return true
		}
	}
	return false
}

func (l *LocalObjectStorage) objectPath(bucket, key string) string {
	return filepath.Join(l.basePath, bucket, filepath.FromSlash(key))
}

func (l *LocalObjectStorage) sidecarPath(bucket, key string) string {
	return l.objectPath(bucket, key) + ".metadata.json"
}

func (l *LocalObjectStorage) writeSidecar(bucket, key string, sidecar *localSidecar) error {
	data, err := json.Marshal(sidecar)
	if err != nil {
		return err
	}
	return os.WriteFile(l.sidecarPath(bucket, key), data, 0644)
}

func (l *LocalObjectStorage) readSidecar(bucket, key string) (*localSidecar, error) {
	data, err := os.ReadFile(l.sidecarPath(bucket, key))
	if err != nil {
		return nil, err
	}

	var sidecar localSidecar
	if err := json.Unmarshal(data, &sidecar); err != nil {
		return nil, err
	}
	return &sidecar, nil
}
