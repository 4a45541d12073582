package storage

import (
	"context"
	"fmt"
	"strings"
)

// StorageType represents the type of storage implementation
type StorageType string

const (
	StorageTypeS3    StorageType = "s3"
	StorageTypeMinio StorageType = "minio"
	StorageTypeLocal StorageType = "local"
	StorageTypeMock  StorageType = "mock"
)

// Factory creates ObjectStorage instances based on configuration
type Factory struct{}

// NewFactory creates a new storage factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create creates an ObjectStorage instance based on the provided configuration
func (f *Factory) Create(ctx context.Context, config *StorageConfig) (ObjectStorage, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}

	var storage ObjectStorage
	var err error

	switch StorageType(strings.ToLower(config.Type)) {
	case StorageTypeS3:
		storage, err = NewS3ObjectStorage(ctx, config)
	case StorageTypeMinio:
		storage, err = NewMinioObjectStorage(config)
	case StorageTypeLocal:
		storage, err = f.createLocalStorage(config)
	case StorageTypeMock:
		storage = NewMockObjectStorage()
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s storage: %w", config.Type, err)
	}

	return storage, nil
}

func (f *Factory) createLocalStorage(config *StorageConfig) (ObjectStorage, error) {
	basePath := config.BasePath
	if basePath == "" {
		basePath = "./data/buckets"
	}
	return NewLocalObjectStorage(basePath)
}

// CreateFromConfig is a convenience function to create storage from config
func CreateFromConfig(ctx context.Context, config *StorageConfig) (ObjectStorage, error) {
	return NewFactory().Create(ctx, config)
}
