package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"serverless-functions/internal/adapters/storage"
	"serverless-functions/internal/config"
	"serverless-functions/internal/logging"
	"serverless-functions/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *logrus.Logger
	Storage           storage.ObjectStorage
	CalculatorService services.CalculatorService
	DocumentService   services.DocumentService
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	logger := logging.New(cfg.Log)

	objectStorage, err := storage.CreateFromConfig(ctx, cfg.ObjectStorageConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage: %w", err)
	}

	return NewContainerWithStorage(cfg, logger, objectStorage)
}

// NewContainerWithStorage wires the services around an existing storage client
func NewContainerWithStorage(cfg *config.Config, logger *logrus.Logger, objectStorage storage.ObjectStorage) (*Container, error) {
	serviceContainer, err := services.NewServiceContainer(objectStorage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"storage_type": cfg.Storage.Type,
		"environment":  cfg.Environment,
	}).Debug("Container initialized")

	return &Container{
		Config:            cfg,
		Logger:            logger,
		Storage:           objectStorage,
		CalculatorService: serviceContainer.CalculatorService,
		DocumentService:   serviceContainer.DocumentService,
	}, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.Storage != nil {
		return c.Storage.Close()
	}
	return nil
}
