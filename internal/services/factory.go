package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"serverless-functions/internal/adapters/storage"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	CalculatorService CalculatorService
	DocumentService   DocumentService
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(objectStorage storage.ObjectStorage, logger *logrus.Logger) (*ServiceContainer, error) {
	if objectStorage == nil {
		return nil, fmt.Errorf("object storage cannot be nil")
	}

	return &ServiceContainer{
		CalculatorService: NewCalculatorService(logger),
		DocumentService:   NewDocumentService(objectStorage, logger),
	}, nil
}
