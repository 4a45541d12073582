package services

import (
	"context"
	"encoding/json"

	"serverless-functions/internal/adapters/storage"
	"serverless-functions/internal/models"
)

// CalculatorService defines the AddTwoNumbers business logic
type CalculatorService interface {
	// Add returns number1 + number2, treating missing numbers as zero
	Add(ctx context.Context, req *models.AdditionRequest) (json.Number, error)
}

// DocumentService defines the StoreInS3Bucket business logic
type DocumentService interface {
	// Upload validates the request, decodes the base64 content and writes it
	// to the requested bucket/key. It returns *models.ValidationError when a
	// required parameter is missing and *models.UploadError for any failure
	// after validation.
	Upload(ctx context.Context, req *models.StorageRequest) (*storage.PutObjectResult, error)
}
