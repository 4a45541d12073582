package handlers

import (
	"errors"

	"serverless-functions/internal/models"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// isValidationError checks if an error is a validation error
func isValidationError(err error) bool {
	var validationErr *models.ValidationError
	return errors.As(err, &validationErr)
}

// isUploadError checks if an error happened while decoding or storing a file
func isUploadError(err error) bool {
	var uploadErr *models.UploadError
	return errors.As(err, &uploadErr)
}
