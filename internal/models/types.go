package models

import "time"

// Status codes carried in handler responses
const (
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusInternalServerError = 500
)

// Function names as deployed
const (
	FunctionAddTwoNumbers   = "AddTwoNumbers"
	FunctionStoreInS3Bucket = "StoreInS3Bucket"
)

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}

// UploadError wraps any failure while decoding or writing an uploaded file
type UploadError struct {
	Stage  string `json:"stage"` // "decode" or "store"
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Err    error  `json:"-"`
}

// Error implements the error interface
func (ue *UploadError) Error() string {
	return ue.Err.Error()
}

func (ue *UploadError) Unwrap() error {
	return ue.Err
}

// HealthCheck represents system health status
type HealthCheck struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}
