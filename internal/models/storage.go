package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"serverless-functions/internal/adapters/storage"
)

// Fixed StoreInS3Bucket response texts
const (
	MissingParametersMessage = "Missing required parameters: bucket, key, or file_content."
	UploadSuccessMessage     = "File uploaded successfully."
	UploadErrorPrefix        = "Error uploading file: "

	// UploadContentType is sent with every upload regardless of the actual file type
	UploadContentType = "application/pdf"
)

// StorageRequest is the StoreInS3Bucket event
type StorageRequest struct {
	Bucket      string `json:"bucket" validate:"required"`
	Key         string `json:"key" validate:"required"`
	FileContent string `json:"file_content" validate:"required"` // base64
}

// StorageResponse is returned by StoreInS3Bucket
type StorageResponse struct {
	StatusCode int                      `json:"statusCode"`
	Body       string                   `json:"body"`
	S3Response *storage.PutObjectResult `json:"s3_response,omitempty"`
}

// NewStorageSuccessResponse builds the 200 response with provider metadata
func NewStorageSuccessResponse(result *storage.PutObjectResult) StorageResponse {
	return StorageResponse{
		StatusCode: StatusOK,
		Body:       UploadSuccessMessage,
		S3Response: result,
	}
}

// NewStorageValidationResponse builds the 400 response for missing parameters
func NewStorageValidationResponse() StorageResponse {
	return StorageResponse{
		StatusCode: StatusBadRequest,
		Body:       MissingParametersMessage,
	}
}

// NewStorageErrorResponse builds the 500 response carrying the error text
func NewStorageErrorResponse(err error) StorageResponse {
	return StorageResponse{
		StatusCode: StatusInternalServerError,
		Body:       UploadErrorPrefix + err.Error(),
	}
}

// storageEventFields are the required StoreInS3Bucket keys in validation order
var storageEventFields = []string{"bucket", "key", "file_content"}

// ParseStorageEvent decodes a raw StoreInS3Bucket event. A field that is
// absent or holds an empty value (null, "", 0, false, [] or {}) yields a
// *ValidationError. A non-empty field that is not a string yields an
// *UploadError, since the upload cannot be attempted with it. An event that
// is not a JSON object is returned as a plain decode error.
func ParseStorageEvent(raw []byte) (StorageRequest, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return StorageRequest{}, fmt.Errorf("invalid StoreInS3Bucket event: %w", err)
	}

	var missing []string
	for _, name := range storageEventFields {
		if isEmptyJSON(fields[name]) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return StorageRequest{}, &ValidationError{
			Field:   strings.Join(missing, ","),
			Message: MissingParametersMessage,
		}
	}

	values := make(map[string]string, len(storageEventFields))
	for _, name := range storageEventFields {
		var s string
		if err := json.Unmarshal(fields[name], &s); err != nil {
			return StorageRequest{}, &UploadError{
				Stage: "decode",
				Err: fmt.Errorf("invalid type for parameter %s, value: %s, valid types: string",
					name, bytes.TrimSpace(fields[name])),
			}
		}
		values[name] = s
	}

	return StorageRequest{
		Bucket:      values["bucket"],
		Key:         values["key"],
		FileContent: values["file_content"],
	}, nil
}

// isEmptyJSON reports whether a JSON value is absent or empty
func isEmptyJSON(value json.RawMessage) bool {
	v := bytes.TrimSpace(value)
	if len(v) == 0 {
		return true
	}

	switch v[0] {
	case 'n', 'f':
		return true // null, false
	case 't':
		return false
	case '"':
		var s string
		return json.Unmarshal(v, &s) == nil && s == ""
	case '[':
		var items []json.RawMessage
		return json.Unmarshal(v, &items) == nil && len(items) == 0
	case '{':
		var obj map[string]json.RawMessage
		return json.Unmarshal(v, &obj) == nil && len(obj) == 0
	default:
		f, err := json.Number(v).Float64()
		return err == nil && f == 0
	}
}
