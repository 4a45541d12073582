package services

import (
	"context"
	"encoding/base64"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"serverless-functions/internal/adapters/storage"
	"serverless-functions/internal/models"
)

// documentService implements the DocumentService interface
type documentService struct {
	storage   storage.ObjectStorage
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewDocumentService creates a new document service instance.
// The storage client is shared across calls and must be safe for concurrent use.
func NewDocumentService(objectStorage storage.ObjectStorage, logger *logrus.Logger) DocumentService {
	if logger == nil {
		logger = logrus.New()
	}

	v := validator.New()
	// Report JSON field names so errors match the event keys
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &documentService{
		storage:   objectStorage,
		validator: v,
		logger:    logger,
	}
}

// Upload stores the decoded file content at bucket/key
func (s *documentService) Upload(ctx context.Context, req *models.StorageRequest) (*storage.PutObjectResult, error) {
	if req == nil {
		req = &models.StorageRequest{}
	}

	if err := s.validate(req); err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"bucket": req.Bucket,
		"key":    req.Key,
	}

	data, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Warn("Failed to decode file content")
		return nil, &models.UploadError{Stage: "decode", Bucket: req.Bucket, Key: req.Key, Err: err}
	}

	fields["size_bytes"] = len(data)

	result, err := s.storage.PutObject(ctx, req.Bucket, req.Key, data, &storage.PutOptions{
		ContentType: models.UploadContentType,
	})
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Error("Failed to upload file")
		return nil, &models.UploadError{Stage: "store", Bucket: req.Bucket, Key: req.Key, Err: err}
	}

	s.logger.WithFields(fields).WithField("etag", result.ETag).Info("File uploaded")
	return result, nil
}

// validate checks that bucket, key and file_content are all present
func (s *documentService) validate(req *models.StorageRequest) error {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &models.ValidationError{Message: models.MissingParametersMessage}
	}

	missing := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		missing = append(missing, fe.Field())
	}

	s.logger.WithField("missing", missing).Warn("Rejected upload with missing parameters")

	return &models.ValidationError{
		Field:   strings.Join(missing, ","),
		Message: models.MissingParametersMessage,
	}
}
