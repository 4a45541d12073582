package handlers

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"serverless-functions/internal/models"
	"serverless-functions/internal/services"
	"serverless-functions/pkg/lambda"
)

// StorageHandler serves the StoreInS3Bucket function
type StorageHandler struct {
	documentService services.DocumentService
	logger          *logrus.Logger
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(documentService services.DocumentService, logger *logrus.Logger) *StorageHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &StorageHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// HandleStoreInS3Bucket is the Lambda entry point. Every outcome is reported
// through the response's statusCode; the returned error is always nil.
func (h *StorageHandler) HandleStoreInS3Bucket(ctx context.Context, event models.StorageRequest) (models.StorageResponse, error) {
	fields := lambda.InvocationFields(ctx, models.FunctionStoreInS3Bucket)

	result, err := h.documentService.Upload(ctx, &event)

	var resp models.StorageResponse
	switch {
	case err == nil:
		resp = models.NewStorageSuccessResponse(result)
	case isValidationError(err):
		resp = models.NewStorageValidationResponse()
	case isUploadError(err):
		resp = models.NewStorageErrorResponse(err)
	default:
		h.logger.WithFields(fields).WithError(err).Warn("Unclassified upload failure")
		resp = models.NewStorageErrorResponse(err)
	}

	h.logger.WithFields(fields).WithFields(logrus.Fields{
		"bucket":      event.Bucket,
		"key":         event.Key,
		"status_code": resp.StatusCode,
	}).Info("Store request completed")

	return resp, nil
}

// HandleStoreInS3BucketEvent is the Lambda entry point for raw events. Field
// type problems are reported as responses; only an event that is not a JSON
// object fails the invocation.
func (h *StorageHandler) HandleStoreInS3BucketEvent(ctx context.Context, raw json.RawMessage) (models.StorageResponse, error) {
	event, err := models.ParseStorageEvent(raw)
	switch {
	case err == nil:
		return h.HandleStoreInS3Bucket(ctx, event)
	case isValidationError(err):
		h.logger.WithFields(lambda.InvocationFields(ctx, models.FunctionStoreInS3Bucket)).
			WithError(err).Warn("Rejected event with missing parameters")
		return models.NewStorageValidationResponse(), nil
	case isUploadError(err):
		h.logger.WithFields(lambda.InvocationFields(ctx, models.FunctionStoreInS3Bucket)).
			WithError(err).Warn("Rejected event with invalid parameter types")
		return models.NewStorageErrorResponse(err), nil
	default:
		h.logger.WithFields(lambda.InvocationFields(ctx, models.FunctionStoreInS3Bucket)).
			WithError(err).Error("Malformed event")
		return models.StorageResponse{}, err
	}
}

// StoreInS3Bucket invokes the function from an HTTP request whose body is the event
func (h *StorageHandler) StoreInS3Bucket(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	resp, err := h.HandleStoreInS3BucketEvent(c.Request.Context(), body)
	if err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	c.JSON(resp.StatusCode, resp)
}
