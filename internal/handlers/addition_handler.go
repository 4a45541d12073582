package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"serverless-functions/internal/models"
	"serverless-functions/internal/services"
	"serverless-functions/pkg/lambda"
)

// AdditionHandler serves the AddTwoNumbers function
type AdditionHandler struct {
	calculatorService services.CalculatorService
	logger            *logrus.Logger
}

// NewAdditionHandler creates a new addition handler
func NewAdditionHandler(calculatorService services.CalculatorService, logger *logrus.Logger) *AdditionHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &AdditionHandler{
		calculatorService: calculatorService,
		logger:            logger,
	}
}

// HandleAddTwoNumbers is the Lambda entry point. Any error is returned to the
// runtime as an invocation failure; there is no structured error response.
func (h *AdditionHandler) HandleAddTwoNumbers(ctx context.Context, event models.AdditionRequest) (models.AdditionResponse, error) {
	result, err := h.calculatorService.Add(ctx, &event)
	if err != nil {
		h.logger.WithFields(lambda.InvocationFields(ctx, models.FunctionAddTwoNumbers)).
			WithError(err).Error("Addition failed")
		return models.AdditionResponse{}, err
	}

	h.logger.WithFields(lambda.InvocationFields(ctx, models.FunctionAddTwoNumbers)).
		WithField("result", result.String()).Info("Numbers added")

	return models.NewAdditionResponse(result), nil
}

// AddTwoNumbers invokes the function from an HTTP request whose body is the event
func (h *AdditionHandler) AddTwoNumbers(c *gin.Context) {
	var event models.AdditionRequest
	if err := c.ShouldBindJSON(&event); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	resp, err := h.HandleAddTwoNumbers(c.Request.Context(), event)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
