package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"serverless-functions/internal/models"
)

// calculatorService implements the CalculatorService interface
type calculatorService struct {
	logger *logrus.Logger
}

// NewCalculatorService creates a new calculator service instance
func NewCalculatorService(logger *logrus.Logger) CalculatorService {
	if logger == nil {
		logger = logrus.New()
	}
	return &calculatorService{logger: logger}
}

// Add sums the two numbers of the request
func (s *calculatorService) Add(ctx context.Context, req *models.AdditionRequest) (json.Number, error) {
	if req == nil {
		req = &models.AdditionRequest{}
	}

	result, err := req.Sum()
	if err != nil {
		return "", fmt.Errorf("failed to add numbers: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"number1": req.Number1.String(),
		"number2": req.Number2.String(),
		"result":  result.String(),
	}).Debug("Numbers added")

	return result, nil
}
