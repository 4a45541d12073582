package main

import (
	"serverless-functions/internal/config"
	"serverless-functions/internal/handlers"
	"serverless-functions/internal/logging"
	"serverless-functions/internal/services"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

var additionHandler *handlers.AdditionHandler

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger := logging.New(cfg.Log)
	additionHandler = handlers.NewAdditionHandler(services.NewCalculatorService(logger), logger)
}

func main() {
	awslambda.Start(additionHandler.HandleAddTwoNumbers)
}
