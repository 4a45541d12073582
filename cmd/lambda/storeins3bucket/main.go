package main

import (
	"context"
	"encoding/json"

	"serverless-functions/internal/handlers"
	"serverless-functions/internal/models"
	"serverless-functions/pkg/lambda"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

// The storage client is built on the first invocation and reused by every
// later invocation in the same execution environment.
func handler(ctx context.Context, event json.RawMessage) (models.StorageResponse, error) {
	container, err := lambda.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		return models.NewStorageErrorResponse(err), nil
	}

	storageHandler := handlers.NewStorageHandler(container.DocumentService, container.Logger)
	return storageHandler.HandleStoreInS3BucketEvent(ctx, event)
}

func main() {
	awslambda.Start(handler)
}
