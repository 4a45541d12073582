package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"serverless-functions/internal/models"
	"serverless-functions/pkg/server"
)

// SetupRoutes exposes both functions over HTTP for local development
func SetupRoutes(router *gin.Engine, container *server.Container) {
	additionHandler := NewAdditionHandler(container.CalculatorService, container.Logger)
	storageHandler := NewStorageHandler(container.DocumentService, container.Logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthCheck{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Version:   "1.0.0",
			Services: map[string]string{
				"storage": container.Config.Storage.Type,
			},
		})
	})

	functions := router.Group("/functions")
	{
		functions.POST("/add-two-numbers", additionHandler.AddTwoNumbers)
		functions.POST("/store-in-s3-bucket", storageHandler.StoreInS3Bucket)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})
}
