package services

import (
	"strconv"

	"serverless-functions/internal/models"
)

func jsonInt(n int64) models.Operand {
	return models.Operand(strconv.FormatInt(n, 10))
}
