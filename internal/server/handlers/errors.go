package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// respondError maps service errors onto HTTP responses. entity names the
// resource in 404 and duplicate messages, e.g. "SKU" or "Warehouse".
func respondError(c *gin.Context, logger *zap.Logger, entity string, err error) {
	var validation *models.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"message": validation.Message})
	case errors.Is(err, models.ErrDuplicateCode):
		c.JSON(http.StatusBadRequest, gin.H{"message": entity + " code already exists"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": entity + " not found"})
	case errors.Is(err, models.ErrAllocationRace):
		logger.Warn("code allocation exhausted retries", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Could not allocate a code, please retry"})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

func bindJSON(c *gin.Context, logger *zap.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return false
	}
	return true
}
