package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// ReportingService describes the derived views the HTTP layer exposes.
type ReportingService interface {
	LowStock(ctx context.Context, threshold int64, limit int) ([]models.LowStockAlert, error)
	Stats(ctx context.Context) (models.StatsSnapshot, error)
}

// ReportingHandler serves /api/alerts and /api/stats.
type ReportingHandler struct {
	svc      ReportingService
	defaults config.AlertsConfig
	logger   *zap.Logger
}

// NewReportingHandler constructs the HTTP handler adapter.
func NewReportingHandler(svc ReportingService, defaults config.AlertsConfig, logger *zap.Logger) *ReportingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportingHandler{svc: svc, defaults: defaults, logger: logger}
}

// Alerts returns low-stock alerts. Unparsable threshold or limit fall back to
// the defaults; the limit is clamped by the aggregation engine.
func (h *ReportingHandler) Alerts(c *gin.Context) {
	alertType := c.DefaultQuery("type", models.AlertTypeLowStock)
	if alertType != models.AlertTypeLowStock {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported alert type"})
		return
	}

	threshold := h.defaults.DefaultThreshold
	if raw := c.Query("threshold"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			threshold = v
		}
	}
	limit := h.defaults.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	alerts, err := h.svc.LowStock(c.Request.Context(), threshold, limit)
	if err != nil {
		respondError(c, h.logger, "Alert", err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// Stats returns the dashboard rollup.
func (h *ReportingHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
