package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// WarehouseService describes the warehouse operations the HTTP layer can perform.
type WarehouseService interface {
	List(ctx context.Context) ([]models.Warehouse, error)
	Create(ctx context.Context, req models.CreateWarehouseRequest) (*models.Warehouse, error)
	Update(ctx context.Context, id string, req models.UpdateWarehouseRequest) (*models.Warehouse, error)
	Delete(ctx context.Context, id string) error
}

// WarehouseHandler serves /api/warehouses.
type WarehouseHandler struct {
	svc    WarehouseService
	logger *zap.Logger
}

// NewWarehouseHandler constructs the HTTP handler adapter.
func NewWarehouseHandler(svc WarehouseService, logger *zap.Logger) *WarehouseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WarehouseHandler{svc: svc, logger: logger}
}

func (h *WarehouseHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Warehouse", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *WarehouseHandler) Create(c *gin.Context) {
	var req models.CreateWarehouseRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	wh, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Warehouse", err)
		return
	}
	c.JSON(http.StatusCreated, wh)
}

func (h *WarehouseHandler) Update(c *gin.Context) {
	var req models.UpdateWarehouseRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	wh, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, "Warehouse", err)
		return
	}
	c.JSON(http.StatusOK, wh)
}

func (h *WarehouseHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "Warehouse", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Warehouse deleted"})
}
