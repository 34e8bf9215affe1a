package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// InventoryService describes the stock row operations the HTTP layer can perform.
type InventoryService interface {
	List(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryRow, error)
	Create(ctx context.Context, req models.CreateInventoryRequest) (*models.InventoryRow, error)
	Update(ctx context.Context, id string, req models.UpdateInventoryRequest) (*models.InventoryRow, error)
	Delete(ctx context.Context, id string) error
}

// InventoryHandler serves /api/inventory.
type InventoryHandler struct {
	svc    InventoryService
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(svc InventoryService, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

// List filters by sku and location substrings.
func (h *InventoryHandler) List(c *gin.Context) {
	filter := models.InventoryFilter{SKU: c.Query("sku"), Location: c.Query("location")}
	rows, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "Inventory row", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req models.CreateInventoryRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	row, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Inventory row", err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var req models.UpdateInventoryRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	row, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, "Inventory row", err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "Inventory row", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
