package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// CatalogService describes the catalog operations the HTTP layer can perform.
type CatalogService interface {
	List(ctx context.Context, filter models.SKUFilter) ([]models.SKU, error)
	Create(ctx context.Context, req models.CreateSKURequest) (*models.SKU, error)
	Update(ctx context.Context, id string, req models.UpdateSKURequest) (*models.SKU, error)
	Delete(ctx context.Context, id string) error
}

// SKUHandler serves /api/skus.
type SKUHandler struct {
	svc    CatalogService
	logger *zap.Logger
}

// NewSKUHandler constructs the HTTP handler adapter.
func NewSKUHandler(svc CatalogService, logger *zap.Logger) *SKUHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SKUHandler{svc: svc, logger: logger}
}

// List supports q (code or name substring), category and status filters.
func (h *SKUHandler) List(c *gin.Context) {
	filter := models.SKUFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}

	skus, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "SKU", err)
		return
	}
	c.JSON(http.StatusOK, skus)
}

// Create stores a SKU, auto-assigning its code unless one is supplied.
func (h *SKUHandler) Create(c *gin.Context) {
	var req models.CreateSKURequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	sku, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "SKU", err)
		return
	}
	c.JSON(http.StatusCreated, sku)
}

// Update replaces name, category and status.
func (h *SKUHandler) Update(c *gin.Context) {
	var req models.UpdateSKURequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	sku, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, "SKU", err)
		return
	}
	c.JSON(http.StatusOK, sku)
}

// Delete removes a SKU.
func (h *SKUHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "SKU", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
