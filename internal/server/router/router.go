package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted under /api.
type Handlers struct {
	SKUs       *handlers.SKUHandler
	Warehouses *handlers.WarehouseHandler
	Inventory  *handlers.InventoryHandler
	Reporting  *handlers.ReportingHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, frontendURL string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(corsMiddleware(frontendURL))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Inventory API running")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	skus := api.Group("/skus")
	skus.GET("", h.SKUs.List)
	skus.POST("", h.SKUs.Create)
	skus.PUT("/:id", h.SKUs.Update)
	skus.DELETE("/:id", h.SKUs.Delete)

	warehouses := api.Group("/warehouses")
	warehouses.GET("", h.Warehouses.List)
	warehouses.POST("", h.Warehouses.Create)
	warehouses.PUT("/:id", h.Warehouses.Update)
	warehouses.DELETE("/:id", h.Warehouses.Delete)

	inventory := api.Group("/inventory")
	inventory.GET("", h.Inventory.List)
	inventory.POST("", h.Inventory.Create)
	inventory.PUT("/:id", h.Inventory.Update)
	inventory.DELETE("/:id", h.Inventory.Delete)

	api.GET("/alerts", h.Reporting.Alerts)
	api.GET("/stats", h.Reporting.Stats)

	logger.Info("router initialized")

	return r
}
