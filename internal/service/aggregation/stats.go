package aggregation

import (
	"strings"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// ComputeStats builds the dashboard rollup. Warehouse types are grouped
// case-insensitively; marketplace and store count together as e-commerce.
func ComputeStats(skus []models.SKU, warehouses []models.Warehouse, rows []models.InventoryRow) models.StatsSnapshot {
	snapshot := models.StatsSnapshot{
		SKUs:          len(skus),
		Warehouses:    len(warehouses),
		InventoryRows: len(rows),
	}

	for _, sku := range skus {
		if sku.Status == models.SKUStatusActive {
			snapshot.ActiveSKUs++
		}
	}

	byType := make(map[string]int)
	for _, wh := range warehouses {
		byType[strings.ToLower(string(wh.Type))]++
	}
	snapshot.OwnWarehouses = byType["own"]
	snapshot.EcommerceWarehouses = byType["marketplace"] + byType["store"]
	snapshot.ThirdPartyWarehouses = byType["3pl"]

	for _, row := range rows {
		snapshot.TotalAvailable += row.Available
	}

	return snapshot
}
