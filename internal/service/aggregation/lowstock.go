// Package aggregation derives dashboard views from raw inventory rows.
// Everything here is a pure function of its inputs.
package aggregation

import (
	"sort"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

const (
	// MinLimit and MaxLimit bound how many low-stock alerts are returned.
	MinLimit = 1
	MaxLimit = 100
)

// NameLookup resolves a SKU code to its display name.
type NameLookup func(code string) (string, bool)

// MapLookup adapts a code to name map.
func MapLookup(names map[string]string) NameLookup {
	return func(code string) (string, bool) {
		name, ok := names[code]
		return name, ok
	}
}

// ClampLimit forces limit into [MinLimit, MaxLimit].
func ClampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// SumAvailableByCode folds rows into one total per SKU code, ordered by code.
func SumAvailableByCode(rows []models.InventoryRow) []models.CodeTotal {
	sums := make(map[string]int64)
	for _, row := range rows {
		sums[row.SKU] += row.Available
	}

	totals := make([]models.CodeTotal, 0, len(sums))
	for code, total := range sums {
		totals = append(totals, models.CodeTotal{Code: code, TotalAvailable: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Code < totals[j].Code })
	return totals
}

// SelectLowStock keeps totals at or below threshold, sorted ascending by total
// with ties broken by code, truncated to the clamped limit. Codes the lookup
// cannot resolve keep a nil name.
func SelectLowStock(totals []models.CodeTotal, threshold int64, limit int, lookup NameLookup) []models.LowStockAlert {
	low := make([]models.CodeTotal, 0, len(totals))
	for _, t := range totals {
		if t.TotalAvailable <= threshold {
			low = append(low, t)
		}
	}

	sort.Slice(low, func(i, j int) bool {
		if low[i].TotalAvailable != low[j].TotalAvailable {
			return low[i].TotalAvailable < low[j].TotalAvailable
		}
		return low[i].Code < low[j].Code
	})

	if n := ClampLimit(limit); len(low) > n {
		low = low[:n]
	}

	alerts := make([]models.LowStockAlert, 0, len(low))
	for _, t := range low {
		alerts = append(alerts, models.LowStockAlert{Code: t.Code, TotalAvailable: t.TotalAvailable})
	}
	AttachNames(alerts, lookup)
	return alerts
}

// AttachNames resolves the display name of every alert in place.
func AttachNames(alerts []models.LowStockAlert, lookup NameLookup) {
	if lookup == nil {
		return
	}
	for i := range alerts {
		if name, ok := lookup(alerts[i].Code); ok {
			alerts[i].Name = &name
		}
	}
}

// ComputeLowStock groups rows per code and selects the low-stock subset.
func ComputeLowStock(rows []models.InventoryRow, threshold int64, limit int, lookup NameLookup) []models.LowStockAlert {
	return SelectLowStock(SumAvailableByCode(rows), threshold, limit, lookup)
}

// AlertCodes lists the codes of the given alerts, preserving order.
func AlertCodes(alerts []models.LowStockAlert) []string {
	out := make([]string, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Code)
	}
	return out
}
