package models

// AlertTypeLowStock is the only alert type currently computed.
const AlertTypeLowStock = "low-stock"

// CodeTotal is the summed available quantity of one SKU across all locations.
type CodeTotal struct {
	Code           string `bson:"_id" json:"code"`
	TotalAvailable int64  `bson:"totalAvailable" json:"totalAvailable"`
}

// LowStockAlert flags a SKU whose total available stock is at or below a threshold.
// Name is nil when the code no longer resolves to a catalog entry.
type LowStockAlert struct {
	Code           string  `json:"code"`
	Name           *string `json:"name"`
	TotalAvailable int64   `json:"totalAvailable"`
}
