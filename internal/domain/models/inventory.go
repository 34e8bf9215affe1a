package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryRow is the stock held for one SKU at one location.
type InventoryRow struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	SKU       string             `bson:"sku" json:"sku"`
	Location  string             `bson:"location" json:"location"`
	Available int64              `bson:"available" json:"available"`
	Reserved  int64              `bson:"reserved" json:"reserved"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateInventoryRequest seeds a stock row. Missing quantities default to zero.
type CreateInventoryRequest struct {
	SKU       string `json:"sku"`
	Location  string `json:"location"`
	Available *int64 `json:"available"`
	Reserved  *int64 `json:"reserved"`
}

// UpdateInventoryRequest carries a partial update; nil fields are left as is.
type UpdateInventoryRequest struct {
	SKU       *string `json:"sku"`
	Location  *string `json:"location"`
	Available *int64  `json:"available"`
	Reserved  *int64  `json:"reserved"`
}

// IsEmpty reports whether the update touches no field.
func (u UpdateInventoryRequest) IsEmpty() bool {
	return u.SKU == nil && u.Location == nil && u.Available == nil && u.Reserved == nil
}

// InventoryFilter narrows inventory listings by case-insensitive substring.
type InventoryFilter struct {
	SKU      string
	Location string
}
