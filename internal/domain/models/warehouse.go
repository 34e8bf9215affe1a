package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WarehouseType classifies where stock physically lives.
type WarehouseType string

const (
	WarehouseTypeOwn         WarehouseType = "Own"
	WarehouseTypeThirdParty  WarehouseType = "3PL"
	WarehouseTypeMarketplace WarehouseType = "Marketplace"
	WarehouseTypeStore       WarehouseType = "Store"
)

// WarehousePrefix heads every auto-assigned warehouse code.
const WarehousePrefix = "WH-"

// Warehouse is a stock location. Code is unique across auto-assigned and
// caller-supplied values.
type Warehouse struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Code      string             `bson:"code" json:"code"`
	Name      string             `bson:"name" json:"name"`
	Type      WarehouseType      `bson:"type" json:"type"`
	City      string             `bson:"city,omitempty" json:"city,omitempty"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ParseWarehouseType matches a type case-insensitively. Empty input yields Own.
func ParseWarehouseType(value string) (WarehouseType, bool) {
	switch normalize(value) {
	case "", "own":
		return WarehouseTypeOwn, true
	case "3pl", "thirdparty":
		return WarehouseTypeThirdParty, true
	case "marketplace":
		return WarehouseTypeMarketplace, true
	case "store":
		return WarehouseTypeStore, true
	default:
		return "", false
	}
}

// CreateWarehouseRequest is the payload accepted when creating a warehouse.
type CreateWarehouseRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	City     string `json:"city"`
	IsActive *bool  `json:"isActive"`
}

// UpdateWarehouseRequest replaces the attributes of a warehouse. Name and code
// are required; an empty type and nil city or flag keep the stored value.
type UpdateWarehouseRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	City     *string `json:"city"`
	IsActive *bool   `json:"isActive"`
}
