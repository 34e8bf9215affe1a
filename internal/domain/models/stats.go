package models

import "time"

// StatsSnapshot holds the dashboard rollups.
type StatsSnapshot struct {
	SKUs                 int   `bson:"skus" json:"skus"`
	ActiveSKUs           int   `bson:"activeSkus" json:"activeSkus"`
	Warehouses           int   `bson:"warehouses" json:"warehouses"`
	OwnWarehouses        int   `bson:"ownWarehouses" json:"ownWarehouses"`
	EcommerceWarehouses  int   `bson:"ecommerceWarehouses" json:"ecommerceWarehouses"`
	ThirdPartyWarehouses int   `bson:"thirdPartyWarehouses" json:"thirdPartyWarehouses"`
	InventoryRows        int   `bson:"inventoryRows" json:"inventoryRows"`
	TotalAvailable       int64 `bson:"totalAvailable" json:"totalAvailable"`
}

// StatsRecord is a snapshot persisted by the scheduler for history.
type StatsRecord struct {
	StatsSnapshot `bson:",inline"`
	TakenAt       time.Time `bson:"takenAt" json:"takenAt"`
}

// RetiredCode remembers a code that was in use once so it is never handed out again.
type RetiredCode struct {
	Prefix    string    `bson:"prefix" json:"prefix"`
	Code      string    `bson:"code" json:"code"`
	RetiredAt time.Time `bson:"retiredAt" json:"retiredAt"`
}
