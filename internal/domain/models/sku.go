package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SKUStatus enumerates the lifecycle states of a catalog entry.
type SKUStatus string

const (
	SKUStatusActive SKUStatus = "Active"
	SKUStatusDraft  SKUStatus = "Draft"
)

// SKUPrefix heads every auto-assigned catalog code.
const SKUPrefix = "SKU-"

// SKU is a catalog entry. The code is immutable once assigned.
type SKU struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Code      string             `bson:"sku" json:"sku"`
	Name      string             `bson:"name" json:"name"`
	Category  string             `bson:"category" json:"category"`
	Status    SKUStatus          `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ParseSKUStatus matches a status case-insensitively. Empty input yields Active.
func ParseSKUStatus(value string) (SKUStatus, bool) {
	switch normalize(value) {
	case "":
		return SKUStatusActive, true
	case "active":
		return SKUStatusActive, true
	case "draft":
		return SKUStatusDraft, true
	default:
		return "", false
	}
}

// CreateSKURequest is the payload accepted when creating a catalog entry.
// Code is optional; when empty the next SKU-### code is assigned.
type CreateSKURequest struct {
	Code     string `json:"sku"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// UpdateSKURequest replaces the mutable attributes of a catalog entry.
type UpdateSKURequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// SKUFilter narrows catalog listings.
type SKUFilter struct {
	Query    string
	Category string
	Status   string
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
