package repository

import (
	"context"
	"errors"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

var (
	// ErrDuplicateKey is returned by inserts and updates that violate a unique code index.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("record not found")
)

// SKURepository persists catalog entries.
type SKURepository interface {
	List(ctx context.Context, filter models.SKUFilter) ([]models.SKU, error)
	FindByCode(ctx context.Context, code string) (*models.SKU, error)
	FindByID(ctx context.Context, id string) (*models.SKU, error)
	// ListCodes returns every stored code of the form prefix + digits.
	ListCodes(ctx context.Context, prefix string) ([]string, error)
	// NamesByCode resolves display names for the given codes; unknown codes are absent.
	NamesByCode(ctx context.Context, codes []string) (map[string]string, error)
	Insert(ctx context.Context, sku *models.SKU) error
	Update(ctx context.Context, id string, req models.UpdateSKURequest) (*models.SKU, error)
	Delete(ctx context.Context, id string) (*models.SKU, error)
}

// WarehouseRepository persists warehouses.
type WarehouseRepository interface {
	List(ctx context.Context) ([]models.Warehouse, error)
	FindByCode(ctx context.Context, code string) (*models.Warehouse, error)
	FindByID(ctx context.Context, id string) (*models.Warehouse, error)
	ListCodes(ctx context.Context, prefix string) ([]string, error)
	Insert(ctx context.Context, warehouse *models.Warehouse) error
	// Replace overwrites the mutable fields of the warehouse with the given id.
	Replace(ctx context.Context, id string, warehouse models.Warehouse) (*models.Warehouse, error)
	Delete(ctx context.Context, id string) (*models.Warehouse, error)
}

// InventoryRepository persists stock rows.
type InventoryRepository interface {
	List(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryRow, error)
	Insert(ctx context.Context, row *models.InventoryRow) error
	Update(ctx context.Context, id string, req models.UpdateInventoryRequest) (*models.InventoryRow, error)
	Delete(ctx context.Context, id string) (*models.InventoryRow, error)
	// TotalsByCode sums available units per SKU code, treating missing values as zero.
	TotalsByCode(ctx context.Context) ([]models.CodeTotal, error)
}

// RetiredCodeRepository remembers codes of deleted or renamed records.
type RetiredCodeRepository interface {
	Retire(ctx context.Context, prefix, code string) error
	ListCodes(ctx context.Context, prefix string) ([]string, error)
}

// StatsRepository keeps the history of dashboard snapshots.
type StatsRepository interface {
	SaveStatsSnapshot(ctx context.Context, record models.StatsRecord) error
}

// Store groups every collection the application uses.
type Store struct {
	SKUs       SKURepository
	Warehouses WarehouseRepository
	Inventory  InventoryRepository
	Retired    RetiredCodeRepository
	Stats      StatsRepository
}
