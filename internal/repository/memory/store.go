// Package memory provides a process-local record store used for local runs and tests.
// It enforces the same unique code constraints as the MongoDB indexes.
package memory

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
)

// Store keeps every collection behind a single lock.
type Store struct {
	mu         sync.RWMutex
	skus       map[primitive.ObjectID]models.SKU
	warehouses map[primitive.ObjectID]models.Warehouse
	inventory  map[primitive.ObjectID]models.InventoryRow
	retired    map[string]models.RetiredCode
	snapshots  []models.StatsRecord
	now        func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		skus:       make(map[primitive.ObjectID]models.SKU),
		warehouses: make(map[primitive.ObjectID]models.Warehouse),
		inventory:  make(map[primitive.ObjectID]models.InventoryRow),
		retired:    make(map[string]models.RetiredCode),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		SKUs:       &SKURepository{s: s},
		Warehouses: &WarehouseRepository{s: s},
		Inventory:  &InventoryRepository{s: s},
		Retired:    &RetiredCodeRepository{s: s},
		Stats:      &StatsRepository{s: s},
	}
}

// Snapshots returns the persisted stats history.
func (s *Store) Snapshots() []models.StatsRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StatsRecord(nil), s.snapshots...)
}

// SKURepository is the in-memory catalog collection.
type SKURepository struct{ s *Store }

func (r *SKURepository) List(_ context.Context, filter models.SKUFilter) ([]models.SKU, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.SKU, 0, len(r.s.skus))
	for _, sku := range r.s.skus {
		if filter.Query != "" && !containsFold(sku.Code, filter.Query) && !containsFold(sku.Name, filter.Query) {
			continue
		}
		if filter.Category != "" && sku.Category != filter.Category {
			continue
		}
		if filter.Status != "" && string(sku.Status) != filter.Status {
			continue
		}
		out = append(out, sku)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.Hex() > out[j].ID.Hex()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *SKURepository) FindByCode(_ context.Context, code string) (*models.SKU, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sku := range r.s.skus {
		if sku.Code == code {
			found := sku
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SKURepository) FindByID(_ context.Context, id string) (*models.SKU, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sku, ok := r.s.skus[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sku, nil
}

func (r *SKURepository) ListCodes(_ context.Context, prefix string) ([]string, error) {
	pattern := codePattern(prefix)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var codes []string
	for _, sku := range r.s.skus {
		if pattern.MatchString(sku.Code) {
			codes = append(codes, sku.Code)
		}
	}
	return codes, nil
}

func (r *SKURepository) NamesByCode(_ context.Context, codes []string) (map[string]string, error) {
	wanted := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		wanted[code] = struct{}{}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	names := make(map[string]string, len(codes))
	for _, sku := range r.s.skus {
		if _, ok := wanted[sku.Code]; ok {
			names[sku.Code] = sku.Name
		}
	}
	return names, nil
}

func (r *SKURepository) Insert(_ context.Context, sku *models.SKU) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.skus {
		if existing.Code == sku.Code {
			return repository.ErrDuplicateKey
		}
	}
	now := r.s.now()
	sku.ID = primitive.NewObjectID()
	sku.CreatedAt, sku.UpdatedAt = now, now
	r.s.skus[sku.ID] = *sku
	return nil
}

func (r *SKURepository) Update(_ context.Context, id string, req models.UpdateSKURequest) (*models.SKU, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sku, ok := r.s.skus[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	sku.Name = req.Name
	sku.Category = req.Category
	sku.Status = models.SKUStatus(req.Status)
	sku.UpdatedAt = r.s.now()
	r.s.skus[oid] = sku
	return &sku, nil
}

func (r *SKURepository) Delete(_ context.Context, id string) (*models.SKU, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sku, ok := r.s.skus[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.s.skus, oid)
	return &sku, nil
}

// WarehouseRepository is the in-memory warehouse collection.
type WarehouseRepository struct{ s *Store }

func (r *WarehouseRepository) List(_ context.Context) ([]models.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Warehouse, 0, len(r.s.warehouses))
	for _, wh := range r.s.warehouses {
		out = append(out, wh)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].Code < out[j].Code
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *WarehouseRepository) FindByCode(_ context.Context, code string) (*models.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, wh := range r.s.warehouses {
		if wh.Code == code {
			found := wh
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *WarehouseRepository) FindByID(_ context.Context, id string) (*models.Warehouse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	wh, ok := r.s.warehouses[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &wh, nil
}

func (r *WarehouseRepository) ListCodes(_ context.Context, prefix string) ([]string, error) {
	pattern := codePattern(prefix)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var codes []string
	for _, wh := range r.s.warehouses {
		if pattern.MatchString(wh.Code) {
			codes = append(codes, wh.Code)
		}
	}
	return codes, nil
}

func (r *WarehouseRepository) Insert(_ context.Context, warehouse *models.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.warehouses {
		if existing.Code == warehouse.Code {
			return repository.ErrDuplicateKey
		}
	}
	now := r.s.now()
	warehouse.ID = primitive.NewObjectID()
	warehouse.CreatedAt, warehouse.UpdatedAt = now, now
	r.s.warehouses[warehouse.ID] = *warehouse
	return nil
}

func (r *WarehouseRepository) Replace(_ context.Context, id string, warehouse models.Warehouse) (*models.Warehouse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.warehouses[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for otherID, existing := range r.s.warehouses {
		if otherID != oid && existing.Code == warehouse.Code {
			return nil, repository.ErrDuplicateKey
		}
	}
	warehouse.ID = oid
	warehouse.CreatedAt = current.CreatedAt
	warehouse.UpdatedAt = r.s.now()
	r.s.warehouses[oid] = warehouse
	return &warehouse, nil
}

func (r *WarehouseRepository) Delete(_ context.Context, id string) (*models.Warehouse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wh, ok := r.s.warehouses[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.s.warehouses, oid)
	return &wh, nil
}

// InventoryRepository is the in-memory stock row collection.
type InventoryRepository struct{ s *Store }

func (r *InventoryRepository) List(_ context.Context, filter models.InventoryFilter) ([]models.InventoryRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.InventoryRow, 0, len(r.s.inventory))
	for _, row := range r.s.inventory {
		if filter.SKU != "" && !containsFold(row.SKU, filter.SKU) {
			continue
		}
		if filter.Location != "" && !containsFold(row.Location, filter.Location) {
			continue
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SKU != out[j].SKU {
			return out[i].SKU < out[j].SKU
		}
		if out[i].Location != out[j].Location {
			return out[i].Location < out[j].Location
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

func (r *InventoryRepository) Insert(_ context.Context, row *models.InventoryRow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	row.ID = primitive.NewObjectID()
	row.CreatedAt, row.UpdatedAt = now, now
	r.s.inventory[row.ID] = *row
	return nil
}

func (r *InventoryRepository) Update(_ context.Context, id string, req models.UpdateInventoryRequest) (*models.InventoryRow, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.inventory[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.SKU != nil {
		row.SKU = *req.SKU
	}
	if req.Location != nil {
		row.Location = *req.Location
	}
	if req.Available != nil {
		row.Available = *req.Available
	}
	if req.Reserved != nil {
		row.Reserved = *req.Reserved
	}
	row.UpdatedAt = r.s.now()
	r.s.inventory[oid] = row
	return &row, nil
}

func (r *InventoryRepository) Delete(_ context.Context, id string) (*models.InventoryRow, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.inventory[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.s.inventory, oid)
	return &row, nil
}

func (r *InventoryRepository) TotalsByCode(_ context.Context) ([]models.CodeTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sums := make(map[string]int64)
	for _, row := range r.s.inventory {
		sums[row.SKU] += row.Available
	}
	out := make([]models.CodeTotal, 0, len(sums))
	for code, total := range sums {
		out = append(out, models.CodeTotal{Code: code, TotalAvailable: total})
	}
	return out, nil
}

// RetiredCodeRepository is the in-memory retired code set.
type RetiredCodeRepository struct{ s *Store }

func (r *RetiredCodeRepository) Retire(_ context.Context, prefix, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := prefix + "|" + code
	if _, ok := r.s.retired[key]; ok {
		return nil
	}
	r.s.retired[key] = models.RetiredCode{Prefix: prefix, Code: code, RetiredAt: r.s.now()}
	return nil
}

func (r *RetiredCodeRepository) ListCodes(_ context.Context, prefix string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var codes []string
	for _, retired := range r.s.retired {
		if retired.Prefix == prefix {
			codes = append(codes, retired.Code)
		}
	}
	return codes, nil
}

// StatsRepository is the in-memory snapshot history.
type StatsRepository struct{ s *Store }

func (r *StatsRepository) SaveStatsSnapshot(_ context.Context, record models.StatsRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.snapshots = append(r.s.snapshots, record)
	return nil
}

func codePattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `\d+$`)
}

func containsFold(value, sub string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(sub))
}
