package inventory

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
)

// Service manages raw stock rows.
type Service struct {
	rows   repository.InventoryRepository
	logger *zap.Logger
}

// NewService wires an inventory service instance.
func NewService(rows repository.InventoryRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{rows: rows, logger: logger}
}

// List returns rows sorted by sku then location.
func (s *Service) List(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryRow, error) {
	filter.SKU = strings.TrimSpace(filter.SKU)
	filter.Location = strings.TrimSpace(filter.Location)
	rows, err := s.rows.List(ctx, filter)
	if err != nil {
		return nil, models.NewStoreError("list inventory", err)
	}
	return rows, nil
}

// Create stores a stock row.
func (s *Service) Create(ctx context.Context, req models.CreateInventoryRequest) (*models.InventoryRow, error) {
	sku := strings.TrimSpace(req.SKU)
	location := strings.TrimSpace(req.Location)
	if sku == "" || location == "" {
		return nil, models.NewValidationError("sku and location are required")
	}

	row := &models.InventoryRow{SKU: sku, Location: location}
	if req.Available != nil {
		row.Available = *req.Available
	}
	if req.Reserved != nil {
		row.Reserved = *req.Reserved
	}
	if row.Available < 0 || row.Reserved < 0 {
		return nil, models.NewValidationError("available and reserved must not be negative")
	}

	if err := s.rows.Insert(ctx, row); err != nil {
		return nil, models.NewStoreError("insert inventory row", err)
	}

	s.logger.Debug("inventory row created",
		zap.String("sku", sku),
		zap.String("location", location),
		zap.Int64("available", row.Available))
	return row, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateInventoryRequest) (*models.InventoryRow, error) {
	if req.SKU != nil {
		trimmed := strings.TrimSpace(*req.SKU)
		if trimmed == "" {
			return nil, models.NewValidationError("sku must not be empty")
		}
		req.SKU = &trimmed
	}
	if req.Location != nil {
		trimmed := strings.TrimSpace(*req.Location)
		if trimmed == "" {
			return nil, models.NewValidationError("location must not be empty")
		}
		req.Location = &trimmed
	}
	if (req.Available != nil && *req.Available < 0) || (req.Reserved != nil && *req.Reserved < 0) {
		return nil, models.NewValidationError("available and reserved must not be negative")
	}

	updated, err := s.rows.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, models.NewStoreError("update inventory row", err)
	}
	return updated, nil
}

// Delete removes a stock row.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.rows.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.ErrNotFound
		}
		return models.NewStoreError("delete inventory row", err)
	}
	return nil
}
