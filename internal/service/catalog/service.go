package catalog

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
	"github.com/mamadbah2/stockroom/internal/service/codes"
)

var namespace = codes.Namespace{Prefix: models.SKUPrefix, Width: codes.DefaultPadWidth}

// Service manages catalog entries.
type Service struct {
	skus      repository.SKURepository
	retired   repository.RetiredCodeRepository
	allocator *codes.Allocator
	logger    *zap.Logger
}

// NewService wires a catalog service instance.
func NewService(skus repository.SKURepository, retired repository.RetiredCodeRepository, allocator *codes.Allocator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if allocator == nil {
		allocator = codes.NewAllocator(codes.DefaultMaxAttempts, logger)
	}
	return &Service{skus: skus, retired: retired, allocator: allocator, logger: logger}
}

// List returns catalog entries, newest first. "All" disables a category or status filter.
func (s *Service) List(ctx context.Context, filter models.SKUFilter) ([]models.SKU, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if strings.EqualFold(filter.Category, "All") {
		filter.Category = ""
	}
	if strings.EqualFold(filter.Status, "All") {
		filter.Status = ""
	}

	skus, err := s.skus.List(ctx, filter)
	if err != nil {
		return nil, models.NewStoreError("list skus", err)
	}
	return skus, nil
}

// Create stores a new catalog entry. Without an explicit code the next SKU-### is assigned.
func (s *Service) Create(ctx context.Context, req models.CreateSKURequest) (*models.SKU, error) {
	name := strings.TrimSpace(req.Name)
	category := strings.TrimSpace(req.Category)
	if name == "" || category == "" {
		return nil, models.NewValidationError("name and category are required")
	}
	status, ok := models.ParseSKUStatus(req.Status)
	if !ok {
		return nil, models.NewValidationError("status must be Active or Draft")
	}

	build := func(code string) *models.SKU {
		return &models.SKU{Code: code, Name: name, Category: category, Status: status}
	}

	if code := strings.TrimSpace(req.Code); code != "" {
		return s.createWithCode(ctx, build(code))
	}

	var created *models.SKU
	code, err := s.allocator.Assign(ctx, namespace,
		codes.Merge(s.skus.ListCodes, s.retired.ListCodes),
		func(ctx context.Context, code string) error {
			record := build(code)
			if err := s.skus.Insert(ctx, record); err != nil {
				return err
			}
			created = record
			return nil
		})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sku created", zap.String("sku", code), zap.String("category", category))
	return created, nil
}

func (s *Service) createWithCode(ctx context.Context, record *models.SKU) (*models.SKU, error) {
	if err := s.ensureCodeFree(ctx, record.Code); err != nil {
		return nil, err
	}
	if err := s.skus.Insert(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, models.ErrDuplicateCode
		}
		return nil, models.NewStoreError("insert sku", err)
	}
	s.logger.Info("sku created with explicit code", zap.String("sku", record.Code))
	return record, nil
}

func (s *Service) ensureCodeFree(ctx context.Context, code string) error {
	_, err := s.skus.FindByCode(ctx, code)
	switch {
	case err == nil:
		return models.ErrDuplicateCode
	case !errors.Is(err, repository.ErrNotFound):
		return models.NewStoreError("find sku", err)
	}

	retired, err := s.retired.ListCodes(ctx, namespace.Prefix)
	if err != nil {
		return models.NewStoreError("list retired codes", err)
	}
	for _, c := range retired {
		if c == code {
			return models.ErrDuplicateCode
		}
	}
	return nil
}

// Update replaces name, category and status. The code never changes.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateSKURequest) (*models.SKU, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if req.Name == "" || req.Category == "" || strings.TrimSpace(req.Status) == "" {
		return nil, models.NewValidationError("name, category, and status are required")
	}
	status, ok := models.ParseSKUStatus(req.Status)
	if !ok {
		return nil, models.NewValidationError("status must be Active or Draft")
	}
	req.Status = string(status)

	updated, err := s.skus.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, models.NewStoreError("update sku", err)
	}
	return updated, nil
}

// Delete removes a catalog entry and retires its code.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.skus.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.ErrNotFound
		}
		return models.NewStoreError("find sku", err)
	}

	if err := s.retired.Retire(ctx, namespace.Prefix, existing.Code); err != nil {
		return models.NewStoreError("retire sku code", err)
	}

	if _, err := s.skus.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.ErrNotFound
		}
		return models.NewStoreError("delete sku", err)
	}

	s.logger.Info("sku deleted", zap.String("sku", existing.Code))
	return nil
}
