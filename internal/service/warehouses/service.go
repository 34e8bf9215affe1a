package warehouses

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
	"github.com/mamadbah2/stockroom/internal/service/codes"
)

var namespace = codes.Namespace{Prefix: models.WarehousePrefix, Width: codes.DefaultPadWidth}

// Service manages warehouses. Auto-assigned and caller-supplied codes share
// one uniqueness space.
type Service struct {
	warehouses repository.WarehouseRepository
	retired    repository.RetiredCodeRepository
	allocator  *codes.Allocator
	logger     *zap.Logger
}

// NewService wires a warehouse service instance.
func NewService(warehouses repository.WarehouseRepository, retired repository.RetiredCodeRepository, allocator *codes.Allocator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if allocator == nil {
		allocator = codes.NewAllocator(codes.DefaultMaxAttempts, logger)
	}
	return &Service{warehouses: warehouses, retired: retired, allocator: allocator, logger: logger}
}

// List returns every warehouse ordered by name.
func (s *Service) List(ctx context.Context) ([]models.Warehouse, error) {
	list, err := s.warehouses.List(ctx)
	if err != nil {
		return nil, models.NewStoreError("list warehouses", err)
	}
	return list, nil
}

// Create stores a warehouse, assigning the next WH-### code when none is supplied.
func (s *Service) Create(ctx context.Context, req models.CreateWarehouseRequest) (*models.Warehouse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidationError("name is required")
	}
	whType, ok := models.ParseWarehouseType(req.Type)
	if !ok {
		return nil, models.NewValidationError("type must be one of Own, 3PL, Marketplace, Store")
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	build := func(code string) *models.Warehouse {
		return &models.Warehouse{
			Code:     code,
			Name:     name,
			Type:     whType,
			City:     strings.TrimSpace(req.City),
			IsActive: active,
		}
	}

	if code := strings.TrimSpace(req.Code); code != "" {
		if err := s.ensureCodeFree(ctx, code); err != nil {
			return nil, err
		}
		record := build(code)
		if err := s.warehouses.Insert(ctx, record); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return nil, models.ErrDuplicateCode
			}
			return nil, models.NewStoreError("insert warehouse", err)
		}
		s.logger.Info("warehouse created with explicit code", zap.String("code", code))
		return record, nil
	}

	var created *models.Warehouse
	code, err := s.allocator.Assign(ctx, namespace,
		codes.Merge(s.warehouses.ListCodes, s.retired.ListCodes),
		func(ctx context.Context, code string) error {
			record := build(code)
			if err := s.warehouses.Insert(ctx, record); err != nil {
				return err
			}
			created = record
			return nil
		})
	if err != nil {
		return nil, err
	}

	s.logger.Info("warehouse created", zap.String("code", code), zap.String("type", string(whType)))
	return created, nil
}

// Update replaces the warehouse attributes. A changed code must be free and
// the previous code is retired.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateWarehouseRequest) (*models.Warehouse, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.Code)
	if name == "" || code == "" {
		return nil, models.NewValidationError("name and code are required")
	}

	current, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, models.NewStoreError("find warehouse", err)
	}

	next := *current
	next.Name = name
	next.Code = code
	if strings.TrimSpace(req.Type) != "" {
		whType, ok := models.ParseWarehouseType(req.Type)
		if !ok {
			return nil, models.NewValidationError("type must be one of Own, 3PL, Marketplace, Store")
		}
		next.Type = whType
	}
	if req.City != nil {
		next.City = strings.TrimSpace(*req.City)
	}
	if req.IsActive != nil {
		next.IsActive = *req.IsActive
	}

	if code != current.Code {
		if err := s.ensureCodeFree(ctx, code); err != nil {
			return nil, err
		}
		if err := s.retired.Retire(ctx, namespace.Prefix, current.Code); err != nil {
			return nil, models.NewStoreError("retire warehouse code", err)
		}
	}

	updated, err := s.warehouses.Replace(ctx, id, next)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, models.ErrDuplicateCode
		case errors.Is(err, repository.ErrNotFound):
			return nil, models.ErrNotFound
		}
		return nil, models.NewStoreError("update warehouse", err)
	}
	return updated, nil
}

// Delete removes a warehouse and retires its code.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.ErrNotFound
		}
		return models.NewStoreError("find warehouse", err)
	}

	if err := s.retired.Retire(ctx, namespace.Prefix, existing.Code); err != nil {
		return models.NewStoreError("retire warehouse code", err)
	}

	if _, err := s.warehouses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.ErrNotFound
		}
		return models.NewStoreError("delete warehouse", err)
	}

	s.logger.Info("warehouse deleted", zap.String("code", existing.Code))
	return nil
}

func (s *Service) ensureCodeFree(ctx context.Context, code string) error {
	_, err := s.warehouses.FindByCode(ctx, code)
	switch {
	case err == nil:
		return models.ErrDuplicateCode
	case !errors.Is(err, repository.ErrNotFound):
		return models.NewStoreError("find warehouse", err)
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
