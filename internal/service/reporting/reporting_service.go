package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
	"github.com/mamadbah2/stockroom/internal/service/aggregation"
)

// SnapshotExporter receives every persisted stats snapshot, e.g. a spreadsheet.
type SnapshotExporter interface {
	AppendStatsSnapshot(ctx context.Context, record models.StatsRecord) error
}

// Service exposes low-stock alerts and dashboard rollups.
type Service struct {
	skus       repository.SKURepository
	warehouses repository.WarehouseRepository
	inventory  repository.InventoryRepository
	history    repository.StatsRepository
	exporter   SnapshotExporter
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires a new reporting service instance. history and exporter may be nil.
func NewService(store repository.Store, exporter SnapshotExporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		skus:       store.SKUs,
		warehouses: store.Warehouses,
		inventory:  store.Inventory,
		history:    store.Stats,
		exporter:   exporter,
		logger:     logger,
		now:        time.Now,
	}
}

// LowStock returns SKUs whose available stock summed over every location is
// at or below threshold, lowest first.
func (s *Service) LowStock(ctx context.Context, threshold int64, limit int) ([]models.LowStockAlert, error) {
	totals, err := s.inventory.TotalsByCode(ctx)
	if err != nil {
		return nil, models.NewStoreError("sum inventory by sku", err)
	}

	alerts := aggregation.SelectLowStock(totals, threshold, limit, nil)
	if len(alerts) == 0 {
		return alerts, nil
	}

	names, err := s.skus.NamesByCode(ctx, aggregation.AlertCodes(alerts))
	if err != nil {
		return nil, models.NewStoreError("resolve sku names", err)
	}
	aggregation.AttachNames(alerts, aggregation.MapLookup(names))

	return alerts, nil
}

// Stats computes the dashboard rollup from the three collections, fetched concurrently.
func (s *Service) Stats(ctx context.Context) (models.StatsSnapshot, error) {
	var (
		skus       []models.SKU
		warehouses []models.Warehouse
		rows       []models.InventoryRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		skus, err = s.skus.List(gctx, models.SKUFilter{})
		if err != nil {
			return models.NewStoreError("list skus", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		warehouses, err = s.warehouses.List(gctx)
		if err != nil {
			return models.NewStoreError("list warehouses", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rows, err = s.inventory.List(gctx, models.InventoryFilter{})
		if err != nil {
			return models.NewStoreError("list inventory", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.StatsSnapshot{}, err
	}

	return aggregation.ComputeStats(skus, warehouses, rows), nil
}

// RecordSnapshot computes the current stats and keeps them in the history
// collection and, when configured, the exporter.
func (s *Service) RecordSnapshot(ctx context.Context) (models.StatsRecord, error) {
	snapshot, err := s.Stats(ctx)
	if err != nil {
		return models.StatsRecord{}, fmt.Errorf("compute stats: %w", err)
	}

	record := models.StatsRecord{StatsSnapshot: snapshot, TakenAt: s.now().UTC()}
	if s.history != nil {
		if err := s.history.SaveStatsSnapshot(ctx, record); err != nil {
			return record, models.NewStoreError("save stats snapshot", err)
		}
	}
	if s.exporter != nil {
		if err := s.exporter.AppendStatsSnapshot(ctx, record); err != nil {
			// The history copy is already stored; a failed export is not fatal.
			s.logger.Warn("stats snapshot export failed", zap.Error(err))
		}
	}

	return record, nil
}

// FormatDigest renders alerts as a short plain-text message.
func FormatDigest(alerts []models.LowStockAlert, threshold int64) string {
	if len(alerts) == 0 {
		return fmt.Sprintf("Low stock (<= %d): nothing to report.", threshold)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Low stock (<= %d): %d SKU(s)", threshold, len(alerts))
	for _, a := range alerts {
		name := "unknown"
		if a.Name != nil {
			name = *a.Name
		}
		fmt.Fprintf(&b, "\n- %s %s: %d available", a.Code, name, a.TotalAvailable)
	}
	return b.String()
}
