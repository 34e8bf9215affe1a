package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/pkg/clients/notifier"
)

// Reporter is the slice of the reporting service the jobs need.
type Reporter interface {
	LowStock(ctx context.Context, threshold int64, limit int) ([]models.LowStockAlert, error)
	RecordSnapshot(ctx context.Context) (models.StatsRecord, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reporter Reporter
	notifier notifier.Client
	cfg      config.Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance. notifier may be nil, in which
// case the digest job only logs.
func NewScheduler(cfg config.Config, reporter Reporter, notify notifier.Client, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Reporting.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		reporter: reporter,
		notifier: notify,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("digest_schedule", s.cfg.Reporting.DigestSchedule),
		zap.String("snapshot_schedule", s.cfg.Reporting.SnapshotSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.DigestSchedule, s.runDigest); err != nil {
		return fmt.Errorf("schedule low-stock digest: %w", err)
	}
	if _, err := s.cron.AddFunc(s.cfg.Reporting.SnapshotSchedule, s.runSnapshot); err != nil {
		return fmt.Errorf("schedule stats snapshot: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.sendDigest(ctx); err != nil {
		s.logger.Error("low-stock digest failed", zap.Error(err))
	}
}

func (s *Scheduler) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	record, err := s.reporter.RecordSnapshot(ctx)
	if err != nil {
		s.logger.Error("stats snapshot failed", zap.Error(err))
		return
	}
	s.logger.Info("stats snapshot recorded",
		zap.Int("skus", record.SKUs),
		zap.Int("inventory_rows", record.InventoryRows),
		zap.Int64("total_available", record.TotalAvailable))
}

func (s *Scheduler) sendDigest(ctx context.Context) error {
	threshold := s.cfg.Alerts.DefaultThreshold
	alerts, err := s.reporter.LowStock(ctx, threshold, s.cfg.Alerts.DefaultLimit)
	if err != nil {
		return fmt.Errorf("compute low stock: %w", err)
	}

	if len(alerts) == 0 {
		s.logger.Info("no low-stock skus, digest skipped")
		return nil
	}
	if s.notifier == nil {
		s.logger.Info("low-stock digest", zap.Int("alerts", len(alerts)), zap.String("text", reporting.FormatDigest(alerts, threshold)))
		return nil
	}

	digest := notifier.Digest{
		Threshold:   threshold,
		GeneratedAt: s.now().UTC(),
		Text:        reporting.FormatDigest(alerts, threshold),
		Alerts:      alerts,
	}
	if err := s.notifier.SendLowStockDigest(ctx, digest); err != nil {
		return err
	}

	s.logger.Info("low-stock digest sent", zap.Int("alerts", len(alerts)))
	return nil
}
