package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/pkg/clients/notifier"
)

type fakeReporter struct {
	alerts    []models.LowStockAlert
	err       error
	threshold int64
	limit     int
}

func (f *fakeReporter) LowStock(_ context.Context, threshold int64, limit int) ([]models.LowStockAlert, error) {
	f.threshold, f.limit = threshold, limit
	return f.alerts, f.err
}

func (f *fakeReporter) RecordSnapshot(context.Context) (models.StatsRecord, error) {
	return models.StatsRecord{}, nil
}

type fakeNotifier struct {
	digests []notifier.Digest
}

func (f *fakeNotifier) SendLowStockDigest(_ context.Context, d notifier.Digest) error {
	f.digests = append(f.digests, d)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Alerts: config.AlertsConfig{DefaultThreshold: 7, DefaultLimit: 20},
		Reporting: config.ReportingConfig{
			DigestSchedule:   "0 8 * * *",
			SnapshotSchedule: "0 20 * * *",
			Timezone:         "UTC",
		},
	}
}

func TestSendDigestUsesConfiguredDefaults(t *testing.T) {
	reporter := &fakeReporter{alerts: []models.LowStockAlert{{Code: "SKU-001", TotalAvailable: 2}}}
	notify := &fakeNotifier{}
	s, err := NewScheduler(testConfig(), reporter, notify, nil)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}

	if err := s.sendDigest(context.Background()); err != nil {
		t.Fatalf("sendDigest() error = %v", err)
	}
	if reporter.threshold != 7 || reporter.limit != 20 {
		t.Fatalf("reporter called with threshold=%d limit=%d", reporter.threshold, reporter.limit)
	}
	if len(notify.digests) != 1 || notify.digests[0].Threshold != 7 || len(notify.digests[0].Alerts) != 1 {
		t.Fatalf("unexpected digests: %+v", notify.digests)
	}
}

func TestSendDigestSkipsWhenNothingIsLow(t *testing.T) {
	notify := &fakeNotifier{}
	s, err := NewScheduler(testConfig(), &fakeReporter{}, notify, nil)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	if err := s.sendDigest(context.Background()); err != nil {
		t.Fatalf("sendDigest() error = %v", err)
	}
	if len(notify.digests) != 0 {
		t.Fatalf("expected no digest, got %d", len(notify.digests))
	}
}

func TestSendDigestPropagatesReporterErrors(t *testing.T) {
	boom := errors.New("store down")
	s, err := NewScheduler(testConfig(), &fakeReporter{err: boom}, nil, nil)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	if err := s.sendDigest(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("sendDigest() error = %v, want wrapped %v", err, boom)
	}
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.DigestSchedule = "every now and then"
	s, err := NewScheduler(cfg, &fakeReporter{}, nil, nil)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("expected invalid cron expression to fail")
	}
}

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.Timezone = "Mars/Olympus_Mons"
	if _, err := NewScheduler(cfg, &fakeReporter{}, nil, nil); err == nil {
		t.Fatal("expected unknown timezone to fail")
	}
}
