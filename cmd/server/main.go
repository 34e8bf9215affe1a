package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/repository"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
	"github.com/mamadbah2/stockroom/internal/repository/mongodb"
	"github.com/mamadbah2/stockroom/internal/repository/sheets"
	"github.com/mamadbah2/stockroom/internal/scheduler"
	"github.com/mamadbah2/stockroom/internal/server/handlers"
	"github.com/mamadbah2/stockroom/internal/server/router"
	"github.com/mamadbah2/stockroom/internal/service/catalog"
	"github.com/mamadbah2/stockroom/internal/service/codes"
	inventorysvc "github.com/mamadbah2/stockroom/internal/service/inventory"
	reportingsvc "github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/internal/service/warehouses"
	"github.com/mamadbah2/stockroom/pkg/clients/notifier"
	"github.com/mamadbah2/stockroom/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, closeStore := openStore(cfg, baseLogger)
	defer closeStore()

	var exporter reportingsvc.SnapshotExporter
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		exporter = sheetsRepo
		baseLogger.Info("stats snapshots exported to google sheets")
	}

	var notify notifier.Client
	if cfg.Reporting.DigestWebhookURL != "" {
		notify = notifier.NewWebhookClient(cfg.Reporting.DigestWebhookURL)
		baseLogger.Info("low-stock digest webhook enabled")
	} else {
		baseLogger.Warn("digest webhook url missing, low-stock digest will only be logged")
	}

	allocator := codes.NewAllocator(cfg.Allocation.MaxAttempts, baseLogger.Named("svc.codes"))
	catalogSvc := catalog.NewService(store.SKUs, store.Retired, allocator, baseLogger.Named("svc.catalog"))
	warehouseSvc := warehouses.NewService(store.Warehouses, store.Retired, allocator, baseLogger.Named("svc.warehouses"))
	inventorySvc := inventorysvc.NewService(store.Inventory, baseLogger.Named("svc.inventory"))
	reportingSvc := reportingsvc.NewService(store, exporter, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		SKUs:       handlers.NewSKUHandler(catalogSvc, baseLogger.Named("handlers.skus")),
		Warehouses: handlers.NewWarehouseHandler(warehouseSvc, baseLogger.Named("handlers.warehouses")),
		Inventory:  handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventory")),
		Reporting:  handlers.NewReportingHandler(reportingSvc, cfg.Alerts, baseLogger.Named("handlers.reporting")),
	}, cfg.Server.FrontendURL, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(*cfg, reportingSvc, notify, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStore connects the configured record store and returns its close hook.
func openStore(cfg *config.Config, baseLogger *zap.Logger) (repository.Store, func()) {
	if cfg.Store.Driver == config.DriverMemory {
		baseLogger.Warn("using in-memory store, data is lost on restart")
		return memory.NewStore().Repositories(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	if err := mongoRepo.EnsureIndexes(ctx); err != nil {
		baseLogger.Fatal("failed to ensure mongodb indexes", zap.Error(err))
	}

	return mongoRepo.Store(), func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}
}
