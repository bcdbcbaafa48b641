package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lupacomun/forensik/internal/domain/benchmark"
	"github.com/lupacomun/forensik/internal/domain/document"
	"github.com/lupacomun/forensik/internal/domain/forensic"
	"github.com/lupacomun/forensik/pkg/config"
	"github.com/lupacomun/forensik/pkg/cron"
	"github.com/lupacomun/forensik/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	ForensicRepo forensic.Repository
	Catalog      benchmark.Catalog
	Detector     *benchmark.Detector

	Normalizer      *document.Service
	ForensicService *forensic.Service
	Scheduler       *cron.Scheduler
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := db.Migrate(cfg.Database.DSN(), logger); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database, err := db.Connect(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	deps.DB = database

	deps.ForensicRepo = forensic.NewPostgresRepository(database.Pool)

	catalog, err := initCatalog(cfg, database, logger)
	if err != nil {
		return nil, err
	}
	deps.Catalog = catalog
	deps.Detector = benchmark.NewDetector(catalog, benchmark.Thresholds{
		CriticalPct: cfg.Benchmark.CriticalDeviationPct,
		ModeratePct: cfg.Benchmark.ModerateDeviationPct,
	})

	deps.Normalizer = document.NewService(cfg.Forensic.OCRLanguage, logger)
	deps.ForensicService = forensic.NewService(
		deps.Normalizer,
		forensic.NewExtractor(),
		forensic.NewAdjustmentAuditor(cfg.Forensic.OfficialIPCIndex, cfg.Forensic.IPCTolerance),
		forensic.NewPeriodClassifier(cfg.Forensic.DefaultMonth, cfg.Forensic.DefaultYear),
		&benchmarkAdapter{detector: deps.Detector},
		deps.ForensicRepo,
		logger,
	)

	deps.Scheduler = cron.NewScheduler(deps.ForensicRepo, cfg.Forensic.ComplianceThreshold, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initCatalog prefers the CSV seed when configured, otherwise reads the
// precios_referencia table.
func initCatalog(cfg *config.Config, database *db.DB, logger *slog.Logger) (benchmark.Catalog, error) {
	if cfg.Benchmark.CatalogCSV == "" {
		return benchmark.NewPostgresCatalog(database.Pool), nil
	}

	f, err := os.Open(cfg.Benchmark.CatalogCSV)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()

	catalog, err := benchmark.LoadCatalogCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog csv: %w", err)
	}

	logger.Info("price catalog loaded from csv",
		slog.String("path", cfg.Benchmark.CatalogCSV),
		slog.Int("references", len(catalog.References())),
	)
	return catalog, nil
}

// Close releases held resources.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
