// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lupacomun/forensik/internal/domain/forensic"
	"github.com/lupacomun/forensik/internal/domain/portfolio"
	"github.com/lupacomun/forensik/pkg/money"
)

// Scheduler recomputes portfolio metrics on a fixed schedule so the nightly
// log carries a fresh transparency snapshot even when no caller asks for one.
type Scheduler struct {
	cron                *cron.Cron
	repo                forensic.Repository
	complianceThreshold int
	logger              *slog.Logger
}

// NewScheduler creates a new job scheduler.
func NewScheduler(repo forensic.Repository, complianceThreshold int, logger *slog.Logger) *Scheduler {
	// Standard 5-field cron format, no seconds.
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:                c,
		repo:                repo,
		complianceThreshold: complianceThreshold,
		logger:              logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	// Portfolio metrics snapshot: runs daily at 3:00 AM
	_, err := s.cron.AddFunc("0 3 * * *", s.recomputeMetrics)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the metrics recompute (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.recomputeMetrics()
}

func (s *Scheduler) recomputeMetrics() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	expenses, err := s.repo.ListExpenses(ctx)
	if err != nil {
		s.logger.Error("failed to list expenses for metrics", slog.Any("error", err))
		return
	}

	metrics := portfolio.Compute(expenses, s.complianceThreshold)
	s.logger.Info("portfolio metrics recomputed",
		slog.Int("transparency_score", metrics.TransparencyScore),
		slog.Int("alerts", metrics.AlertCount),
		slog.String("potential_savings", money.FormatDotted(metrics.SavingsCLP().Amount())),
		slog.String("compliance", string(metrics.Compliance)),
	)
}
