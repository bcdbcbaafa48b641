// Command audit runs building-expense statements through the forensic
// pipeline: each file argument is normalized, mined for expenses, audited
// and persisted under its detected period. The upload/UI layer lives
// elsewhere; this binary is the caller harness for operators.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lupacomun/forensik/internal/domain/forensic"
	"github.com/lupacomun/forensik/internal/domain/portfolio"
	"github.com/lupacomun/forensik/pkg/config"
	"github.com/lupacomun/forensik/pkg/money"
)

func main() {
	clearHistory := flag.Bool("clear", false, "wipe the stored expense history and exit")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background(), logger, *clearHistory, flag.Args()); err != nil {
		logger.Error("audit failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, clearHistory bool, files []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	deps, err := InitDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	if cfg.Observability.MetricsEnabled {
		startMetricsListener(cfg.Observability.MetricsPort, logger)
	}

	if clearHistory {
		return deps.ForensicService.ClearHistory(ctx)
	}

	if len(files) == 0 {
		return errors.New("no files to audit; pass statement paths as arguments")
	}

	if err := deps.Scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer deps.Scheduler.Stop()

	for _, path := range files {
		if err := auditFile(ctx, deps, path, logger); err != nil {
			return err
		}
	}

	expenses, err := deps.ForensicRepo.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("read back history: %w", err)
	}

	metrics := portfolio.Compute(expenses, cfg.Forensic.ComplianceThreshold)
	logger.Info("portfolio summary",
		slog.Int("transparency_score", metrics.TransparencyScore),
		slog.Int("alerts", metrics.AlertCount),
		slog.String("potential_savings", money.FormatDotted(metrics.SavingsCLP().Amount())),
		slog.String("compliance", string(metrics.Compliance)),
	)
	return nil
}

func auditFile(ctx context.Context, deps *Dependencies, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	filename := filepath.Base(path)
	mimeType := mime.TypeByExtension(filepath.Ext(filename))

	expenses, err := deps.ForensicService.ProcessDocument(ctx, data, filename, mimeType)

	var dup *forensic.DuplicatePeriodError
	if errors.As(err, &dup) {
		logger.Warn("period already audited, batch skipped",
			slog.String("filename", filename),
			slog.String("month", dup.Month),
			slog.Int("year", dup.Year),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("process %s: %w", filename, err)
	}

	anomalies := 0
	total := money.New(0)
	for _, e := range expenses {
		if e.IsAnomaly {
			anomalies++
		}
		sum, err := total.Add(money.New(e.Amount))
		if err != nil {
			return fmt.Errorf("sum batch amounts: %w", err)
		}
		total = sum
	}
	logger.Info("statement audited",
		slog.String("filename", filename),
		slog.Int("expenses", len(expenses)),
		slog.Int("anomalies", anomalies),
		slog.String("total_clp", money.FormatDotted(total.Amount())),
	)
	return nil
}

func startMetricsListener(port int, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		addr := fmt.Sprintf(":%d", port)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics listener stopped", slog.Any("error", err))
		}
	}()
}
