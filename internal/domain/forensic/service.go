package forensic

import (
	"context"
	"fmt"
	"log/slog"
)

// Normalizer converts raw document bytes into plain text. Implemented by the
// document domain; failure degrades to a placeholder string, never an error.
type Normalizer interface {
	Normalize(ctx context.Context, data []byte, filename, mimeType string) string
}

// BenchmarkVerdict is the slice of a benchmark result the pipeline applies
// to an expense.
type BenchmarkVerdict struct {
	IsAnomaly bool
	Kind      AnomalyKind
	Comment   string
}

// OverpriceDetector benchmarks a single expense against the price catalog.
// Implemented by the benchmark domain via an adapter.
type OverpriceDetector interface {
	DetectOverprice(ctx context.Context, expense Expense) (BenchmarkVerdict, error)
}

// Service orchestrates the forensic pipeline: normalize, extract, audit the
// statutory adjustment, tag provenance, benchmark, classify the period and
// persist behind the duplicate guard.
type Service struct {
	normalizer Normalizer
	extractor  *Extractor
	auditor    *AdjustmentAuditor
	classifier *PeriodClassifier
	detector   OverpriceDetector
	repo       Repository
	logger     *slog.Logger
}

// NewService wires the pipeline. detector may be nil when no price catalog is
// configured; benchmarking is then skipped during extraction.
func NewService(
	normalizer Normalizer,
	extractor *Extractor,
	auditor *AdjustmentAuditor,
	classifier *PeriodClassifier,
	detector OverpriceDetector,
	repo Repository,
	logger *slog.Logger,
) *Service {
	return &Service{
		normalizer: normalizer,
		extractor:  extractor,
		auditor:    auditor,
		classifier: classifier,
		detector:   detector,
		repo:       repo,
		logger:     logger,
	}
}

// ProcessDocument is the single entry point for one document. It returns the
// persisted expense batch, each description carrying the period tag. A batch
// for an already-stored period fails with *DuplicatePeriodError and nothing
// is inserted.
func (s *Service) ProcessDocument(ctx context.Context, data []byte, filename, mimeType string) ([]Expense, error) {
	s.logger.Info("processing document",
		slog.String("filename", filename),
		slog.String("mime_type", mimeType),
	)
	documentsProcessed.Inc()

	text := s.normalizer.Normalize(ctx, data, filename, mimeType)

	expenses := s.extractor.Extract(text, filename)
	expensesExtracted.Add(float64(len(expenses)))

	if adjustment := s.auditor.Audit(text); adjustment != nil {
		expenses = append(expenses, *adjustment)
	}

	expenses = TagProvenance(text, expenses)
	s.benchmarkExpenses(ctx, expenses)

	for _, e := range expenses {
		if e.AnomalyKind != nil {
			anomaliesFlagged.WithLabelValues(string(*e.AnomalyKind)).Inc()
		}
	}

	period := s.classifier.Classify(text, filename)

	tagged, err := s.saveBatch(ctx, expenses, period)
	if err != nil {
		return nil, err
	}

	s.logger.Info("document analyzed",
		slog.String("filename", filename),
		slog.String("period", period.Tag()),
		slog.Int("expenses", len(tagged)),
	)
	return tagged, nil
}

// benchmarkExpenses applies catalog verdicts in place. Expenses the auditor
// already flagged keep their verdict.
func (s *Service) benchmarkExpenses(ctx context.Context, expenses []Expense) {
	if s.detector == nil {
		return
	}

	for i := range expenses {
		if expenses[i].IsAnomaly {
			continue
		}

		verdict, err := s.detector.DetectOverprice(ctx, expenses[i])
		if err != nil {
			s.logger.Warn("benchmark lookup failed",
				slog.String("description", expenses[i].Description),
				slog.Any("error", err),
			)
			continue
		}
		if verdict.IsAnomaly {
			kind := verdict.Kind
			expenses[i].IsAnomaly = true
			expenses[i].AnomalyKind = &kind
			expenses[i].AIComment = verdict.Comment
		}
	}
}

// saveBatch runs the duplicate guard, appends the period tag to every
// description and inserts the batch. The check and the insert are not atomic
// against concurrent submissions of the same period; acceptable for the
// low-concurrency workload this serves.
func (s *Service) saveBatch(ctx context.Context, expenses []Expense, period Period) ([]Expense, error) {
	tag := period.Tag()

	exists, err := s.repo.FindExistingByPeriodTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("duplicate check for %s: %w", tag, err)
	}
	if exists {
		duplicateBatches.Inc()
		return nil, &DuplicatePeriodError{Month: period.Month, Year: period.Year}
	}

	tagged := make([]Expense, len(expenses))
	copy(tagged, expenses)
	for i := range tagged {
		tagged[i].Description = tagged[i].Description + " " + tag
	}

	if err := s.repo.InsertExpenses(ctx, tagged); err != nil {
		return nil, fmt.Errorf("persist batch %s: %w", tag, err)
	}
	return tagged, nil
}

// ClearHistory removes every stored expense. Explicit bulk reset only.
func (s *Service) ClearHistory(ctx context.Context) error {
	s.logger.Warn("clearing stored expense history")
	return s.repo.ClearAll(ctx)
}
