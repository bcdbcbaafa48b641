package benchmark

import (
	"context"
	"fmt"
	"strings"

	"github.com/lupacomun/forensik/internal/domain/forensic"
	"github.com/lupacomun/forensik/pkg/money"
)

// Thresholds are the overprice policy boundaries in percent deviation from
// the reference price. Both are strict (>), so a deviation of exactly
// CriticalPct still classifies as moderate.
type Thresholds struct {
	CriticalPct float64
	ModeratePct float64
}

// DefaultThresholds mirror the Forensik protocol: >30% critical, >15% moderate.
func DefaultThresholds() Thresholds {
	return Thresholds{CriticalPct: 30, ModeratePct: 15}
}

// Verdict is the outcome of benchmarking a single expense.
type Verdict struct {
	IsAnomaly    bool
	Kind         forensic.AnomalyKind
	Comment      string
	DeviationPct float64
	// Difference is the absolute overcharge (amount minus reference price),
	// meaningful only when IsAnomaly is set.
	Difference int64
}

// Detector computes percentage deviation against the catalog and classifies
// severity. Thresholds are injected so policy can be tuned without touching
// extraction logic.
type Detector struct {
	catalog    Catalog
	thresholds Thresholds
}

func NewDetector(catalog Catalog, thresholds Thresholds) *Detector {
	return &Detector{catalog: catalog, thresholds: thresholds}
}

// Detect looks up the catalog by the first whitespace-delimited token of the
// expense description. No candidate means no anomaly.
func (d *Detector) Detect(ctx context.Context, expense forensic.Expense) (Verdict, error) {
	token := firstToken(expense.Description)
	if token == "" {
		return Verdict{}, nil
	}

	refs, err := d.catalog.FindByItemToken(ctx, token)
	if err != nil {
		return Verdict{}, fmt.Errorf("catalog lookup for %q: %w", token, err)
	}
	if len(refs) == 0 {
		return Verdict{}, nil
	}

	ref := refs[0]
	if ref.AveragePrice == 0 {
		return Verdict{}, nil
	}

	deviation := float64(expense.Amount-ref.AveragePrice) / float64(ref.AveragePrice) * 100

	switch {
	case deviation > d.thresholds.CriticalPct:
		return Verdict{
			IsAnomaly: true,
			Kind:      forensic.AnomalyCriticalOverprice,
			Comment: fmt.Sprintf(
				"ALERTA FORENSE: Sobreprecio del %.2f%% detectado. Precio mercado: $%s.",
				deviation, money.FormatDotted(ref.AveragePrice)),
			DeviationPct: deviation,
			Difference:   expense.Amount - ref.AveragePrice,
		}, nil

	case deviation > d.thresholds.ModeratePct:
		return Verdict{
			IsAnomaly: true,
			Kind:      forensic.AnomalyModerateOverprice,
			Comment: fmt.Sprintf(
				"Aviso: El costo es un %.2f%% superior al promedio de mercado.",
				deviation),
			DeviationPct: deviation,
			Difference:   expense.Amount - ref.AveragePrice,
		}, nil
	}

	return Verdict{DeviationPct: deviation}, nil
}

func firstToken(description string) string {
	fields := strings.Fields(description)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
