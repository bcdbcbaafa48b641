package forensic

import (
	"regexp"
	"strconv"
	"strings"
)

var adjustmentRegex = regexp.MustCompile(`(?i)(reajuste|ipc|incremento)\s+(\d+[\d\.]*)\s*%`)

// AdjustmentAuditor flags documents whose declared reajuste percentage
// exceeds a tolerance multiple of the official IPC index.
type AdjustmentAuditor struct {
	officialIndex float64
	tolerance     float64
}

// NewAdjustmentAuditor configures the auditor with the official index and
// the tolerance multiple above which a reajuste is flagged.
func NewAdjustmentAuditor(officialIndex, tolerance float64) *AdjustmentAuditor {
	return &AdjustmentAuditor{officialIndex: officialIndex, tolerance: tolerance}
}

// Audit scans the whole text for the first adjustment mention. It returns at
// most one anomaly expense, or nil when the pattern is absent or the detected
// percentage stays within tolerance.
func (a *AdjustmentAuditor) Audit(text string) *Expense {
	match := adjustmentRegex.FindStringSubmatch(text)
	if match == nil {
		return nil
	}

	detected, ok := parsePercent(match[2])
	if !ok || detected <= a.officialIndex*a.tolerance {
		return nil
	}

	kind := AnomalyIPCExcess
	return &Expense{
		Description: "Reajuste Mensual de Gastos (Administración)",
		Category:    CategoryAdministration,
		Amount:      0,
		IsAnomaly:   true,
		AnomalyKind: &kind,
		AIComment: "ALERTA: El reajuste aplicado (" + formatPercent(detected) +
			"%) excede significativamente el IPC oficial (" + formatPercent(a.officialIndex) + "%).",
	}
}

// parsePercent accepts a comma as decimal separator and tolerates trailing
// garbage by parsing the longest valid numeric prefix, e.g. "2.5.1" -> 2.5.
func parsePercent(token string) (float64, bool) {
	token = strings.Replace(token, ",", ".", 1)

	for end := len(token); end > 0; end-- {
		if v, err := strconv.ParseFloat(token[:end], 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
