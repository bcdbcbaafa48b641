// Package forensic contains the extraction and anomaly engine for building
// expense statements: pattern-based line mining, statutory adjustment audits,
// supplier provenance tagging and period classification.
package forensic

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category classifies an extracted expense. Values are the Spanish labels
// persisted in the gastos table.
type Category string

const (
	CategoryRepairs        Category = "Reparaciones"
	CategoryAdministration Category = "Administración"
	CategoryInsurance      Category = "Seguros"
	CategoryUtilities      Category = "Suministros"
	CategoryMiscellaneous  Category = "Varios"
)

// AnomalyKind tags why an expense was flagged.
type AnomalyKind string

const (
	AnomalyCriticalOverprice AnomalyKind = "SOBREPRECIO_CRITICO"
	AnomalyModerateOverprice AnomalyKind = "SOBREPRECIO_MODERADO"
	// AnomalyIPCExcess flags an adjustment above tolerance. The stored tag
	// spelling is historical and must not change; dashboards key on it.
	AnomalyIPCExcess     AnomalyKind = "EXCESO_IPC_JUSTIFICADO"
	AnomalyOverLimitRate AnomalyKind = "INTERÉS_SOBRE_LÍMITE"
)

// Expense is one extracted, classified and anomaly-annotated line item.
// Amount is in CLP, which has no minor units.
type Expense struct {
	ID            uuid.UUID
	Description   string
	Category      Category
	Amount        int64
	IsAnomaly     bool
	AnomalyKind   *AnomalyKind
	AIComment     string
	SupplierTaxID *string
	CreatedAt     time.Time
}

// ExpenseUpdate carries the reviewer-editable fields. Anomaly fields are
// deliberately absent: verdicts are never hand-editable.
type ExpenseUpdate struct {
	Description string
	Category    Category
	Amount      int64
}

// DuplicatePeriodError is returned when a batch targets a period that is
// already stored. Callers distinguish it with errors.As to render a specific
// duplicate-period message.
type DuplicatePeriodError struct {
	Month string
	Year  int
}

func (e *DuplicatePeriodError) Error() string {
	return fmt.Sprintf("period %s %d already audited", e.Month, e.Year)
}
