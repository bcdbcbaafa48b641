package forensic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forensik_documents_processed_total",
		Help: "Documents run through the forensic pipeline.",
	})

	expensesExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forensik_expenses_extracted_total",
		Help: "Expense line items mined from documents.",
	})

	anomaliesFlagged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forensik_anomalies_flagged_total",
		Help: "Expenses flagged as anomalous, by anomaly kind.",
	}, []string{"kind"})

	duplicateBatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forensik_duplicate_batches_rejected_total",
		Help: "Batches rejected by the duplicate-period guard.",
	})
)
