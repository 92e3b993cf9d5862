package reconcile

import (
	"time"

	"stock-reconciler/feature/exits/models"
)

// ExitOutcome records what happened to a single expired exit.
type ExitOutcome struct {
	// ExitID is the exit header identifier.
	ExitID uint `json:"exit_id"`

	// Reference is the human-readable exit reference.
	Reference string `json:"reference"`

	// ItemsRestored counts line items whose stock was incremented.
	ItemsRestored int `json:"items_restored"`

	// ItemsSkipped counts line items with no matching warehouse stock row.
	ItemsSkipped int `json:"items_skipped"`

	// QuantityRestored is the total stock quantity returned to warehouses.
	QuantityRestored int `json:"quantity_restored"`

	// Error is the rollback reason when the exit's transaction failed.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the exit's transaction rolled back.
func (o ExitOutcome) Failed() bool {
	return o.Error != ""
}

// Report aggregates a single reconciliation run.
type Report struct {
	// RunID uniquely identifies the run in logs and archives.
	RunID string `json:"run_id"`

	// DryRun indicates no mutations were performed.
	DryRun bool `json:"dry_run"`

	// StartedAt and FinishedAt bound the run (UTC).
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Found is the number of eligible exits selected.
	Found int `json:"found"`

	// Processed counts exits fully reconciled (committed).
	Processed int `json:"processed"`

	// Failed counts exits whose transaction rolled back.
	Failed int `json:"failed"`

	// ItemsRestored, ItemsSkipped and QuantityRestored aggregate the
	// per-exit outcomes.
	ItemsRestored    int `json:"items_restored"`
	ItemsSkipped     int `json:"items_skipped"`
	QuantityRestored int `json:"quantity_restored"`

	// Outcomes contains the per-exit results in processing order.
	Outcomes []ExitOutcome `json:"outcomes"`
}

// Outcome classifies the run for metrics and logs.
func (r *Report) Outcome() string {
	switch {
	case r.Found == 0:
		return "empty"
	case r.Failed == 0:
		return "success"
	case r.Processed == 0:
		return "failed"
	default:
		return "partial"
	}
}

// ArchiveRecord is the snapshot written to object storage for a reconciled
// exit, preserving the deleted rows and the restoration outcome.
type ArchiveRecord struct {
	Exit       models.StockExit `json:"exit"`
	Outcome    ExitOutcome      `json:"outcome"`
	RunID      string           `json:"run_id"`
	ArchivedAt time.Time        `json:"archived_at"`
}

// Options controls a single run.
type Options struct {
	// DryRun reports eligible exits without mutating anything.
	DryRun bool
}
