package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-reconciler/core/archive"
	"stock-reconciler/core/clock"
	"stock-reconciler/core/metrics"
	"stock-reconciler/feature/exits/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultBatchLimit bounds a run when no limit is configured.
const defaultBatchLimit = 500

// Reconciler reverses expired pending exits: restores the reserved stock to
// the warehouse rows and deletes the exit with its line items, one
// transaction per exit.
type Reconciler struct {
	db         *gorm.DB
	logger     *zap.Logger
	clock      clock.Clock
	metrics    *metrics.Metrics
	archiver   archive.Archiver
	batchLimit int
}

// Option customizes a Reconciler.
type Option func(*Reconciler)

// WithClock overrides the wall clock, mainly for tests.
func WithClock(c clock.Clock) Option {
	return func(r *Reconciler) { r.clock = c }
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Reconciler) { r.metrics = m }
}

// WithArchiver attaches an audit archiver for reconciled exits.
func WithArchiver(a archive.Archiver) Option {
	return func(r *Reconciler) { r.archiver = a }
}

// WithBatchLimit caps the number of exits processed per run.
func WithBatchLimit(n int) Option {
	return func(r *Reconciler) { r.batchLimit = n }
}

// New creates a Reconciler over the given database.
func New(db *gorm.DB, logger *zap.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		db:         db,
		logger:     logger,
		clock:      clock.System(),
		batchLimit: defaultBatchLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.batchLimit <= 0 {
		r.batchLimit = defaultBatchLimit
	}
	return r
}

// Run executes one reconciliation pass. A failing exit rolls back its own
// transaction, is counted in the report and never blocks the remaining
// exits. Run itself errors only when the eligibility query fails.
func (r *Reconciler) Run(ctx context.Context, opts Options) (*Report, error) {
	now := r.clock.Now()
	report := &Report{
		RunID:     uuid.NewString(),
		DryRun:    opts.DryRun,
		StartedAt: now,
	}
	l := r.logger.With(zap.String("run_id", report.RunID))

	l.Info("Exit reconciliation started",
		zap.Time("cutoff", now),
		zap.Bool("dry_run", opts.DryRun),
	)

	exits, err := r.findExpired(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired exits: %w", err)
	}
	report.Found = len(exits)

	if len(exits) == 0 {
		report.FinishedAt = r.clock.Now()
		l.Info("No expired pending exits found")
		r.observe(report)
		return report, nil
	}

	l.Info("Expired pending exits found", zap.Int("count", len(exits)))

	for i := range exits {
		exit := exits[i]
		outcome := ExitOutcome{ExitID: exit.ID, Reference: exit.Reference}

		if opts.DryRun {
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		if err := r.reconcileExit(ctx, exit, &outcome, l); err != nil {
			outcome.Error = err.Error()
			report.Failed++
			l.Error("Exit reconciliation failed, transaction rolled back",
				zap.Uint("exit_id", exit.ID),
				zap.String("reference", exit.Reference),
				zap.Error(err),
			)
		} else {
			report.Processed++
			report.ItemsRestored += outcome.ItemsRestored
			report.ItemsSkipped += outcome.ItemsSkipped
			report.QuantityRestored += outcome.QuantityRestored
			l.Info("Exit reconciled",
				zap.Uint("exit_id", exit.ID),
				zap.String("reference", exit.Reference),
				zap.Int("items_restored", outcome.ItemsRestored),
				zap.Int("items_skipped", outcome.ItemsSkipped),
				zap.Int("quantity_restored", outcome.QuantityRestored),
			)
			r.archiveExit(ctx, exit, outcome, report.RunID, l)
		}

		report.Outcomes = append(report.Outcomes, outcome)
	}

	report.FinishedAt = r.clock.Now()
	l.Info("Exit reconciliation finished",
		zap.String("outcome", report.Outcome()),
		zap.Int("found", report.Found),
		zap.Int("processed", report.Processed),
		zap.Int("failed", report.Failed),
	)
	r.observe(report)

	return report, nil
}

// findExpired selects pending exits whose expiry is in the past, with their
// line items, oldest expiry first so retries drain deterministically.
func (r *Reconciler) findExpired(ctx context.Context, now time.Time) ([]models.StockExit, error) {
	var exits []models.StockExit
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ? AND pending_expires_at IS NOT NULL AND pending_expires_at < ?", models.StatusPending, now).
		Order("pending_expires_at ASC, id ASC").
		Limit(r.batchLimit).
		Find(&exits).Error
	if err != nil {
		return nil, err
	}
	return exits, nil
}

// reconcileExit restores stock for every line item, then deletes the items
// and the header, all inside one transaction. Any error rolls the whole exit
// back; a missing warehouse row is a warning, not an error.
func (r *Reconciler) reconcileExit(ctx context.Context, exit models.StockExit, outcome *ExitOutcome, l *zap.Logger) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range exit.Items {
			var stock models.WarehouseStock
			err := lockForUpdate(tx).
				Where("product_id = ? AND warehouse = ?", item.ProductID, item.Warehouse).
				First(&stock).Error

			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Data-integrity signal: the reservation referenced a stock
				// row that no longer exists. Skip restoring this line.
				outcome.ItemsSkipped++
				l.Warn("Warehouse stock row missing, line item skipped",
					zap.Uint("exit_id", exit.ID),
					zap.Uint("product_id", item.ProductID),
					zap.String("warehouse", item.Warehouse),
					zap.Int("quantity", item.Quantity),
				)
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to lock stock row (product %d, warehouse %s): %w",
					item.ProductID, item.Warehouse, err)
			}

			err = tx.Model(&stock).
				Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
			if err != nil {
				return fmt.Errorf("failed to restore stock (product %d, warehouse %s): %w",
					item.ProductID, item.Warehouse, err)
			}

			outcome.ItemsRestored++
			outcome.QuantityRestored += item.Quantity
		}

		if err := tx.Where("exit_id = ?", exit.ID).Delete(&models.StockExitItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete exit items: %w", err)
		}
		if err := tx.Delete(&models.StockExit{}, exit.ID).Error; err != nil {
			return fmt.Errorf("failed to delete exit: %w", err)
		}

		return nil
	})
}

// archiveExit writes the audit snapshot after a successful commit. The rows
// are already gone from the store, so the in-memory copy is archived; a
// failure here is a warning and never affects the run.
func (r *Reconciler) archiveExit(ctx context.Context, exit models.StockExit, outcome ExitOutcome, runID string, l *zap.Logger) {
	if r.archiver == nil {
		return
	}

	record := ArchiveRecord{
		Exit:       exit,
		Outcome:    outcome,
		RunID:      runID,
		ArchivedAt: r.clock.Now(),
	}
	key := fmt.Sprintf("%s-%d", exit.Reference, exit.ID)

	if err := r.archiver.Archive(ctx, key, record); err != nil {
		l.Warn("Failed to archive reconciled exit",
			zap.Uint("exit_id", exit.ID),
			zap.String("reference", exit.Reference),
			zap.Error(err),
		)
	}
}

func (r *Reconciler) observe(report *Report) {
	if r.metrics == nil || report.DryRun {
		return
	}
	r.metrics.ObserveRun(report.Outcome(), report.Found, report.Processed,
		report.Failed, report.QuantityRestored, report.ItemsSkipped)
}

// lockForUpdate adds a row-level exclusive lock on dialects that support it.
// SQLite has no SELECT ... FOR UPDATE; its write transactions serialize on
// the database anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
