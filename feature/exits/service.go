package exits

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"stock-reconciler/core/runlock"
	"stock-reconciler/feature/exits/models"
	"stock-reconciler/feature/exits/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// jobName keys the run lease shared by the scheduler, CLI and HTTP triggers.
const jobName = "exits"

// ErrRunInProgress is returned when a reconciliation run is already holding
// the lease. It is an expected outcome, not a failure.
var ErrRunInProgress = errors.New("a reconciliation run is already in progress")

// Fetcher retrieves archived exit snapshots.
type Fetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// Service coordinates reconciliation runs and read access for the feature.
type Service struct {
	db         *gorm.DB
	logger     *zap.Logger
	reconciler *reconcile.Reconciler
	lease      runlock.Lease
	fetcher    Fetcher

	mu   sync.RWMutex
	last *reconcile.Report
}

// NewService creates the exits service. fetcher may be nil when object
// storage is not configured.
func NewService(db *gorm.DB, logger *zap.Logger, reconciler *reconcile.Reconciler, lease runlock.Lease, fetcher Fetcher) *Service {
	return &Service{
		db:         db,
		logger:     logger,
		reconciler: reconciler,
		lease:      lease,
		fetcher:    fetcher,
	}
}

// Reconcile executes one reconciliation run under the job lease. A
// concurrent caller gets ErrRunInProgress instead of a second run.
func (s *Service) Reconcile(ctx context.Context, opts reconcile.Options) (*reconcile.Report, error) {
	release, err := s.lease.Acquire(ctx, jobName)
	if errors.Is(err, runlock.ErrHeld) {
		s.logger.Info("Reconciliation trigger ignored, run already in progress")
		return nil, ErrRunInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lease: %w", err)
	}
	defer release()

	report, err := s.reconciler.Run(ctx, opts)
	if err != nil {
		return nil, err
	}

	if !opts.DryRun {
		s.mu.Lock()
		s.last = report
		s.mu.Unlock()
	}

	return report, nil
}

// Pending lists pending exits with their line items, soonest expiry first.
// Exits without an expiry sort last.
func (s *Service) Pending(ctx context.Context) ([]models.StockExit, error) {
	var exits []models.StockExit
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("status = ?", models.StatusPending).
		Order("pending_expires_at IS NULL, pending_expires_at ASC, id ASC").
		Find(&exits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending exits: %w", err)
	}
	return exits, nil
}

// LastReport returns the most recent non-dry run's report, or nil before the
// first run.
func (s *Service) LastReport() *reconcile.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// FetchArchive retrieves an archived exit snapshot by key.
func (s *Service) FetchArchive(ctx context.Context, key string) ([]byte, error) {
	if s.fetcher == nil {
		return nil, errors.New("archive storage is not configured")
	}
	return s.fetcher.Fetch(ctx, key)
}
