package exits

import (
	"context"
	"fmt"
	"testing"
	"time"

	"stock-reconciler/core/clock"
	"stock-reconciler/core/runlock"
	"stock-reconciler/feature/exits/models"
	"stock-reconciler/feature/exits/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func setupTestService(t *testing.T, dbName string) (*Service, *gorm.DB, runlock.Lease) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	logger := zap.NewNop()
	r := reconcile.New(db, logger, reconcile.WithClock(clock.Fixed(testNow)))
	lease := runlock.NewMemoryLease()
	svc := NewService(db, logger, r, lease, nil)
	return svc, db, lease
}

func expiredExit(id uint, ref string, hoursAgo int) models.StockExit {
	ts := testNow.Add(-time.Duration(hoursAgo) * time.Hour)
	return models.StockExit{
		ID: id, Reference: ref, Status: models.StatusPending, PendingExpiresAt: &ts,
	}
}

func TestService_Reconcile_RunsAndStoresReport(t *testing.T) {
	svc, db, _ := setupTestService(t, "svc_run")
	require.NoError(t, db.Create(&models.StockExit{
		ID: 1, Reference: "SAL-001", Status: models.StatusPending,
		PendingExpiresAt: func() *time.Time { ts := testNow.Add(-time.Hour); return &ts }(),
	}).Error)

	assert.Nil(t, svc.LastReport())

	report, err := svc.Reconcile(context.Background(), reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Same(t, report, svc.LastReport())
}

func TestService_Reconcile_DryRunDoesNotOverwriteReport(t *testing.T) {
	svc, db, _ := setupTestService(t, "svc_dryrun")
	require.NoError(t, db.Create(&models.StockExit{ID: 1, Reference: "SAL-001"}).Error)

	_, err := svc.Reconcile(context.Background(), reconcile.Options{DryRun: true})
	require.NoError(t, err)
	assert.Nil(t, svc.LastReport())
}

func TestService_Reconcile_RejectsConcurrentRun(t *testing.T) {
	svc, _, lease := setupTestService(t, "svc_lease")

	release, err := lease.Acquire(context.Background(), "exits")
	require.NoError(t, err)
	defer release()

	_, err = svc.Reconcile(context.Background(), reconcile.Options{})
	assert.ErrorIs(t, err, ErrRunInProgress)
}

func TestService_Reconcile_ReleasesLease(t *testing.T) {
	svc, _, _ := setupTestService(t, "svc_release")

	_, err := svc.Reconcile(context.Background(), reconcile.Options{})
	require.NoError(t, err)

	// The lease must be free again for the next run
	_, err = svc.Reconcile(context.Background(), reconcile.Options{})
	assert.NoError(t, err)
}

func TestService_Pending(t *testing.T) {
	svc, db, _ := setupTestService(t, "svc_pending")

	noExpiry := models.StockExit{ID: 3, Reference: "SAL-C", Status: models.StatusPending}
	require.NoError(t, db.Create(&noExpiry).Error)
	require.NoError(t, db.Create(&models.StockExit{
		ID: 4, Reference: "SAL-D", Status: models.StatusCompleted,
	}).Error)
	e1 := expiredExit(1, "SAL-B", 1)
	e2 := expiredExit(2, "SAL-A", 5)
	require.NoError(t, db.Create(&e1).Error)
	require.NoError(t, db.Create(&e2).Error)

	exits, err := svc.Pending(context.Background())
	require.NoError(t, err)

	// Soonest expiry first, no-expiry exits last, completed excluded
	require.Len(t, exits, 3)
	assert.Equal(t, "SAL-A", exits[0].Reference)
	assert.Equal(t, "SAL-B", exits[1].Reference)
	assert.Equal(t, "SAL-C", exits[2].Reference)
}

func TestService_FetchArchive_NotConfigured(t *testing.T) {
	svc, _, _ := setupTestService(t, "svc_archive")

	_, err := svc.FetchArchive(context.Background(), "SAL-001-1")
	assert.Error(t, err)
}
