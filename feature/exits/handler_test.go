package exits

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"stock-reconciler/feature/exits/models"
	"stock-reconciler/feature/exits/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubFetcher struct {
	data map[string][]byte
}

func (f *stubFetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	if data, ok := f.data[key]; ok {
		return data, nil
	}
	return nil, errors.New("not found")
}

func setupTestApp(t *testing.T, dbName string) (*fiber.App, *Service, *gorm.DB) {
	svc, db, _ := setupTestService(t, dbName)
	app := fiber.New()
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, svc, db
}

func TestHandleReconcile(t *testing.T) {
	app, _, db := setupTestApp(t, "h_reconcile")
	require.NoError(t, db.Create(&models.StockExit{
		ID: 1, Reference: "SAL-001", Status: models.StatusPending,
		PendingExpiresAt: func() *time.Time { ts := testNow.Add(-time.Hour); return &ts }(),
		Items:            []models.StockExitItem{{ProductID: 7, Warehouse: "A", Quantity: 5}},
	}).Error)
	require.NoError(t, db.Create(&models.WarehouseStock{ProductID: 7, Warehouse: "A", Quantity: 10}).Error)

	resp, err := app.Test(httptest.NewRequest("POST", "/exits/reconcile", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 1, body["processed"])
	assert.EqualValues(t, 5, body["quantity_restored"])
}

func TestHandleReconcile_Conflict(t *testing.T) {
	app, svc, _ := setupTestApp(t, "h_conflict")

	release, err := svc.lease.Acquire(context.Background(), "exits")
	require.NoError(t, err)
	defer release()

	resp, err := app.Test(httptest.NewRequest("POST", "/exits/reconcile", nil))
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestHandleReconcile_DryRun(t *testing.T) {
	app, _, db := setupTestApp(t, "h_dryrun")
	require.NoError(t, db.Create(&models.StockExit{
		ID: 1, Reference: "SAL-001", Status: models.StatusPending,
		PendingExpiresAt: func() *time.Time { ts := testNow.Add(-time.Hour); return &ts }(),
	}).Error)

	resp, err := app.Test(httptest.NewRequest("POST", "/exits/reconcile?dry_run=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["dry_run"])

	// Nothing deleted
	var n int64
	db.Model(&models.StockExit{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestHandlePending(t *testing.T) {
	app, _, db := setupTestApp(t, "h_pending")
	require.NoError(t, db.Create(&models.StockExit{ID: 1, Reference: "SAL-001", Status: models.StatusPending}).Error)
	require.NoError(t, db.Create(&models.StockExit{ID: 2, Reference: "SAL-002", Status: models.StatusCompleted}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/exits/pending", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 1, body["count"])
}

func TestHandleLastReport(t *testing.T) {
	app, svc, _ := setupTestApp(t, "h_report")

	// No run yet
	resp, err := app.Test(httptest.NewRequest("GET", "/exits/report", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	_, err = svc.Reconcile(context.Background(), reconcile.Options{})
	require.NoError(t, err)

	resp, err = app.Test(httptest.NewRequest("GET", "/exits/report", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandleArchive(t *testing.T) {
	svc, _, _ := setupTestService(t, "h_archive")
	svc.fetcher = &stubFetcher{data: map[string][]byte{
		"SAL-042-42": []byte(`{"run_id":"abc"}`),
	}}
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/exits/archive/SAL-042-42", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	data, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"run_id":"abc"}`, string(data))

	resp, err = app.Test(httptest.NewRequest("GET", "/exits/archive/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
