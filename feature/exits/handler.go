package exits

import (
	"errors"

	"stock-reconciler/core/logger"
	"stock-reconciler/feature/exits/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the exits feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the exits routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/exits")
	group.Post("/reconcile", h.HandleReconcile)
	group.Get("/pending", h.HandlePending)
	group.Get("/report", h.HandleLastReport)
	group.Get("/archive/:key", h.HandleArchive)
}

// HandleReconcile triggers a reconciliation run.
// @Summary Trigger Exit Reconciliation
// @Description Restores warehouse stock for expired pending exits and deletes them. Use dry_run=true to preview eligible exits without mutating.
// @Tags exits
// @Accept json
// @Produce json
// @Param dry_run query boolean false "Report eligible exits without mutating"
// @Success 200 {object} reconcile.Report "Run Report"
// @Failure 409 {object} map[string]string "Run Already In Progress"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /exits/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	opts := reconcile.Options{DryRun: c.Query("dry_run") == "true"}

	l.Info("Reconciliation triggered via API", zap.Bool("dry_run", opts.DryRun))

	report, err := h.service.Reconcile(c.Context(), opts)
	if errors.Is(err, ErrRunInProgress) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": ErrRunInProgress.Error(),
		})
	}
	if err != nil {
		l.Error("Reconciliation run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandlePending lists pending exits.
// @Summary List Pending Exits
// @Description Returns all pending exits with their line items, soonest expiry first.
// @Tags exits
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Pending Exits"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /exits/pending [get]
func (h *Handler) HandlePending(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	exits, err := h.service.Pending(c.Context())
	if err != nil {
		l.Error("Failed to list pending exits", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"count": len(exits),
		"exits": exits,
	})
}

// HandleLastReport returns the most recent run's report.
// @Summary Last Reconciliation Report
// @Description Returns the report of the most recent completed run.
// @Tags exits
// @Accept json
// @Produce json
// @Success 200 {object} reconcile.Report "Run Report"
// @Failure 404 {object} map[string]string "No Run Yet"
// @Router /exits/report [get]
func (h *Handler) HandleLastReport(c *fiber.Ctx) error {
	report := h.service.LastReport()
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no reconciliation run has completed yet",
		})
	}
	return c.JSON(report)
}

// HandleArchive returns an archived exit snapshot.
// @Summary Fetch Archived Exit
// @Description Returns the JSON snapshot archived when the exit was reconciled. The key is "<reference>-<id>".
// @Tags exits
// @Accept json
// @Produce json
// @Param key path string true "Archive key"
// @Success 200 {object} reconcile.ArchiveRecord "Archived Exit"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /exits/archive/{key} [get]
func (h *Handler) HandleArchive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	key := c.Params("key")

	data, err := h.service.FetchArchive(c.Context(), key)
	if err != nil {
		l.Warn("Archive lookup failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "archive record not found"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}
