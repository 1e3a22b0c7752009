package integrity

import (
	"errors"

	"changeset-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/database", h.HandleDatabaseCheck)
	group.Get("/archive", h.HandleArchiveCheck)
	group.Post("/archive/purge", h.HandleArchivePurge)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Checks the archive bucket and the collections table schema.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	if st, err := h.service.CheckStorage(c.Context()); err != nil {
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = st
	}

	if db, err := h.service.CheckDatabase(); err != nil {
		report["database"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["database"] = db
	}

	return c.JSON(report)
}

// HandleStorageCheck checks and optionally creates the archive bucket.
// @Summary Check Storage
// @Description Checks that the archive bucket exists and counts archived plans. Optionally creates the bucket.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} checks.StorageReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckStorage(c.Context())
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Exists && c.Query("fix") == "true" {
		l.Info("Creating missing archive bucket", zap.String("bucket", report.Bucket))
		if err := h.service.FixStorage(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create bucket",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "fixed", "bucket": report.Bucket})
	}

	return c.JSON(report)
}

// HandleDatabaseCheck checks the database schema.
// @Summary Check Database Schema
// @Description Validates that the collections table matches the model (columns, types).
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport
// @Failure 503 {object} map[string]string "Database unavailable"
// @Router /integrity/database [get]
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckDatabase()
	if err != nil {
		l.Error("Database check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Matched {
		l.Warn("Database schema mismatches found", zap.Strings("errors", report.Errors))
	}
	return c.JSON(report)
}

// HandleArchiveCheck reconciles collections with archived plans.
// @Summary Reconcile Archive
// @Description Compares stored collections with archived plans and reports orphans and plan count mismatches.
// @Tags integrity
// @Produce json
// @Param purge query boolean false "Include planned purge actions"
// @Success 200 {object} reconcile.Plan
// @Failure 503 {object} map[string]string "Database unavailable"
// @Router /integrity/archive [get]
func (h *Handler) HandleArchiveCheck(c *fiber.Ctx) error {
	return h.reconcile(c, c.QueryBool("purge"), false)
}

// HandleArchivePurge deletes the archived plans of collections missing in
// the database.
// @Summary Purge Orphaned Plans
// @Description Deletes archived plans whose collection no longer exists. Requires confirm=true.
// @Tags integrity
// @Produce json
// @Param confirm query boolean true "Confirm deletion"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Not confirmed"
// @Router /integrity/archive/purge [post]
func (h *Handler) HandleArchivePurge(c *fiber.Ctx) error {
	if !c.QueryBool("confirm") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "purge requires confirm=true"})
	}
	return h.reconcile(c, true, true)
}

func (h *Handler) reconcile(c *fiber.Ctx, purge, confirm bool) error {
	l := logger.WithRayID(h.service.logger, c)

	plan, executed, err := h.service.ReconcileArchive(c.Context(), purge, confirm)
	if errors.Is(err, ErrNoDatabase) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Archive reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "purged": executed})
	}

	if confirm {
		return c.JSON(fiber.Map{"purged": executed, "summary": plan.Summary})
	}
	return c.JSON(plan)
}
