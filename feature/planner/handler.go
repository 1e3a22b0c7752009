package planner

import (
	"bytes"

	"changeset-manager/core/batch"
	"changeset-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles planning requests.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// RegisterRoutes registers the planner routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/changesets/plan", h.HandlePlan)
}

// HandlePlan validates a batch and renders its plan.
// @Summary Plan Change Set
// @Description Validates a batch of section and item edits against old and new counts and returns the coalesced plan.
// @Tags changesets
// @Accept json
// @Accept x-yaml
// @Produce json
// @Param request body batch.Request true "Batch document"
// @Success 200 {object} batch.PlanDoc
// @Failure 400 {object} map[string]string "Malformed document"
// @Failure 422 {object} map[string]string "Rejected batch"
// @Router /changesets/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	req, err := batch.Decode(bytes.NewReader(c.Body()), batch.FormatFromContentType(c.Get(fiber.HeaderContentType)))
	if err != nil {
		l.Warn("Invalid batch document", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	doc, _, err := batch.Plan(req)
	if err != nil {
		if batch.IsRejected(err) {
			l.Info("Batch rejected", zap.Error(err))
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error(), "violations": violations(err)})
		}
		l.Error("Planning failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Debug("Batch planned", zap.String("plan", doc.ID), zap.Int("groups", len(doc.Groups)))
	return c.JSON(doc)
}

// violations flattens a joined validation error into one message per problem.
func violations(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
