package collection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"changeset-manager/core/archive"
	"changeset-manager/core/batch"
	"changeset-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Handler handles HTTP requests for collections.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the collection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/collections")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Post("/:id/batches", h.HandleSubmit)
	group.Get("/:id/batches", h.HandleListPlans)
	group.Get("/:id/batches/:plan", h.HandleGetPlan)
}

// SubmitResponse is returned for an applied batch.
type SubmitResponse struct {
	Revision int64          `json:"revision"`
	Plan     *batch.PlanDoc `json:"plan"`
}

// HandleCreate creates a collection.
// @Summary Create Collection
// @Description Creates a collection with the given number of fresh items per section.
// @Tags collections
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Name and per-section counts"
// @Success 201 {object} Collection
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Negative count"
// @Router /collections [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	col, err := h.service.Create(c.Context(), req)
	if err != nil {
		return h.fail(c, l, "Create collection failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(col)
}

// HandleList lists collections.
// @Summary List Collections
// @Tags collections
// @Produce json
// @Success 200 {array} Collection
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collections [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	cols, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "List collections failed", err)
	}
	return c.JSON(cols)
}

// HandleGet fetches a collection.
// @Summary Get Collection
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} Collection
// @Failure 404 {object} map[string]string "Not Found"
// @Router /collections/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	col, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Get collection failed", err)
	}
	return c.JSON(col)
}

// HandleSubmit applies a batch of edits to a collection.
// @Summary Submit Batch
// @Description Validates a batch of section and item edits against the collection revision, applies it and returns the plan. Accepts JSON or YAML bodies.
// @Tags collections
// @Accept json
// @Accept x-yaml
// @Produce json
// @Param id path string true "Collection ID"
// @Param request body Submission true "Batch"
// @Success 200 {object} SubmitResponse
// @Failure 400 {object} map[string]string "Malformed batch"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Revision conflict"
// @Failure 422 {object} map[string]string "Rejected batch"
// @Router /collections/{id}/batches [post]
func (h *Handler) HandleSubmit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	sub, err := decodeSubmission(c.Body(), batch.FormatFromContentType(c.Get(fiber.HeaderContentType)))
	if err != nil {
		return h.fail(c, l, "Invalid batch document", err)
	}

	plan, col, err := h.service.Submit(c.Context(), id, *sub)
	if err != nil {
		return h.fail(c, l.With(zap.String("collection", id)), "Batch rejected", err)
	}
	return c.JSON(SubmitResponse{Revision: col.Revision, Plan: plan})
}

// HandleListPlans lists the archived plans of a collection.
// @Summary List Plans
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} map[string]interface{} "Plan ids"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /collections/{id}/batches [get]
func (h *Handler) HandleListPlans(c *fiber.Ctx) error {
	ids, err := h.service.Plans(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "List plans failed", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(fiber.Map{"plans": ids})
}

// HandleGetPlan fetches one archived plan.
// @Summary Get Plan
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Param plan path string true "Plan ID"
// @Success 200 {object} batch.PlanDoc
// @Failure 404 {object} map[string]string "Not Found"
// @Router /collections/{id}/batches/{plan} [get]
func (h *Handler) HandleGetPlan(c *fiber.Ctx) error {
	plan, err := h.service.Plan(c.Context(), c.Params("id"), c.Params("plan"))
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Get plan failed", err)
	}
	return c.JSON(plan)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	code := StatusFor(err)
	if code >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, archive.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrRevisionConflict):
		return fiber.StatusConflict
	case errors.Is(err, ErrInvalid), errors.Is(err, batch.ErrDecode):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrArchiveDisabled):
		return fiber.StatusNotImplemented
	case batch.IsRejected(err):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func decodeSubmission(body []byte, format batch.Format) (*Submission, error) {
	var sub Submission
	switch format {
	case batch.FormatYAML:
		if err := yaml.Unmarshal(body, &sub); err != nil {
			return nil, fmt.Errorf("%w: yaml: %w", batch.ErrDecode, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sub); err != nil {
			return nil, fmt.Errorf("%w: json: %w", batch.ErrDecode, err)
		}
	}
	return &sub, nil
}
