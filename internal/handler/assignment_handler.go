package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// AssignmentHandler wires assignment HTTP routes, including submissions.
type AssignmentHandler struct {
	service     service.AssignmentService
	submissions service.SubmissionService
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service service.AssignmentService, submissions service.SubmissionService, validator *validator.Validate, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service:     service,
		submissions: submissions,
		validator:   validator,
		logger:      logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches assignment endpoints to the router group. The submit
// route takes an extra middleware chain so the rate limiter can be wired in.
func (h *AssignmentHandler) Register(router fiber.Router, submitMiddleware ...fiber.Handler) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)

	submitHandlers := append(append([]fiber.Handler{}, submitMiddleware...), h.submit)
	router.Post("/:id/submit", submitHandlers...)
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	courseID, err := parseQueryUint(c, "courseId")
	if err != nil || courseID == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "course id is required")
	}

	assignments, err := h.service.ListByCourse(c.Context(), p, courseID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignment, err := h.service.Get(c.Context(), p, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment retrieved", assignment)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.Create(c.Context(), p, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment created", assignment)
}

func (h *AssignmentHandler) update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AssignmentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.Update(c.Context(), p, id, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment updated", assignment)
}

func (h *AssignmentHandler) delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), p, id); err != nil {
		return respondError(c, h.logger, err)
	}

	return respondNoContent(c)
}

func (h *AssignmentHandler) submit(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	// Optional attachment; JSON-only submissions carry none.
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	submission, err := h.submissions.Submit(c.Context(), p, id, payload, file)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submission stored", submission)
}
