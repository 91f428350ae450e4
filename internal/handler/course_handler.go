package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// CourseHandler wires course HTTP routes, including self-enrollment.
type CourseHandler struct {
	service     service.CourseService
	enrollments service.EnrollmentService
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service service.CourseService, enrollments service.EnrollmentService, validator *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service:     service,
		enrollments: enrollments,
		validator:   validator,
		logger:      logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register attaches course endpoints to the router group. The enroll route
// takes an extra middleware chain so the rate limiter can be wired in.
func (h *CourseHandler) Register(router fiber.Router, enrollMiddleware ...fiber.Handler) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)

	enrollHandlers := append(append([]fiber.Handler{}, enrollMiddleware...), h.enroll)
	router.Post("/:id/enroll", enrollHandlers...)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	courses, err := h.service.List(c.Context(), p)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CourseHandler) get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	course, err := h.service.Get(c.Context(), p, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course retrieved", course)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.service.Create(c.Context(), p, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course created", course)
}

func (h *CourseHandler) update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CourseUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.service.Update(c.Context(), p, id, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course updated", course)
}

func (h *CourseHandler) delete(c *fiber.Ctx) error {
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

func (h *CourseHandler) enroll(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	enrollment, err := h.enrollments.Enroll(c.Context(), p, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "enrolled", enrollment)
}
