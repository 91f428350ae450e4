package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// DashboardHandler exposes the role-specific stats endpoint.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches dashboard endpoints to the router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/stats", h.stats)
}

func (h *DashboardHandler) stats(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	stats, err := h.service.GetStats(c.Context(), p)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "dashboard stats retrieved", stats)
}
