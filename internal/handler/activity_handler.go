package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/repository"
	"github.com/noah-isme/campus-go-api/internal/service"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// ActivityHandler exposes the admin audit trail feed.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register attaches the activity feed endpoint to the router group.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("/activity", h.feed)
}

func (h *ActivityHandler) feed(c *fiber.Ctx) error {
	filter := repository.ActivityLogFilter{
		Action:     strings.TrimSpace(c.Query("action")),
		EntityType: strings.TrimSpace(c.Query("entity_type")),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 50),
	}

	feed, err := h.service.Feed(c.Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "activity retrieved", feed)
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
