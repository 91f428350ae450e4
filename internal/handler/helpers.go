package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/apierror"
	"github.com/noah-isme/campus-go-api/internal/authz"
	"github.com/noah-isme/campus-go-api/internal/middleware"
)

func parseQueryUint(c *fiber.Ctx, key string) (uint, error) {
	value := c.Query(key)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := c.Params(name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

// principal extracts the authenticated principal; a missing principal is a
// 401 regardless of which route asked.
func principal(c *fiber.Ctx) (authz.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok {
		return authz.Principal{}, apierror.Unauthenticated()
	}
	return p, nil
}

// respondError routes every failure through the error normalizer exactly
// once, at the handler boundary.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	status, body := apierror.Normalize(requestLogger(logger, c), err)
	return c.Status(status).JSON(body)
}

func respondNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) zerolog.Logger {
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			return base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return base
}
