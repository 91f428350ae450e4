package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/campus-go-api/internal/apierror"
	"github.com/noah-isme/campus-go-api/internal/ratelimit"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// RateLimit gates a route group through the fixed-window limiter, keyed by
// the authenticated principal (falling back to the client IP). Every
// response carries the X-RateLimit-* headers; exceeding the limit yields
// 429 without resetting the window early.
func RateLimit(limiter *ratelimit.Limiter, name string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}

	return func(c *fiber.Ctx) error {
		identifier := c.IP()
		if principal, ok := Principal(c); ok {
			identifier = strconv.FormatUint(uint64(principal.ID), 10)
		}

		result := limiter.Check(fmt.Sprintf("%s:%s", name, identifier), max, window)

		c.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Set("X-RateLimit-Reset", result.Reset.UTC().Format(time.RFC3339))

		if !result.Allowed {
			return utils.SendError(c, fiber.StatusTooManyRequests, apierror.TooManyRequests().Message)
		}

		return c.Next()
	}
}
