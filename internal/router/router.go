package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/campus-go-api/internal/config"
	"github.com/noah-isme/campus-go-api/internal/handler"
	"github.com/noah-isme/campus-go-api/internal/middleware"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/observability"
	"github.com/noah-isme/campus-go-api/internal/ratelimit"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	CourseHandler     *handler.CourseHandler
	AssignmentHandler *handler.AssignmentHandler
	DashboardHandler  *handler.DashboardHandler
	ActivityHandler   *handler.ActivityHandler
	SeedHandler       *handler.SeedHandler
	JWTMiddleware     fiber.Handler
	RateLimiter       *ratelimit.Limiter
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Enrollments and submissions are the write-heavy student paths and get
	// the per-principal rate limit gate.
	var limitGate fiber.Handler
	if deps.RateLimiter != nil {
		limitGate = middleware.RateLimit(deps.RateLimiter, "write", cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	if deps.CourseHandler != nil {
		courses := api.Group("/courses", jwtMiddleware)
		if limitGate != nil {
			deps.CourseHandler.Register(courses, limitGate)
		} else {
			deps.CourseHandler.Register(courses)
		}
	}

	if deps.AssignmentHandler != nil {
		assignments := api.Group("/assignments", jwtMiddleware)
		if limitGate != nil {
			deps.AssignmentHandler.Register(assignments, limitGate)
		} else {
			deps.AssignmentHandler.Register(assignments)
		}
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", jwtMiddleware)
		deps.DashboardHandler.Register(dashboard)
	}

	admin := api.Group("/admin")
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(admin.Group("", jwtMiddleware, middleware.RequireRole(models.RoleAdmin)))
	}
	if deps.SeedHandler != nil {
		// Seed access is gated by its own token, not by a principal.
		deps.SeedHandler.Register(admin)
	}
}
