package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// RequireRole ensures the authenticated principal holds one of the allowed
// roles. It must run after JWTProtected.
func RequireRole(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		if role.Valid() {
			allowed[role] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := Principal(c)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		if _, ok := allowed[principal.Role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
