package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/campus-go-api/internal/authz"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/utils"
)

// PrincipalKey is the fiber locals key carrying the resolved principal.
const PrincipalKey = "principal"

// JWTProtected returns a middleware that validates HMAC bearer tokens and
// resolves the calling principal from the claims. Credential issuance
// happens elsewhere; this layer only consumes tokens.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		principal, ok := principalFromClaims(claims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		c.Locals(PrincipalKey, principal)

		return c.Next()
	}
}

// Principal returns the principal resolved for the request, if any.
func Principal(c *fiber.Ctx) (authz.Principal, bool) {
	value := c.Locals(PrincipalKey)
	if value == nil {
		return authz.Principal{}, false
	}
	principal, ok := value.(authz.Principal)
	if !ok || principal.ID == 0 {
		return authz.Principal{}, false
	}
	return principal, true
}

func principalFromClaims(claims jwt.MapClaims) (authz.Principal, bool) {
	userID := extractUserIDFromClaims(claims)
	if userID == nil || *userID == 0 {
		return authz.Principal{}, false
	}

	role, ok := models.ParseRole(extractStringClaim(claims, "role"))
	if !ok {
		return authz.Principal{}, false
	}

	return authz.Principal{
		ID:    *userID,
		Name:  extractStringClaim(claims, "name"),
		Email: extractStringClaim(claims, "email"),
		Role:  role,
	}, true
}

func extractUserIDFromClaims(claims jwt.MapClaims) *uint {
	keys := []string{"sub", "user_id", "id"}
	for _, key := range keys {
		if value, ok := claims[key]; ok {
			if normalized, err := normalizeUserID(value); err == nil {
				return &normalized
			}
		}
	}

	return nil
}

func normalizeUserID(value interface{}) (uint, error) {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(parsed), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported subject type")
	}
}

func extractStringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key]; ok {
		if str, ok := value.(string); ok {
			return strings.TrimSpace(str)
		}
	}
	return ""
}
