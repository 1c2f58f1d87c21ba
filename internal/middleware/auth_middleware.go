package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/planningkart/planningkart/internal/models"
	jwtPkg "github.com/planningkart/planningkart/pkg/jwt"
)

func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}

		claims, err := jwtPkg.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid or expired token"))
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token claims"))
		}

		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)

		c.Locals("userID", uint(userID))
		c.Locals("userEmail", email)
		c.Locals("userRole", role)

		return c.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after
// AuthMiddleware.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("userRole").(string)
		for _, allowed := range roles {
			if role == string(allowed) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You don't have permission to perform this action"))
	}
}
