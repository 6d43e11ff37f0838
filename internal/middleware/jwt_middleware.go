package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"inventario/internal/services"
)

// Locals set on every authenticated request.
const (
	LocalOperatorID = "operator_id"
	LocalUsername   = "username"
)

// AuthRequired is a Fiber middleware that rejects requests without a valid operator token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || scheme != "Bearer" || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(LocalOperatorID, claims["operator_id"])
		c.Locals(LocalUsername, claims["username"])
		return c.Next()
	}
}
