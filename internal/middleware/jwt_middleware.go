package middleware

import (
	"log"
	"strings"

	"github.com/asha0ahmed/rentnest/internal/models"
	"github.com/asha0ahmed/rentnest/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// On success the caller's user id and account type are stored in the
// request locals for subsequent handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		tokenString := parts[1]

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals("user_id", claims["user_id"])
		c.Locals("account_type", claims["account_type"])

		// Continue to the next handler
		return c.Next()
	}
}

// OwnerOnly gates owner-only operations on the caller's account type.
// It must run after AuthRequired.
func OwnerOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountType, _ := c.Locals("account_type").(string)
		if accountType != models.AccountTypeOwner {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Only owner accounts may manage listings",
			})
		}
		return c.Next()
	}
}

// CallerID extracts the authenticated user's id from the request locals.
func CallerID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}
