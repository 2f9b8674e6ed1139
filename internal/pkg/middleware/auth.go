package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dark-store/bukafresh/internal/pkg/usercontext"
)

// RequireAuth guards API routes that need a logged-in session and answers
// JSON 401 when the session is missing.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "failed",
			"message": "Login required",
		})
	}
	return c.Next()
}
