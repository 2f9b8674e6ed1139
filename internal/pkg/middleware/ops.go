package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/dark-store/bukafresh/internal/pkg/env"
)

// OpsKeyHeader carries the shared key for operational endpoints.
const OpsKeyHeader = "X-Ops-Key"

// RequireOpsKey guards the operational surface with the OPS_API_KEY shared
// secret. An unset key keeps the surface locked rather than open.
func RequireOpsKey(c *fiber.Ctx) error {
	key := env.GetEnv("OPS_API_KEY", "")
	if key == "" || subtle.ConstantTimeCompare([]byte(c.Get(OpsKeyHeader)), []byte(key)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "failed",
			"message": "Invalid ops key",
		})
	}
	return c.Next()
}
