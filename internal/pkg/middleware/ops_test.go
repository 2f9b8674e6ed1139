package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opsRequest(t *testing.T, key string) int {
	t.Helper()
	app := fiber.New()
	app.Post("/ops/ping", RequireOpsKey, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("POST", "/ops/ping", nil)
	if key != "" {
		req.Header.Set(OpsKeyHeader, key)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestRequireOpsKey(t *testing.T) {
	t.Setenv("OPS_API_KEY", "sw0rdfish")

	assert.Equal(t, fiber.StatusOK, opsRequest(t, "sw0rdfish"))
	assert.Equal(t, fiber.StatusUnauthorized, opsRequest(t, "wrong"))
	assert.Equal(t, fiber.StatusUnauthorized, opsRequest(t, ""))
}

func TestRequireOpsKeyLockedWhenUnset(t *testing.T) {
	t.Setenv("OPS_API_KEY", "")

	assert.Equal(t, fiber.StatusUnauthorized, opsRequest(t, ""))
	assert.Equal(t, fiber.StatusUnauthorized, opsRequest(t, "anything"))
}
