package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dark-store/bukafresh/internal/pkg/apperr"
)

func performRequest(t *testing.T, handler fiber.Handler, path string) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/test/:id?", handler)

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestFailureMapsErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperr.Validation("bad input"), fiber.StatusBadRequest},
		{"not found", apperr.NotFound("missing"), fiber.StatusNotFound},
		{"conflict", apperr.Conflict("duplicate"), fiber.StatusConflict},
		{"invalid state", apperr.InvalidState("wrong state"), fiber.StatusConflict},
		{"business", apperr.Business("not allowed"), fiber.StatusUnprocessableEntity},
		{"unknown", io.ErrUnexpectedEOF, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := performRequest(t, func(c *fiber.Ctx) error {
				return failure(c, tt.err)
			}, "/test")

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, "failed", body["status"])
			assert.Nil(t, body["data"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestFailureHidesInternalDetail(t *testing.T) {
	_, body := performRequest(t, func(c *fiber.Ctx) error {
		return failure(c, io.ErrUnexpectedEOF)
	}, "/test")
	assert.NotContains(t, body["message"], "EOF")
}

func TestSuccessEnvelope(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return success(c, fiber.StatusCreated, fiber.Map{"id": 7}, "created")
	}, "/test")

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "created", body["message"])
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 7, data["id"])
}

func TestParamUint(t *testing.T) {
	tests := []struct {
		path   string
		wantOK bool
	}{
		{"/test/42", true},
		{"/test/0", false},
		{"/test/abc", false},
		{"/test/-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, _ := performRequest(t, func(c *fiber.Ctx) error {
				id, err := paramUint(c, "id")
				if err != nil {
					return failure(c, err)
				}
				return success(c, fiber.StatusOK, fiber.Map{"id": id}, "")
			}, tt.path)

			if tt.wantOK {
				assert.Equal(t, fiber.StatusOK, status)
			} else {
				assert.Equal(t, fiber.StatusBadRequest, status)
			}
		})
	}
}
