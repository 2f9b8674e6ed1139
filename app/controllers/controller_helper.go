package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dark-store/bukafresh/internal/pkg/apperr"
)

// Session keys shared with the auth middleware.
const (
	SessionKeyUserID    = "user_id"
	SessionKeyEmail     = "user_email"
	SessionKeyFirstName = "user_first_name"
	SessionKeyPhone     = "user_phone"
)

// success writes the standard response envelope.
func success(c *fiber.Ctx, httpStatus int, data interface{}, message string) error {
	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  "success",
		"data":    data,
		"message": message,
	})
}

// failure maps a service error onto the envelope with the right HTTP status.
func failure(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Something went wrong"

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Kind {
		case apperr.KindValidation:
			status = fiber.StatusBadRequest
		case apperr.KindNotFound:
			status = fiber.StatusNotFound
		case apperr.KindConflict, apperr.KindInvalidState:
			status = fiber.StatusConflict
		case apperr.KindBusiness:
			status = fiber.StatusUnprocessableEntity
		}
	} else {
		log.Printf("unhandled error: %v", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  "failed",
		"data":    nil,
		"message": message,
	})
}

// paramUint parses a numeric route parameter.
func paramUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || v == 0 {
		return 0, apperr.Validation("Invalid " + name)
	}
	return uint(v), nil
}
