package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dark-store/bukafresh/internal/pkg/database"
	"github.com/dark-store/bukafresh/internal/pkg/delivery"
	"github.com/dark-store/bukafresh/internal/pkg/usercontext"
)

// HandleListDeliveries returns the user's scheduled and past deliveries.
func HandleListDeliveries(c *fiber.Ctx) error {
	svc := delivery.NewServiceFromDB(database.GetDB())
	deliveries, err := svc.List(usercontext.GetUserID(c))
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, deliveries, "")
}

// HandleTrackDelivery resolves a tracking number for the logged-in user.
func HandleTrackDelivery(c *fiber.Ctx) error {
	svc := delivery.NewServiceFromDB(database.GetDB())
	d, err := svc.Track(usercontext.GetUserID(c), c.Params("tracking_number"))
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, d, "")
}
