package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dark-store/bukafresh/internal/pkg/apperr"
	"github.com/dark-store/bukafresh/internal/pkg/database"
	"github.com/dark-store/bukafresh/internal/pkg/ordering"
	"github.com/dark-store/bukafresh/internal/pkg/usercontext"
)

type placeOrderRequest struct {
	Items     []ordering.Line `json:"items"`
	AddressID uint            `json:"address_id"`
}

// HandlePlaceOrder places a one-off add-on order. Pricing is entirely
// server-side: the request carries product ids and quantities, nothing else.
func HandlePlaceOrder(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, apperr.Validation("Invalid request body"))
	}

	svc := ordering.NewServiceFromDB(database.GetDB())
	order, err := svc.Place(ordering.PlaceInput{
		UserID:    usercontext.GetUserID(c),
		Lines:     req.Items,
		AddressID: req.AddressID,
	})
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusCreated, order, "Order placed")
}

// HandleListOrders returns the user's orders; ?type=addon|subscription filters.
func HandleListOrders(c *fiber.Ctx) error {
	svc := ordering.NewServiceFromDB(database.GetDB())
	orders, err := svc.List(usercontext.GetUserID(c), c.Query("type"))
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, orders, "")
}

// HandleGetOrder returns one order.
func HandleGetOrder(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return failure(c, err)
	}
	svc := ordering.NewServiceFromDB(database.GetDB())
	order, err := svc.Get(usercontext.GetUserID(c), id)
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, order, "")
}

// HandleCancelOrder cancels an order that has not shipped.
func HandleCancelOrder(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return failure(c, err)
	}
	svc := ordering.NewServiceFromDB(database.GetDB())
	order, err := svc.Cancel(usercontext.GetUserID(c), id)
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, order, "Order cancelled")
}
