package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/app/repository"
	"github.com/dark-store/bukafresh/internal/pkg/apperr"
	"github.com/dark-store/bukafresh/internal/pkg/catalog"
	"github.com/dark-store/bukafresh/internal/pkg/checkout"
	"github.com/dark-store/bukafresh/internal/pkg/usercontext"
)

// HandleGetCheckout returns the current wizard state with computed totals.
func HandleGetCheckout(c *fiber.Ctx) error {
	state := checkout.Load(c)
	return success(c, fiber.StatusOK, checkoutView(c, state), "")
}

// HandleResetCheckout throws the wizard state away.
func HandleResetCheckout(c *fiber.Ctx) error {
	if err := checkout.Clear(c); err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, checkoutView(c, checkout.NewState()), "Checkout reset")
}

type selectPackageRequest struct {
	Tier      string `json:"tier"`
	Frequency string `json:"frequency"`
}

// HandleSelectPackage records the package choice (wizard step 1).
func HandleSelectPackage(c *fiber.Ctx) error {
	var req selectPackageRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, apperr.Validation("Invalid request body"))
	}

	pkg, ok := catalog.ByTier(req.Tier)
	if !ok {
		return failure(c, apperr.Validation("Unknown package: "+req.Tier))
	}

	state := checkout.Load(c)
	state.SelectPackage(pkg)
	if req.Frequency != "" {
		if !catalog.IsValidCycle(req.Frequency) {
			return failure(c, apperr.Validation("Delivery frequency must be weekly or monthly"))
		}
		state.SetDeliveryFrequency(req.Frequency)
	}
	if err := checkout.Save(c, state); err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, checkoutView(c, state), "Package selected")
}

type setAddressRequest struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Instructions string `json:"instructions"`
}

// HandleSetCheckoutAddress records the delivery address (wizard step 2).
func HandleSetCheckoutAddress(c *fiber.Ctx) error {
	var req setAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, apperr.Validation("Invalid request body"))
	}
	if strings.TrimSpace(req.Street) == "" || strings.TrimSpace(req.City) == "" || strings.TrimSpace(req.State) == "" {
		return failure(c, apperr.Validation("Street, city and state are required"))
	}

	state := checkout.Load(c)
	state.SetDeliveryAddress(models.Address{
		Street:       strings.TrimSpace(req.Street),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
		PostalCode:   strings.TrimSpace(req.PostalCode),
		Instructions: strings.TrimSpace(req.Instructions),
	})
	if err := checkout.Save(c, state); err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, checkoutView(c, state), "Address saved")
}

type stepRequest struct {
	Step int `json:"step"`
}

// HandleCheckoutStep moves the wizard: a body with a step number jumps
// (clamped), direction comes from the route otherwise.
func HandleCheckoutStep(c *fiber.Ctx) error {
	state := checkout.Load(c)

	switch c.Params("direction") {
	case "next":
		if !state.CanAdvance(state.Step, usercontext.IsLoggedIn(c)) {
			return failure(c, apperr.Business("Complete this step before continuing"))
		}
		state.NextStep()
	case "prev":
		state.PrevStep()
	default:
		var req stepRequest
		if err := c.BodyParser(&req); err != nil {
			return failure(c, apperr.Validation("Invalid request body"))
		}
		state.SetStep(req.Step)
	}

	if err := checkout.Save(c, state); err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, checkoutView(c, state), "")
}

type addOnRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// HandleAddCheckoutAddOn puts a product into the add-on cart. Adding a
// product already in the cart raises its quantity.
func HandleAddCheckoutAddOn(c *fiber.Ctx) error {
	var req addOnRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, apperr.Validation("Invalid request body"))
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	product, err := repository.GetGlobalRepositories().Product.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failure(c, apperr.Validation("Unknown product"))
		}
		return failure(c, err)
	}
	if !product.InStock {
		return failure(c, apperr.Business(product.Name+" is out of stock"))
	}

	state := checkout.Load(c)
	state.AddAddOn(checkout.AddOnItem{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  req.Quantity,
		Unit:      product.Unit,
		Price:     product.Price,
	})
	if err := checkout.Save(c, state); err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, checkoutView(c, state), "Added to cart")
}

type updateAddOnRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateCheckoutAddOn sets the quantity of a cart line; zero or less
// removes the line.
func HandleUpdateCheckoutAddOn(c *fiber.Ctx) error {
	var req updateAddOnRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, apperr.Validation("Invalid request body"))
	}

	state := checkout.Load(c)
	state.UpdateAddOnQuantity(c.Params("id"), req.Quantity)
	if err := checkout.Save(c, state); err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, checkoutView(c, state), "Cart updated")
}

// HandleRemoveCheckoutAddOn drops a cart line.
func HandleRemoveCheckoutAddOn(c *fiber.Ctx) error {
	state := checkout.Load(c)
	state.RemoveAddOn(c.Params("id"))
	if err := checkout.Save(c, state); err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, checkoutView(c, state), "Removed from cart")
}

func checkoutView(c *fiber.Ctx, state *checkout.State) fiber.Map {
	return fiber.Map{
		"state":         state,
		"monthly_total": state.MonthlyTotal(),
		"add_ons_total": state.AddOnsTotal(),
		"authenticated": usercontext.IsLoggedIn(c),
	}
}
