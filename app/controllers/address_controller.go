package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/app/repository"
	"github.com/dark-store/bukafresh/internal/pkg/apperr"
	"github.com/dark-store/bukafresh/internal/pkg/usercontext"
)

type addressRequest struct {
	Label        string `json:"label"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Instructions string `json:"instructions"`
	IsDefault    bool   `json:"is_default"`
}

// HandleListAddresses returns the user's address book.
func HandleListAddresses(c *fiber.Ctx) error {
	addrs, err := repository.GetGlobalRepositories().Address.GetByUserID(usercontext.GetUserID(c))
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, addrs, "")
}

// HandleCreateAddress adds a delivery address.
func HandleCreateAddress(c *fiber.Ctx) error {
	var req addressRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, apperr.Validation("Invalid request body"))
	}

	addr := &models.Address{
		UserID:       usercontext.GetUserID(c),
		Label:        req.Label,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Instructions: req.Instructions,
		IsDefault:    req.IsDefault,
	}
	if err := addr.Validate(); err != nil {
		return failure(c, apperr.Validation(err.Error()))
	}

	repo := repository.GetGlobalRepositories().Address
	if addr.IsDefault {
		if err := repo.ClearDefaultForUser(addr.UserID); err != nil {
			return failure(c, err)
		}
	}
	if err := repo.Create(addr); err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusCreated, addr, "Address saved")
}

// HandleUpdateAddress edits an address. Order and delivery history keep
// their snapshots; edits only affect future deliveries.
func HandleUpdateAddress(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return failure(c, err)
	}
	var req addressRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, apperr.Validation("Invalid request body"))
	}

	repo := repository.GetGlobalRepositories().Address
	addr, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failure(c, apperr.NotFound("Address not found"))
		}
		return failure(c, err)
	}
	if addr.UserID != usercontext.GetUserID(c) {
		return failure(c, apperr.NotFound("Address not found"))
	}

	addr.Label = req.Label
	addr.Street = req.Street
	addr.City = req.City
	addr.State = req.State
	addr.PostalCode = req.PostalCode
	addr.Instructions = req.Instructions
	if err := addr.Validate(); err != nil {
		return failure(c, apperr.Validation(err.Error()))
	}
	if req.IsDefault && !addr.IsDefault {
		if err := repo.ClearDefaultForUser(addr.UserID); err != nil {
			return failure(c, err)
		}
		addr.IsDefault = true
	}
	if err := repo.Update(addr); err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, addr, "Address updated")
}
