package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dark-store/bukafresh/app/repository"
	"github.com/dark-store/bukafresh/internal/pkg/apperr"
)

// HandleListProducts returns add-on shop products, optionally filtered by
// category and stock.
func HandleListProducts(c *fiber.Ctx) error {
	inStockOnly := c.Query("in_stock") == "true"
	products, err := repository.GetGlobalRepositories().Product.List(c.Query("category"), inStockOnly)
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, products, "")
}

// HandlePopularProducts returns the featured add-ons for the checkout page.
func HandlePopularProducts(c *fiber.Ctx) error {
	limit := 8
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 50 {
		limit = v
	}
	products, err := repository.GetGlobalRepositories().Product.GetPopular(limit)
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, products, "")
}

// HandleGetProduct returns a single product.
func HandleGetProduct(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return failure(c, err)
	}
	product, err := repository.GetGlobalRepositories().Product.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failure(c, apperr.NotFound("Product not found"))
		}
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, product, "")
}
