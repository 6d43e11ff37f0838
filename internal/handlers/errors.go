package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"inventario/internal/inventory"
	"inventario/internal/services"
)

// respondError maps a service error onto the HTTP error responses.
func respondError(c *fiber.Ctx, err error, message string) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
			"error":   err.Error(),
		})
	case errors.Is(err, inventory.ErrUnknownSortKey), errors.Is(err, inventory.ErrUnknownDirection):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid view parameters",
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrShareUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Sharing is not available on this server",
			"error":   err.Error(),
		})
	}

	log.Printf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
