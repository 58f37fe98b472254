package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"productapi/internal/dto"
	"productapi/internal/services"
)

func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	}
	return invalidBody(c, err)
}

// productError maps a product service error onto a status code. Unknown errors are logged and
// reported as 500 with the given fallback message.
func productError(c *fiber.Ctx, log *zap.Logger, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You are not the owner of this product",
		})
	case errors.Is(err, services.ErrConstraintViolation):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Product conflicts with an existing product",
			"error":   "produceDate and manufactureEmail must be unique",
		})
	case errors.Is(err, services.ErrMissingIdentity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Authenticated user has no email claim",
		})
	default:
		log.Error(fallback, zap.Error(err), zap.String("path", c.Path()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": fallback,
		})
	}
}
