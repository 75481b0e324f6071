// handlers/errors.go - Service error to HTTP status mapping
package handlers

import (
	"errors"

	"campusquest/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// respondServiceError maps the service error taxonomy onto response codes.
// Internal failures are logged with detail but reported opaquely.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.Status(409).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.Path()).Error("request failed")
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Internal server error"})
	}
}
