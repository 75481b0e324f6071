// handlers/admin/achievements.go - Achievement management
package admin

import (
	"errors"

	"campusquest/services"
	"campusquest/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AchievementHandler struct {
	achievements *services.AchievementService
}

func NewAchievementHandler(achievements *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievements: achievements}
}

// List handles GET /api/admin/achievements
func (h *AchievementHandler) List(c *fiber.Ctx) error {
	achievements, err := h.achievements.List()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "achievements": achievements})
}

// Create handles POST /api/admin/achievements
func (h *AchievementHandler) Create(c *fiber.Ctx) error {
	var input services.CreateAchievementInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	achievement, err := h.achievements.Create(input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "achievement": achievement})
}

// Update handles PUT /api/admin/achievements/:id
func (h *AchievementHandler) Update(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c, "id")
	if err != nil {
		return err
	}

	var input services.CreateAchievementInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	achievement, err := h.achievements.Update(id, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "achievement": achievement})
}

// Delete handles DELETE /api/admin/achievements/:id
func (h *AchievementHandler) Delete(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c, "id")
	if err != nil {
		return err
	}

	if err := h.achievements.Delete(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.Status(409).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.Path()).Error("admin request failed")
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Internal server error"})
	}
}
