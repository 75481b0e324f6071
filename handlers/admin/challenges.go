// handlers/admin/challenges.go - Challenge management
package admin

import (
	"campusquest/services"
	"campusquest/utils"

	"github.com/gofiber/fiber/v2"
)

type ChallengeHandler struct {
	challenges *services.ChallengeService
}

func NewChallengeHandler(challenges *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challenges: challenges}
}

// Create handles POST /api/admin/challenges. Challenges are immutable once
// created; organizers fix mistakes by deactivating and recreating.
func (h *ChallengeHandler) Create(c *fiber.Ctx) error {
	var input services.CreateChallengeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	challenge, err := h.challenges.Create(input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "challenge": challenge})
}

// Deactivate handles POST /api/admin/challenges/:id/deactivate
func (h *ChallengeHandler) Deactivate(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c, "id")
	if err != nil {
		return err
	}

	if err := h.challenges.Deactivate(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
