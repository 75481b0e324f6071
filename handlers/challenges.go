// handlers/challenges.go - Challenge catalog endpoints
package handlers

import (
	"time"

	"campusquest/middleware"
	"campusquest/services"
	"campusquest/utils"

	"github.com/gofiber/fiber/v2"
)

type ChallengeHandler struct {
	challenges *services.ChallengeService
	generator  services.QuizGenerator
}

// NewChallengeHandler wires the catalog service and the content generator.
// The generator is injected here on purpose; nothing in the engine reaches
// for it as a global.
func NewChallengeHandler(challenges *services.ChallengeService, generator services.QuizGenerator) *ChallengeHandler {
	return &ChallengeHandler{challenges: challenges, generator: generator}
}

// ListActive handles GET /api/events/:eventId/challenges
func (h *ChallengeHandler) ListActive(c *fiber.Ctx) error {
	eventID, err := utils.ParamUint(c, "eventId")
	if err != nil {
		return err
	}

	challenges, err := h.challenges.ListActive(eventID, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"challenges": challenges,
		"count":      len(challenges),
	})
}

// Get handles GET /api/challenges/:id
func (h *ChallengeHandler) Get(c *fiber.Ctx) error {
	challengeID, err := utils.ParamUint(c, "id")
	if err != nil {
		return err
	}

	challenge, err := h.challenges.GetByID(challengeID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "challenge": challenge})
}

// Create handles POST /api/challenges
func (h *ChallengeHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var input services.CreateChallengeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	input.CreatedBy = &userID

	challenge, err := h.challenges.Create(input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "challenge": challenge})
}

// Generate handles POST /api/challenges/generate: asks the content generator
// for a quiz payload and stores it through the normal create path, so
// generator-sourced challenges get the same validation as authored ones.
func (h *ChallengeHandler) Generate(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req services.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.EventID == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "event_id is required"})
	}
	if req.StartTime.IsZero() {
		req.StartTime = time.Now()
	}
	if req.EndTime.IsZero() {
		req.EndTime = req.StartTime.Add(24 * time.Hour)
	}

	input, err := h.generator.GenerateQuiz(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	input.CreatedBy = &userID

	challenge, err := h.challenges.Create(*input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "challenge": challenge, "generated": true})
}
