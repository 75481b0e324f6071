// handlers/points.go - Points ledger endpoints
package handlers

import (
	"campusquest/middleware"
	"campusquest/models"
	"campusquest/services"
	"campusquest/utils"

	"github.com/gofiber/fiber/v2"
)

type PointsHandler struct {
	points *services.PointsService
}

func NewPointsHandler(points *services.PointsService) *PointsHandler {
	return &PointsHandler{points: points}
}

type AddPointsRequest struct {
	Points      int                 `json:"points"`
	Kind        models.ActivityKind `json:"kind"`
	Description string              `json:"description"`
}

// Get handles GET /api/events/:eventId/points. Users who never earned points
// get a zero-value projection, not a 404.
func (h *PointsHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	eventID, err := utils.ParamUint(c, "eventId")
	if err != nil {
		return err
	}

	ledger, err := h.points.Get(userID, eventID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "points": ledger})
}

// Add handles POST /api/events/:eventId/points: records an activity
// (attendance scan, feedback submission, networking connection, ...) and
// returns the updated ledger with any achievements the activity unlocked.
func (h *PointsHandler) Add(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	eventID, err := utils.ParamUint(c, "eventId")
	if err != nil {
		return err
	}

	var req AddPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	ledger, awarded, err := h.points.AddPoints(userID, eventID, req.Points, req.Kind, req.Description)
	if err != nil {
		return respondServiceError(c, err)
	}

	response := fiber.Map{"success": true, "points": ledger}
	if len(awarded) > 0 {
		response["new_achievements"] = awarded
	}
	return c.JSON(response)
}
