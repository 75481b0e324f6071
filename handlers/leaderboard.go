// handlers/leaderboard.go - Event leaderboard endpoint
package handlers

import (
	"campusquest/services"
	"campusquest/utils"

	"github.com/gofiber/fiber/v2"
)

type LeaderboardHandler struct {
	leaderboard *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboard *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// Get handles GET /api/events/:eventId/leaderboard?limit=20.
// Ties on equal totals break on earliest ledger creation, so repeated calls
// return a stable order.
func (h *LeaderboardHandler) Get(c *fiber.Ctx) error {
	eventID, err := utils.ParamUint(c, "eventId")
	if err != nil {
		return err
	}
	limit := utils.QueryInt(c, "limit", services.DefaultLeaderboardLimit)

	entries, err := h.leaderboard.GetLeaderboard(c.Context(), eventID, limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"event_id":    eventID,
		"leaderboard": entries,
		"count":       len(entries),
	})
}
