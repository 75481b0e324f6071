// handlers/achievements.go - Achievement catalog and ownership endpoints
package handlers

import (
	"campusquest/middleware"
	"campusquest/services"
	"campusquest/utils"

	"github.com/gofiber/fiber/v2"
)

type AchievementHandler struct {
	achievements *services.AchievementService
	points       *services.PointsService
}

func NewAchievementHandler(achievements *services.AchievementService, points *services.PointsService) *AchievementHandler {
	return &AchievementHandler{achievements: achievements, points: points}
}

// List handles GET /api/achievements
func (h *AchievementHandler) List(c *fiber.Ctx) error {
	achievements, err := h.achievements.List()
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"total":        len(achievements),
	})
}

// ListOwned handles GET /api/events/:eventId/achievements: the catalog marked
// with what the user has unlocked in this event.
func (h *AchievementHandler) ListOwned(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	eventID, err := utils.ParamUint(c, "eventId")
	if err != nil {
		return err
	}

	catalog, err := h.achievements.List()
	if err != nil {
		return respondServiceError(c, err)
	}
	ledger, err := h.points.Get(userID, eventID)
	if err != nil {
		return respondServiceError(c, err)
	}

	owned := make(map[uint]interface{}, len(ledger.Achievements))
	for _, ua := range ledger.Achievements {
		owned[ua.AchievementID] = ua.EarnedAt
	}

	achievements := make([]fiber.Map, 0, len(catalog))
	unlocked := 0
	for _, achievement := range catalog {
		entry := fiber.Map{
			"id":           achievement.ID,
			"name":         achievement.Name,
			"description":  achievement.Description,
			"category":     achievement.Category,
			"icon":         achievement.Icon,
			"bonus_points": achievement.BonusPoints,
			"unlocked":     false,
		}
		if earnedAt, ok := owned[achievement.ID]; ok {
			entry["unlocked"] = true
			entry["earned_at"] = earnedAt
			unlocked++
		}
		achievements = append(achievements, entry)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"total":        len(catalog),
		"unlocked":     unlocked,
	})
}
