// handlers/progress.go - Challenge progress endpoints
package handlers

import (
	"fmt"

	"campusquest/middleware"
	"campusquest/models"
	"campusquest/services"
	"campusquest/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ProgressHandler struct {
	progress   *services.ProgressService
	challenges *services.ChallengeService
	points     *services.PointsService
}

func NewProgressHandler(progress *services.ProgressService, challenges *services.ChallengeService, points *services.PointsService) *ProgressHandler {
	return &ProgressHandler{progress: progress, challenges: challenges, points: points}
}

type SubmitQuizRequest struct {
	Answers []string `json:"answers"`
}

type CheckinRequest struct {
	Code string `json:"code"`
}

// Start handles POST /api/challenges/:id/start. Calling it twice returns the
// same record both times.
func (h *ProgressHandler) Start(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	challengeID, err := utils.ParamUint(c, "id")
	if err != nil {
		return err
	}

	progress, err := h.progress.Start(userID, challengeID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "progress": progress})
}

// SubmitQuiz handles POST /api/challenges/:id/submit. Resubmission is
// allowed: the grade overwrites the previous one, and only a positive points
// delta reaches the ledger, so retrying cannot double-award.
func (h *ProgressHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	challengeID, err := utils.ParamUint(c, "id")
	if err != nil {
		return err
	}

	var req SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Answers == nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "answers array is required"})
	}

	result, err := h.progress.SubmitQuiz(userID, challengeID, req.Answers)
	if err != nil {
		return respondServiceError(c, err)
	}

	h.awardChallengePoints(userID, challengeID,
		result.Progress.PointsEarned-result.PreviousPoints, "Completed quiz")

	return c.JSON(fiber.Map{
		"success":  true,
		"progress": result.Progress,
		"summary": fiber.Map{
			"points_earned":   result.Progress.PointsEarned,
			"correct_count":   result.Grade.CorrectCount,
			"total_questions": result.Grade.TotalQuestions,
		},
	})
}

// CheckIn handles POST /api/challenges/:id/checkin
func (h *ProgressHandler) CheckIn(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	challengeID, err := utils.ParamUint(c, "id")
	if err != nil {
		return err
	}

	var req CheckinRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "code is required"})
	}

	result, err := h.progress.CheckIn(userID, challengeID, req.Code)
	if err != nil {
		return respondServiceError(c, err)
	}

	h.awardChallengePoints(userID, challengeID,
		result.Progress.PointsEarned-result.PreviousPoints,
		fmt.Sprintf("Found location: %s", result.LocationFound))

	return c.JSON(fiber.Map{
		"success":        true,
		"progress":       result.Progress,
		"location_found": result.LocationFound,
		"points_earned":  result.PointsEarned,
	})
}

// Get handles GET /api/challenges/:id/progress
func (h *ProgressHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	challengeID, err := utils.ParamUint(c, "id")
	if err != nil {
		return err
	}

	progress, err := h.progress.Get(userID, challengeID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "progress": progress})
}

// List handles GET /api/progress
func (h *ProgressHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	records, err := h.progress.ListForUser(userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "progress": records, "count": len(records)})
}

// awardChallengePoints records earned challenge points in the event ledger.
// A ledger failure is logged rather than failing the progress response; the
// progress write has already committed.
func (h *ProgressHandler) awardChallengePoints(userID, challengeID uint, points int, description string) {
	if points <= 0 {
		return
	}

	challenge, err := h.challenges.GetByID(challengeID)
	if err != nil {
		logrus.WithError(err).Error("failed to resolve challenge for ledger award")
		return
	}

	if _, _, err := h.points.AddPoints(userID, challenge.EventID, points,
		models.ActivityKindChallenge, description); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id":      userID,
			"challenge_id": challengeID,
		}).Error("failed to record challenge points")
	}
}
