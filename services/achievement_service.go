// services/achievement_service.go - Achievement catalog and evaluation
package services

import (
	"errors"
	"time"

	"campusquest/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixed criteria thresholds per category.
const (
	attendanceThreshold = 3
	networkingThreshold = 5
	engagementThreshold = 50
	feedbackThreshold   = 3
	socialThreshold     = 3
)

type AchievementService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{db: db, validate: validator.New()}
}

type CreateAchievementInput struct {
	Name        string                     `json:"name" validate:"required,max=100"`
	Description string                     `json:"description" validate:"required"`
	Category    models.AchievementCategory `json:"category" validate:"required"`
	Icon        string                     `json:"icon"`
	BonusPoints int                        `json:"bonus_points" validate:"gte=0"`
}

// List returns the full achievement catalog in id order.
func (s *AchievementService) List() ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := s.db.Order("id ASC").Find(&achievements).Error
	return achievements, err
}

// Create stores an achievement definition, whether authored by an organizer
// or sourced from the content generator.
func (s *AchievementService) Create(input CreateAchievementInput) (*models.Achievement, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, Validationf("%v", err)
	}
	if !input.Category.Valid() {
		return nil, Validationf("unknown achievement category %q", input.Category)
	}

	achievement := models.Achievement{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Icon:        input.Icon,
		BonusPoints: input.BonusPoints,
	}
	if err := s.db.Create(&achievement).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflictf("achievement %q already exists", input.Name)
		}
		return nil, err
	}
	return &achievement, nil
}

// Update edits an achievement definition.
func (s *AchievementService) Update(id uint, input CreateAchievementInput) (*models.Achievement, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, Validationf("%v", err)
	}
	if !input.Category.Valid() {
		return nil, Validationf("unknown achievement category %q", input.Category)
	}

	var achievement models.Achievement
	if err := s.db.First(&achievement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("achievement %d", id)
		}
		return nil, err
	}

	achievement.Name = input.Name
	achievement.Description = input.Description
	achievement.Category = input.Category
	achievement.Icon = input.Icon
	achievement.BonusPoints = input.BonusPoints
	if err := s.db.Save(&achievement).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

// Delete removes an achievement definition from the catalog.
func (s *AchievementService) Delete(id uint) error {
	result := s.db.Delete(&models.Achievement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NotFoundf("achievement %d", id)
	}
	return nil
}

// Evaluate scans the user's event activity log against every unowned
// achievement, in ascending id order, and awards the ones whose threshold is
// met. The bonus is appended to the log as an achievement activity, so the
// ledger invariant (total equals the sum of activity points) keeps holding.
// Since no criterion counts achievement activities, awards made earlier in
// the pass cannot change the outcome of later criteria.
func (s *AchievementService) Evaluate(userID, eventID uint) ([]models.Achievement, error) {
	var awarded []models.Achievement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ledger models.UserPoints
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND event_id = ?", userID, eventID).
			First(&ledger).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing earned yet, nothing to evaluate
		}
		if err != nil {
			return err
		}

		var activities []models.Activity
		if err := tx.Where("user_points_id = ?", ledger.ID).
			Order("created_at ASC, id ASC").
			Find(&activities).Error; err != nil {
			return err
		}

		owned := make(map[uint]bool)
		var ownedIDs []uint
		if err := tx.Model(&models.UserAchievement{}).
			Where("user_points_id = ?", ledger.ID).
			Pluck("achievement_id", &ownedIDs).Error; err != nil {
			return err
		}
		for _, id := range ownedIDs {
			owned[id] = true
		}

		var catalog []models.Achievement
		if err := tx.Order("id ASC").Find(&catalog).Error; err != nil {
			return err
		}

		bonusTotal := 0
		for _, achievement := range catalog {
			if owned[achievement.ID] {
				continue
			}
			if !criterionMet(achievement.Category, activities) {
				continue
			}

			grant := models.UserAchievement{
				UserPointsID:  ledger.ID,
				AchievementID: achievement.ID,
				EarnedAt:      time.Now(),
			}
			if err := tx.Create(&grant).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					continue // a concurrent pass awarded it first
				}
				return err
			}

			bonus := models.Activity{
				UserPointsID: ledger.ID,
				Kind:         models.ActivityKindAchievement,
				Description:  "Achievement unlocked: " + achievement.Name,
				Points:       achievement.BonusPoints,
			}
			if err := tx.Create(&bonus).Error; err != nil {
				return err
			}

			bonusTotal += achievement.BonusPoints
			awarded = append(awarded, achievement)
		}

		if bonusTotal > 0 {
			ledger.TotalPoints += bonusTotal
			ledger.Level = models.LevelForPoints(ledger.TotalPoints)
			return tx.Save(&ledger).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return awarded, nil
}

// criterionMet applies the fixed threshold for a category to the activity
// log. Achievement bonus activities are deliberately excluded everywhere.
func criterionMet(category models.AchievementCategory, activities []models.Activity) bool {
	switch category {
	case models.AchievementCategoryAttendance:
		return countByKind(activities, models.ActivityKindAttendance) >= attendanceThreshold
	case models.AchievementCategoryNetworking:
		return countByKind(activities, models.ActivityKindNetworking) >= networkingThreshold
	case models.AchievementCategoryEngagement:
		sum := 0
		for _, a := range activities {
			if a.Kind == models.ActivityKindChallenge || a.Kind == models.ActivityKindFeedback {
				sum += a.Points
			}
		}
		return sum >= engagementThreshold
	case models.AchievementCategoryFeedback:
		return countByKind(activities, models.ActivityKindFeedback) >= feedbackThreshold
	case models.AchievementCategorySocial:
		return countByKind(activities, models.ActivityKindSocial) >= socialThreshold
	}
	return false
}

func countByKind(activities []models.Activity, kind models.ActivityKind) int {
	count := 0
	for _, a := range activities {
		if a.Kind == kind {
			count++
		}
	}
	return count
}
