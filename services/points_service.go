// services/points_service.go - Per-(user, event) points ledger
package services

import (
	"errors"

	"campusquest/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PointsService struct {
	db           *gorm.DB
	achievements *AchievementService
}

func NewPointsService(db *gorm.DB, achievements *AchievementService) *PointsService {
	return &PointsService{db: db, achievements: achievements}
}

// AddPoints appends one activity to the user's event log and updates the
// running total and level, all inside a single transaction holding the
// ledger row lock. Achievement evaluation runs afterwards, best-effort: an
// evaluator failure is logged and the committed ledger state is returned
// untouched.
func (s *PointsService) AddPoints(userID, eventID uint, points int, kind models.ActivityKind, description string) (*models.UserPoints, []models.Achievement, error) {
	if !kind.Valid() {
		return nil, nil, Validationf("unknown activity kind %q", kind)
	}
	if kind == models.ActivityKindAchievement {
		return nil, nil, Validationf("achievement activities are appended by the evaluator only")
	}
	if points < 0 {
		return nil, nil, Validationf("points must not be negative")
	}

	var ledger *models.UserPoints
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		ledger, err = lockOrCreateUserPoints(tx, userID, eventID)
		if err != nil {
			return err
		}

		activity := models.Activity{
			UserPointsID: ledger.ID,
			Kind:         kind,
			Description:  description,
			Points:       points,
		}
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		ledger.TotalPoints += points
		ledger.Level = models.LevelForPoints(ledger.TotalPoints)
		return tx.Save(ledger).Error
	})
	if err != nil {
		return nil, nil, err
	}

	awarded, err := s.achievements.Evaluate(userID, eventID)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id":  userID,
			"event_id": eventID,
		}).Error("achievement evaluation failed")
		return ledger, nil, nil
	}
	if len(awarded) > 0 {
		// Reload so the returned totals include any bonuses just logged.
		if refreshed, err := s.Get(userID, eventID); err == nil {
			ledger = refreshed
		}
	}
	return ledger, awarded, nil
}

// Get returns the stored ledger, or a zero-value projection (total 0,
// level 1, empty logs) that is never persisted.
func (s *PointsService) Get(userID, eventID uint) (*models.UserPoints, error) {
	var ledger models.UserPoints
	err := s.db.
		Preload("Activities", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Preload("Achievements.Achievement").
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&ledger).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserPoints{
			UserID:       userID,
			EventID:      eventID,
			TotalPoints:  0,
			Level:        models.LevelForPoints(0),
			Activities:   []models.Activity{},
			Achievements: []models.UserAchievement{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

// lockOrCreateUserPoints fetches the ledger row FOR UPDATE, creating it
// lazily on the first point-earning action. Creation races resolve through
// the unique (user_id, event_id) index and a locked refetch.
func lockOrCreateUserPoints(tx *gorm.DB, userID, eventID uint) (*models.UserPoints, error) {
	for attempt := 0; attempt < 2; attempt++ {
		var ledger models.UserPoints
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND event_id = ?", userID, eventID).
			First(&ledger).Error
		if err == nil {
			return &ledger, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		ledger = models.UserPoints{
			UserID:  userID,
			EventID: eventID,
			Level:   models.LevelForPoints(0),
		}
		err = tx.Create(&ledger).Error
		if err == nil {
			return &ledger, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, errors.New("could not lock user points record")
}
