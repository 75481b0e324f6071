// services/progress_service.go - Per-(user, challenge) state machine
package services

import (
	"errors"
	"time"

	"campusquest/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressService struct {
	db         *gorm.DB
	challenges *ChallengeService
}

func NewProgressService(db *gorm.DB, challenges *ChallengeService) *ProgressService {
	return &ProgressService{db: db, challenges: challenges}
}

// SubmitResult pairs the persisted progress with the grading summary.
type SubmitResult struct {
	Progress *models.ChallengeProgress `json:"progress"`
	Grade    QuizGrade                 `json:"summary"`
	// PreviousPoints is what the progress held before this submission, so the
	// caller can award only the ledger delta on resubmission.
	PreviousPoints int `json:"-"`
}

// CheckinResult pairs the persisted progress with the matched location.
type CheckinResult struct {
	Progress      *models.ChallengeProgress `json:"progress"`
	LocationFound string                    `json:"location_found"`
	PointsEarned  int                       `json:"points_earned"`
	// PreviousPoints is what the progress held before this check-in. The cap
	// at challenge.TotalPoints can shrink the credited amount below the
	// location's value, so the ledger award must be the capped delta.
	PreviousPoints int `json:"-"`
}

// Start creates the progress record on first interaction and returns the
// existing one unchanged on every later call.
func (s *ProgressService) Start(userID, challengeID uint) (*models.ChallengeProgress, error) {
	if _, err := s.challenges.GetByID(challengeID); err != nil {
		return nil, err
	}

	var progress *models.ChallengeProgress
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		progress, err = lockOrCreateProgress(tx, userID, challengeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// SubmitQuiz grades the answers and overwrites the stored submission
// unconditionally: percent jumps to 100 and the record completes, even
// straight from not-started. Resubmission re-grades and re-writes.
func (s *ProgressService) SubmitQuiz(userID, challengeID uint, answers []string) (*SubmitResult, error) {
	challenge, err := s.challenges.GetByID(challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.Kind != models.ChallengeKindQuiz {
		return nil, NotFoundf("challenge %d is not a quiz", challengeID)
	}

	grade := GradeQuiz(challenge.Questions, answers)

	result := &SubmitResult{Grade: grade}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		progress, err := lockOrCreateProgress(tx, userID, challengeID)
		if err != nil {
			return err
		}
		result.PreviousPoints = progress.PointsEarned

		if err := tx.Where("progress_id = ?", progress.ID).
			Delete(&models.QuizAnswer{}).Error; err != nil {
			return err
		}
		for _, r := range grade.Results {
			answer := models.QuizAnswer{
				ProgressID:    progress.ID,
				QuestionIndex: r.QuestionIndex,
				Answer:        r.Answer,
				Correct:       r.Correct,
				Points:        r.Points,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
			progress.Answers = append(progress.Answers, answer)
		}

		now := time.Now()
		progress.PointsEarned = capPoints(grade.TotalPoints, challenge.TotalPoints)
		progress.PercentComplete = 100
		progress.Status = models.ProgressStatusCompleted
		progress.CompletedAt = &now

		result.Progress = progress
		return tx.Save(progress).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CheckIn records a discovered scavenger location. The duplicate check and
// the append run under one row lock per (user, challenge), with the unique
// index on (progress_id, location_index) as the backstop, so two concurrent
// check-ins with the same code cannot both earn credit.
func (s *ProgressService) CheckIn(userID, challengeID uint, code string) (*CheckinResult, error) {
	challenge, err := s.challenges.GetByID(challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.Kind != models.ChallengeKindScavenger {
		return nil, NotFoundf("challenge %d is not a scavenger hunt", challengeID)
	}

	index, points, err := GradeCheckin(challenge.Locations, code)
	if err != nil {
		return nil, err
	}

	result := &CheckinResult{
		LocationFound: challenge.Locations[index].Name,
		PointsEarned:  points,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		progress, err := lockOrCreateProgress(tx, userID, challengeID)
		if err != nil {
			return err
		}
		result.PreviousPoints = progress.PointsEarned

		var found int64
		if err := tx.Model(&models.LocationDiscovery{}).
			Where("progress_id = ? AND location_index = ?", progress.ID, index).
			Count(&found).Error; err != nil {
			return err
		}
		if found > 0 {
			return Conflictf("location already found")
		}

		discovery := models.LocationDiscovery{
			ProgressID:    progress.ID,
			LocationIndex: index,
			Points:        points,
			DiscoveredAt:  time.Now(),
		}
		if err := tx.Create(&discovery).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return Conflictf("location already found")
			}
			return err
		}

		var discovered int64
		if err := tx.Model(&models.LocationDiscovery{}).
			Where("progress_id = ?", progress.ID).
			Count(&discovered).Error; err != nil {
			return err
		}

		progress.PointsEarned = capPoints(progress.PointsEarned+points, challenge.TotalPoints)
		progress.PercentComplete = percentComplete(int(discovered), len(challenge.Locations))
		if progress.PercentComplete >= 100 {
			progress.PercentComplete = 100
			progress.Status = models.ProgressStatusCompleted
			now := time.Now()
			progress.CompletedAt = &now
		}

		result.Progress = progress
		return tx.Save(progress).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("progress_id = ?", result.Progress.ID).
		Order("location_index ASC").
		Find(&result.Progress.Discoveries).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the stored record, or an unsaved zero-value projection when the
// user never interacted with the challenge.
func (s *ProgressService) Get(userID, challengeID uint) (*models.ChallengeProgress, error) {
	var progress models.ChallengeProgress
	err := s.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("question_index ASC") }).
		Preload("Discoveries", func(db *gorm.DB) *gorm.DB { return db.Order("location_index ASC") }).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ChallengeProgress{
			UserID:      userID,
			ChallengeID: challengeID,
			Status:      models.ProgressStatusNotStarted,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListForUser returns every stored progress record joined with its challenge.
func (s *ProgressService) ListForUser(userID uint) ([]models.ChallengeProgress, error) {
	var records []models.ChallengeProgress
	err := s.db.
		Preload("Challenge").
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("question_index ASC") }).
		Preload("Discoveries", func(db *gorm.DB) *gorm.DB { return db.Order("location_index ASC") }).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&records).Error
	return records, err
}

// lockOrCreateProgress fetches the progress row FOR UPDATE, creating it in
// in_progress on first interaction. A creation race resolves through the
// unique (user_id, challenge_id) index and a locked refetch.
func lockOrCreateProgress(tx *gorm.DB, userID, challengeID uint) (*models.ChallengeProgress, error) {
	for attempt := 0; attempt < 2; attempt++ {
		var progress models.ChallengeProgress
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND challenge_id = ?", userID, challengeID).
			First(&progress).Error
		if err == nil {
			return &progress, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		progress = models.ChallengeProgress{
			UserID:      userID,
			ChallengeID: challengeID,
			Status:      models.ProgressStatusInProgress,
		}
		err = tx.Create(&progress).Error
		if err == nil {
			return &progress, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// Lost the creation race; loop refetches the winner's row.
	}
	return nil, errors.New("could not lock progress record")
}

// percentComplete maps discovered count onto 0..100.
func percentComplete(discovered, total int) int {
	if total <= 0 {
		return 0
	}
	if discovered >= total {
		return 100
	}
	return discovered * 100 / total
}

func capPoints(points, max int) int {
	if max > 0 && points > max {
		return max
	}
	return points
}
