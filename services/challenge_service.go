// services/challenge_service.go - Challenge catalog and creation
package services

import (
	"errors"
	"time"

	"campusquest/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type ChallengeService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{db: db, validate: validator.New()}
}

type QuestionInput struct {
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Points        int      `json:"points" validate:"gte=0"`
}

type LocationInput struct {
	Name   string `json:"name" validate:"required"`
	Hint   string `json:"hint"`
	Code   string `json:"code" validate:"required"`
	Points int    `json:"points" validate:"gte=0"`
}

type CreateChallengeInput struct {
	EventID     uint                 `json:"event_id" validate:"required"`
	Title       string               `json:"title" validate:"required,max=150"`
	Description string               `json:"description"`
	Kind        models.ChallengeKind `json:"kind" validate:"required"`
	TotalPoints int                  `json:"total_points" validate:"gte=0"`
	StartTime   time.Time            `json:"start_time" validate:"required"`
	EndTime     time.Time            `json:"end_time" validate:"required"`
	Questions   []QuestionInput      `json:"questions" validate:"dive"`
	Locations   []LocationInput      `json:"locations" validate:"dive"`
	CreatedBy   *uint                `json:"-"`
}

// ListActive returns the challenges visible for an event at the given time,
// ordered by start time then id so repeated calls are stable.
func (s *ChallengeService) ListActive(eventID uint, now time.Time) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := s.db.
		Where("event_id = ? AND is_active = ? AND start_time <= ? AND end_time >= ?",
			eventID, true, now, now).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Locations", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("start_time ASC, id ASC").
		Find(&challenges).Error
	return challenges, err
}

// GetByID fetches a challenge with its payload, ErrNotFound when absent.
func (s *ChallengeService) GetByID(challengeID uint) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Locations", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&challenge, challengeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundf("challenge %d", challengeID)
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// Create validates and stores a challenge with its kind-specific payload.
// Challenges are immutable once created in the normal flow; organizers can
// only deactivate them afterwards.
func (s *ChallengeService) Create(input CreateChallengeInput) (*models.Challenge, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, Validationf("%v", err)
	}
	if err := validateChallengePayload(input); err != nil {
		return nil, err
	}

	challenge := models.Challenge{
		EventID:     input.EventID,
		Title:       input.Title,
		Description: input.Description,
		Kind:        input.Kind,
		TotalPoints: input.TotalPoints,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsActive:    true,
		CreatedBy:   input.CreatedBy,
	}
	if challenge.TotalPoints == 0 {
		challenge.TotalPoints = payloadPointsTotal(input)
	}

	for i, q := range input.Questions {
		question := models.QuizQuestion{
			Position:      i,
			Text:          q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
		}
		if err := question.SetOptions(q.Options); err != nil {
			return nil, Validationf("question %d options: %v", i, err)
		}
		challenge.Questions = append(challenge.Questions, question)
	}
	for i, l := range input.Locations {
		challenge.Locations = append(challenge.Locations, models.ScavengerLocation{
			Position: i,
			Name:     l.Name,
			Hint:     l.Hint,
			Code:     l.Code,
			Points:   l.Points,
		})
	}

	if err := s.db.Create(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

// Deactivate hides a challenge from the catalog without touching progress.
func (s *ChallengeService) Deactivate(challengeID uint) error {
	result := s.db.Model(&models.Challenge{}).
		Where("id = ?", challengeID).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NotFoundf("challenge %d", challengeID)
	}
	return nil
}

func validateChallengePayload(input CreateChallengeInput) error {
	if !input.Kind.Valid() {
		return Validationf("unknown challenge kind %q", input.Kind)
	}
	if !input.EndTime.After(input.StartTime) {
		return Validationf("end_time must be after start_time")
	}

	switch input.Kind {
	case models.ChallengeKindQuiz:
		if len(input.Questions) == 0 {
			return Validationf("a quiz challenge needs at least one question")
		}
		if len(input.Locations) > 0 {
			return Validationf("a quiz challenge cannot carry locations")
		}
	case models.ChallengeKindScavenger:
		if len(input.Locations) == 0 {
			return Validationf("a scavenger challenge needs at least one location")
		}
		if len(input.Questions) > 0 {
			return Validationf("a scavenger challenge cannot carry questions")
		}
		seen := make(map[string]bool, len(input.Locations))
		for _, l := range input.Locations {
			if seen[l.Code] {
				return Validationf("duplicate location code %q", l.Code)
			}
			seen[l.Code] = true
		}
	default:
		if len(input.Questions) > 0 || len(input.Locations) > 0 {
			return Validationf("%s challenges carry no payload", input.Kind)
		}
	}
	return nil
}

func payloadPointsTotal(input CreateChallengeInput) int {
	total := 0
	for _, q := range input.Questions {
		total += q.Points
	}
	for _, l := range input.Locations {
		total += l.Points
	}
	return total
}
