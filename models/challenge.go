// models/challenge.go - Event Challenge Data Models
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ChallengeKind is the closed set of challenge types
type ChallengeKind string

const (
	ChallengeKindQuiz       ChallengeKind = "quiz"
	ChallengeKindScavenger  ChallengeKind = "scavenger"
	ChallengeKindSocial     ChallengeKind = "social"
	ChallengeKindNetworking ChallengeKind = "networking"
	ChallengeKindSponsor    ChallengeKind = "sponsor"
	ChallengeKindFeedback   ChallengeKind = "feedback"
)

// Valid reports whether k is one of the known challenge kinds.
func (k ChallengeKind) Valid() bool {
	switch k {
	case ChallengeKindQuiz, ChallengeKindScavenger, ChallengeKindSocial,
		ChallengeKindNetworking, ChallengeKindSponsor, ChallengeKindFeedback:
		return true
	}
	return false
}

// Challenge represents an engagement task tied to an event.
// Kind-specific payloads live in owned ordered tables (Questions for quiz,
// Locations for scavenger); the other kinds carry no payload.
type Challenge struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	EventID     uint          `json:"event_id" gorm:"not null;index"`
	Title       string        `json:"title" gorm:"not null;size:150"`
	Description string        `json:"description" gorm:"type:text"`
	Kind        ChallengeKind `json:"kind" gorm:"not null;size:20;index"`
	TotalPoints int           `json:"total_points" gorm:"default:0"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	IsActive    bool          `json:"is_active" gorm:"default:true;index"`
	CreatedBy   *uint         `json:"created_by,omitempty" gorm:"index"`
	Creator     *User         `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`

	Questions []QuizQuestion      `json:"questions,omitempty" gorm:"foreignKey:ChallengeID"`
	Locations []ScavengerLocation `json:"locations,omitempty" gorm:"foreignKey:ChallengeID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VisibleAt reports whether the challenge is visible to users at t.
func (c *Challenge) VisibleAt(t time.Time) bool {
	return c.IsActive && !t.Before(c.StartTime) && !t.After(c.EndTime)
}

// QuizQuestion is one question in a quiz challenge, ordered by Position.
type QuizQuestion struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	ChallengeID   uint   `json:"challenge_id" gorm:"not null;index"`
	Position      int    `json:"position" gorm:"not null"`
	Text          string `json:"text" gorm:"not null;type:text"`
	OptionsJSON   string `json:"-" gorm:"column:options;type:text"`
	CorrectAnswer string `json:"-" gorm:"not null;size:500"`
	Points        int    `json:"points" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
}

// GetOptions unmarshals the stored answer options.
func (q *QuizQuestion) GetOptions() ([]string, error) {
	var options []string
	if q.OptionsJSON == "" {
		return options, nil
	}
	err := json.Unmarshal([]byte(q.OptionsJSON), &options)
	return options, err
}

// SetOptions marshals the answer options for storage.
func (q *QuizQuestion) SetOptions(options []string) error {
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}
	q.OptionsJSON = string(data)
	return nil
}

// MarshalJSON exposes options as a plain array. The answer key stays
// server-side; grading happens in the scoring engine.
func (q QuizQuestion) MarshalJSON() ([]byte, error) {
	type alias QuizQuestion
	options, err := q.GetOptions()
	if err != nil {
		return nil, fmt.Errorf("options for question %d: %w", q.ID, err)
	}
	return json.Marshal(struct {
		alias
		Options []string `json:"options"`
	}{alias(q), options})
}

// ScavengerLocation is one stop in a scavenger hunt, ordered by Position.
// Code is the secret entered at the physical location and is never serialized.
type ScavengerLocation struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ChallengeID uint   `json:"challenge_id" gorm:"not null;index"`
	Position    int    `json:"position" gorm:"not null"`
	Name        string `json:"name" gorm:"not null;size:150"`
	Hint        string `json:"hint" gorm:"type:text"`
	Code        string `json:"-" gorm:"not null;size:100"`
	Points      int    `json:"points" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
}

func (Challenge) TableName() string {
	return "challenges"
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

func (ScavengerLocation) TableName() string {
	return "scavenger_locations"
}
