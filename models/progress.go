// models/progress.go - Per-user challenge progress
package models

import (
	"time"
)

// ProgressStatus only moves forward: not_started -> in_progress -> completed.
type ProgressStatus string

const (
	ProgressStatusNotStarted ProgressStatus = "not_started"
	ProgressStatusInProgress ProgressStatus = "in_progress"
	ProgressStatusCompleted  ProgressStatus = "completed"
)

// ChallengeProgress is a user's state for one challenge.
// Unique per (user, challenge); created lazily on first interaction.
type ChallengeProgress struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_challenge"`
	ChallengeID uint       `json:"challenge_id" gorm:"not null;uniqueIndex:idx_progress_user_challenge"`
	Challenge   *Challenge `json:"challenge,omitempty" gorm:"foreignKey:ChallengeID"`

	Status          ProgressStatus `json:"status" gorm:"not null;default:'not_started';size:20"`
	PercentComplete int            `json:"percent_complete" gorm:"default:0"`
	PointsEarned    int            `json:"points_earned" gorm:"default:0"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`

	Answers     []QuizAnswer        `json:"answers,omitempty" gorm:"foreignKey:ProgressID"`
	Discoveries []LocationDiscovery `json:"discoveries,omitempty" gorm:"foreignKey:ProgressID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuizAnswer records one submitted answer, ordered by QuestionIndex.
type QuizAnswer struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	ProgressID    uint   `json:"progress_id" gorm:"not null;index"`
	QuestionIndex int    `json:"question_index" gorm:"not null"`
	Answer        string `json:"answer" gorm:"size:500"`
	Correct       bool   `json:"correct" gorm:"default:false"`
	Points        int    `json:"points" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
}

// LocationDiscovery records one found scavenger location. The unique index on
// (progress_id, location_index) is what makes double check-ins a conflict even
// under concurrent requests.
type LocationDiscovery struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ProgressID    uint      `json:"progress_id" gorm:"not null;uniqueIndex:idx_discovery_progress_location"`
	LocationIndex int       `json:"location_index" gorm:"not null;uniqueIndex:idx_discovery_progress_location"`
	Points        int       `json:"points" gorm:"default:0"`
	DiscoveredAt  time.Time `json:"discovered_at"`
}

func (ChallengeProgress) TableName() string {
	return "challenge_progress"
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}

func (LocationDiscovery) TableName() string {
	return "location_discoveries"
}
