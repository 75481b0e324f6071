// models/points.go - Per-event points ledger
package models

import (
	"time"
)

// ActivityKind tags one entry in a user's activity log.
type ActivityKind string

const (
	ActivityKindAttendance  ActivityKind = "attendance"
	ActivityKindFeedback    ActivityKind = "feedback"
	ActivityKindNetworking  ActivityKind = "networking"
	ActivityKindChallenge   ActivityKind = "challenge"
	ActivityKindSocial      ActivityKind = "social"
	ActivityKindSponsor     ActivityKind = "sponsor"
	ActivityKindAchievement ActivityKind = "achievement"
)

// Valid reports whether k is a known activity kind.
func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityKindAttendance, ActivityKindFeedback, ActivityKindNetworking,
		ActivityKindChallenge, ActivityKindSocial, ActivityKindSponsor,
		ActivityKindAchievement:
		return true
	}
	return false
}

// LevelForPoints derives the level tier from a points total. Keep this as the
// only place the formula lives.
func LevelForPoints(total int) int {
	if total < 0 {
		total = 0
	}
	return total/100 + 1
}

// UserPoints is the per-(user, event) ledger: an append-only activity log, a
// running total that always equals the sum of the log, and the achievements
// owned for that event. Created lazily on the first point-earning action.
type UserPoints struct {
	ID      uint  `json:"id" gorm:"primaryKey"`
	UserID  uint  `json:"user_id" gorm:"not null;uniqueIndex:idx_points_user_event"`
	EventID uint  `json:"event_id" gorm:"not null;uniqueIndex:idx_points_user_event"`
	User    *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	TotalPoints int `json:"total_points" gorm:"default:0"`
	Level       int `json:"level" gorm:"default:1"`

	Activities   []Activity        `json:"activities,omitempty" gorm:"foreignKey:UserPointsID"`
	Achievements []UserAchievement `json:"achievements,omitempty" gorm:"foreignKey:UserPointsID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Activity is one immutable log entry. Never updated or deleted.
type Activity struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	UserPointsID uint         `json:"-" gorm:"not null;index"`
	Kind         ActivityKind `json:"kind" gorm:"not null;size:20;index"`
	Description  string       `json:"description" gorm:"size:255"`
	Points       int          `json:"points" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
}

// UserAchievement marks ownership of one achievement within an event ledger.
// The unique index guarantees no double award.
type UserAchievement struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	UserPointsID  uint         `json:"-" gorm:"not null;uniqueIndex:idx_owned_achievement"`
	AchievementID uint         `json:"achievement_id" gorm:"not null;uniqueIndex:idx_owned_achievement"`
	Achievement   *Achievement `json:"achievement,omitempty" gorm:"foreignKey:AchievementID"`
	EarnedAt      time.Time    `json:"earned_at"`
}

func (UserPoints) TableName() string {
	return "user_points"
}

func (Activity) TableName() string {
	return "activities"
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
