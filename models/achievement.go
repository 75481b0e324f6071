// models/achievement.go
package models

import "time"

// AchievementCategory selects which fixed criterion applies.
type AchievementCategory string

const (
	AchievementCategoryNetworking AchievementCategory = "networking"
	AchievementCategoryAttendance AchievementCategory = "attendance"
	AchievementCategoryEngagement AchievementCategory = "engagement"
	AchievementCategoryFeedback   AchievementCategory = "feedback"
	AchievementCategorySocial     AchievementCategory = "social"
)

// Valid reports whether c is a known achievement category.
func (c AchievementCategory) Valid() bool {
	switch c {
	case AchievementCategoryNetworking, AchievementCategoryAttendance,
		AchievementCategoryEngagement, AchievementCategoryFeedback,
		AchievementCategorySocial:
		return true
	}
	return false
}

type Achievement struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Name        string              `gorm:"not null;uniqueIndex" json:"name"`
	Description string              `gorm:"not null" json:"description"`
	Category    AchievementCategory `gorm:"not null;size:20;index" json:"category"`
	Icon        string              `json:"icon"`
	BonusPoints int                 `gorm:"default:0" json:"bonus_points"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}
