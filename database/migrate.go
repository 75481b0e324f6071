// database/migrate.go - Database Migration Runner
package database

import (
	"campusquest/models"

	"github.com/sirupsen/logrus"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	logrus.Info("running database migrations")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.QuizQuestion{},
		&models.ScavengerLocation{},
		&models.ChallengeProgress{},
		&models.QuizAnswer{},
		&models.LocationDiscovery{},
		&models.UserPoints{},
		&models.Activity{},
		&models.Achievement{},
		&models.UserAchievement{},
	); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	createIndexes()

	logrus.Info("migrations completed")
}

// createIndexes creates indexes beyond what the model tags declare
func createIndexes() {
	db := GetDB()

	// Catalog visibility filter
	db.Exec("CREATE INDEX IF NOT EXISTS idx_challenges_event_window ON challenges(event_id, is_active, start_time, end_time)")

	// Leaderboard ordering: total descending, creation time as tie-break
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_points_leaderboard ON user_points(event_id, total_points DESC, created_at ASC)")

	// Activity log scans by ledger
	db.Exec("CREATE INDEX IF NOT EXISTS idx_activities_ledger_created ON activities(user_points_id, created_at)")

	// Progress lookups per user
	db.Exec("CREATE INDEX IF NOT EXISTS idx_progress_user ON challenge_progress(user_id)")
}
