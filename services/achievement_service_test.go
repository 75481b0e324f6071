package services

import (
	"testing"

	"campusquest/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func activitiesOf(kind models.ActivityKind, count, pointsEach int) []models.Activity {
	activities := make([]models.Activity, 0, count)
	for i := 0; i < count; i++ {
		activities = append(activities, models.Activity{Kind: kind, Points: pointsEach})
	}
	return activities
}

func TestCriterionMetThresholds(t *testing.T) {
	tests := []struct {
		name       string
		category   models.AchievementCategory
		activities []models.Activity
		want       bool
	}{
		{"attendance below threshold", models.AchievementCategoryAttendance,
			activitiesOf(models.ActivityKindAttendance, 2, 5), false},
		{"attendance at threshold", models.AchievementCategoryAttendance,
			activitiesOf(models.ActivityKindAttendance, 3, 5), true},
		{"networking below threshold", models.AchievementCategoryNetworking,
			activitiesOf(models.ActivityKindNetworking, 4, 5), false},
		{"networking at threshold", models.AchievementCategoryNetworking,
			activitiesOf(models.ActivityKindNetworking, 5, 5), true},
		{"feedback at threshold", models.AchievementCategoryFeedback,
			activitiesOf(models.ActivityKindFeedback, 3, 5), true},
		{"social below threshold", models.AchievementCategorySocial,
			activitiesOf(models.ActivityKindSocial, 2, 5), false},
		{"social at threshold", models.AchievementCategorySocial,
			activitiesOf(models.ActivityKindSocial, 3, 5), true},
		{"engagement sums challenge points", models.AchievementCategoryEngagement,
			activitiesOf(models.ActivityKindChallenge, 2, 25), true},
		{"engagement sums challenge and feedback", models.AchievementCategoryEngagement,
			append(activitiesOf(models.ActivityKindChallenge, 1, 30),
				activitiesOf(models.ActivityKindFeedback, 1, 20)...), true},
		{"engagement below threshold", models.AchievementCategoryEngagement,
			activitiesOf(models.ActivityKindChallenge, 1, 49), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, criterionMet(tt.category, tt.activities))
		})
	}
}

func TestCriterionIgnoresOtherKinds(t *testing.T) {
	// Five sponsor activities satisfy nothing but sponsor-free criteria.
	activities := activitiesOf(models.ActivityKindSponsor, 5, 10)

	assert.False(t, criterionMet(models.AchievementCategoryAttendance, activities))
	assert.False(t, criterionMet(models.AchievementCategoryNetworking, activities))
	assert.False(t, criterionMet(models.AchievementCategoryEngagement, activities))
}

func TestCriterionIgnoresAchievementBonuses(t *testing.T) {
	// Bonus activities carry points but must never feed the engagement sum,
	// otherwise one award could cascade into another.
	activities := activitiesOf(models.ActivityKindAchievement, 3, 100)

	assert.False(t, criterionMet(models.AchievementCategoryEngagement, activities))
	assert.False(t, criterionMet(models.AchievementCategorySocial, activities))
}

func TestCountByKind(t *testing.T) {
	activities := append(activitiesOf(models.ActivityKindSocial, 2, 5),
		activitiesOf(models.ActivityKindFeedback, 3, 5)...)

	assert.Equal(t, 2, countByKind(activities, models.ActivityKindSocial))
	assert.Equal(t, 3, countByKind(activities, models.ActivityKindFeedback))
	assert.Equal(t, 0, countByKind(activities, models.ActivityKindSponsor))
}

// expectEvaluatePass mocks the evaluator's reads: a locked 40-point ledger,
// five networking activities, no owned achievements, and a one-entry catalog
// whose networking threshold those activities meet.
func expectEvaluatePass(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "user_points".*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "event_id", "total_points", "level"}).
			AddRow(1, 3, 9, 40, 1))
	activityRows := sqlmock.NewRows([]string{"id", "user_points_id", "kind", "points"})
	for i := 1; i <= 5; i++ {
		activityRows.AddRow(i, 1, "networking", 8)
	}
	mock.ExpectQuery(`SELECT \* FROM "activities"`).WillReturnRows(activityRows)
	mock.ExpectQuery(`SELECT "achievement_id" FROM "user_achievements"`).
		WillReturnRows(sqlmock.NewRows([]string{"achievement_id"}))
	mock.ExpectQuery(`SELECT \* FROM "achievements"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "category", "bonus_points"}).
			AddRow(3, "Super Connector", "Meet five people", "networking", 25))
}

func TestEvaluateAwardsAndLogsBonus(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAchievementService(db)

	expectEvaluatePass(mock)
	mock.ExpectQuery(`INSERT INTO "user_achievements"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	// The bonus lands in the activity log, keeping total == sum(activities).
	mock.ExpectQuery(`INSERT INTO "activities"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
	mock.ExpectExec(`UPDATE "user_points"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	awarded, err := svc.Evaluate(3, 9)
	require.NoError(t, err)

	require.Len(t, awarded, 1)
	assert.Equal(t, "Super Connector", awarded[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluateSkipsAlreadyGrantedAchievement(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAchievementService(db)

	// A concurrent pass won the grant; the unique index rejects ours.
	expectEvaluatePass(mock)
	mock.ExpectQuery(`INSERT INTO "user_achievements"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectCommit()

	awarded, err := svc.Evaluate(3, 9)
	require.NoError(t, err)

	// No award reported, and no second bonus activity or ledger update ran.
	assert.Empty(t, awarded)
	assert.NoError(t, mock.ExpectationsWereMet())
}
