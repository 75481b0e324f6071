package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

const leaderboardQuery = `(?s)SELECT.+FROM user_points up.+JOIN users u ON u\.id = up\.user_id.+WHERE up\.event_id = .+ORDER BY up\.total_points DESC, up\.created_at ASC, up\.id ASC.+LIMIT`

func TestGetLeaderboardRanksAndTieOrder(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewLeaderboardService(db, nil)

	// Two users tied on points; the earlier ledger keeps the higher rank.
	rows := sqlmock.NewRows([]string{"user_id", "username", "display_name", "points", "level"}).
		AddRow(2, "blake", "Blake", 80, 1).
		AddRow(5, "casey", "Casey", 80, 1).
		AddRow(9, "drew", "Drew", 50, 1)
	mock.ExpectQuery(leaderboardQuery).
		WithArgs(42, 20).
		WillReturnRows(rows)

	entries, err := svc.GetLeaderboard(context.Background(), 42, 0)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "blake", entries[0].Username)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "casey", entries[1].Username)
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, 50, entries[2].Points)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLeaderboardClampsLimit(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewLeaderboardService(db, nil)

	rows := sqlmock.NewRows([]string{"user_id", "username", "display_name", "points", "level"})
	mock.ExpectQuery(leaderboardQuery).
		WithArgs(42, 100).
		WillReturnRows(rows)

	entries, err := svc.GetLeaderboard(context.Background(), 42, 500)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLeaderboardEmptyEvent(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewLeaderboardService(db, nil)

	mock.ExpectQuery(leaderboardQuery).
		WithArgs(7, 20).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "display_name", "points", "level"}))

	entries, err := svc.GetLeaderboard(context.Background(), 7, 20)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
