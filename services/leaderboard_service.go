// services/leaderboard_service.go - Ranked view over the points ledgers
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultLeaderboardLimit = 20
	maxLeaderboardLimit     = 100
	leaderboardCacheTTL     = 30 * time.Second
)

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Points      int    `json:"points"`
	Level       int    `json:"level"`
}

type LeaderboardService struct {
	db    *gorm.DB
	cache *redis.Client // nil disables caching
}

func NewLeaderboardService(db *gorm.DB, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{db: db, cache: cache}
}

// GetLeaderboard ranks an event's ledgers by total points descending. Ties
// break on earliest ledger creation, then id, so repeated queries return the
// same order. Results are cached briefly in Redis when a client is
// configured; cache errors fail open to the database.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, eventID uint, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	cacheKey := fmt.Sprintf("leaderboard:%d:%d", eventID, limit)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal(cached, &entries) == nil {
				return entries, nil
			}
		}
	}

	var entries []LeaderboardEntry
	err := s.db.Raw(`
		SELECT
			up.user_id,
			u.username,
			u.display_name,
			up.total_points AS points,
			up.level
		FROM user_points up
		JOIN users u ON u.id = up.user_id
		WHERE up.event_id = ?
		ORDER BY up.total_points DESC, up.created_at ASC, up.id ASC
		LIMIT ?
	`, eventID, limit).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	if s.cache != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, leaderboardCacheTTL).Err(); err != nil {
				logrus.WithError(err).Warn("failed to cache leaderboard")
			}
		}
	}
	return entries, nil
}
