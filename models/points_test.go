package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points int
		level  int
	}{
		{0, 1},
		{1, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{200, 3},
		{250, 3},
		{1000, 11},
		{-5, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelForPoints(tt.points), "points=%d", tt.points)
	}
}

func TestActivityKindValid(t *testing.T) {
	assert.True(t, ActivityKindChallenge.Valid())
	assert.True(t, ActivityKindAchievement.Valid())
	assert.False(t, ActivityKind("bogus").Valid())
	assert.False(t, ActivityKind("").Valid())
}
