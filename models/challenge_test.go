package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeKindValid(t *testing.T) {
	assert.True(t, ChallengeKindQuiz.Valid())
	assert.True(t, ChallengeKindScavenger.Valid())
	assert.True(t, ChallengeKindFeedback.Valid())
	assert.False(t, ChallengeKind("raffle").Valid())
	assert.False(t, ChallengeKind("").Valid())
}

func TestChallengeVisibleAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	challenge := Challenge{IsActive: true, StartTime: start, EndTime: end}

	assert.False(t, challenge.VisibleAt(start.Add(-time.Minute)))
	assert.True(t, challenge.VisibleAt(start))
	assert.True(t, challenge.VisibleAt(start.Add(time.Hour)))
	assert.True(t, challenge.VisibleAt(end))
	assert.False(t, challenge.VisibleAt(end.Add(time.Minute)))

	challenge.IsActive = false
	assert.False(t, challenge.VisibleAt(start.Add(time.Hour)))
}

func TestQuizQuestionJSONHidesAnswerKey(t *testing.T) {
	question := QuizQuestion{
		Text:          "What year was the campus founded?",
		CorrectAnswer: "1952",
		Points:        10,
	}
	require.NoError(t, question.SetOptions([]string{"1948", "1952", "1961"}))

	data, err := json.Marshal(question)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.NotContains(t, decoded, "correct_answer")
	assert.Equal(t, []interface{}{"1948", "1952", "1961"}, decoded["options"])
}

func TestQuizQuestionJSONRejectsCorruptOptions(t *testing.T) {
	question := QuizQuestion{Text: "q", OptionsJSON: "{not json"}

	_, err := json.Marshal(question)
	assert.Error(t, err)
}

func TestScavengerLocationJSONHidesCode(t *testing.T) {
	location := ScavengerLocation{Name: "Library", Hint: "Where the books live", Code: "LIB-42", Points: 15}

	data, err := json.Marshal(location)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "LIB-42")
	assert.Contains(t, string(data), "Where the books live")
}
