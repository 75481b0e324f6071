package services

import (
	"testing"
	"time"

	"campusquest/models"

	"github.com/stretchr/testify/assert"
)

func validQuizInput() CreateChallengeInput {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return CreateChallengeInput{
		EventID:   1,
		Title:     "Orientation Quiz",
		Kind:      models.ChallengeKindQuiz,
		StartTime: start,
		EndTime:   start.Add(24 * time.Hour),
		Questions: []QuestionInput{
			{Text: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A", Points: 10},
		},
	}
}

func validScavengerInput() CreateChallengeInput {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return CreateChallengeInput{
		EventID:   1,
		Title:     "Campus Hunt",
		Kind:      models.ChallengeKindScavenger,
		StartTime: start,
		EndTime:   start.Add(24 * time.Hour),
		Locations: []LocationInput{
			{Name: "Library", Code: "L1", Points: 10},
			{Name: "Gym", Code: "G1", Points: 20},
		},
	}
}

func TestValidateChallengePayload(t *testing.T) {
	assert.NoError(t, validateChallengePayload(validQuizInput()))
	assert.NoError(t, validateChallengePayload(validScavengerInput()))
}

func TestValidateChallengePayloadUnknownKind(t *testing.T) {
	input := validQuizInput()
	input.Kind = "raffle"

	assert.ErrorIs(t, validateChallengePayload(input), ErrValidation)
}

func TestValidateChallengePayloadTimeWindow(t *testing.T) {
	input := validQuizInput()
	input.EndTime = input.StartTime

	assert.ErrorIs(t, validateChallengePayload(input), ErrValidation)

	input.EndTime = input.StartTime.Add(-time.Hour)
	assert.ErrorIs(t, validateChallengePayload(input), ErrValidation)
}

func TestValidateChallengePayloadQuizRules(t *testing.T) {
	input := validQuizInput()
	input.Questions = nil
	assert.ErrorIs(t, validateChallengePayload(input), ErrValidation)

	input = validQuizInput()
	input.Locations = []LocationInput{{Name: "Library", Code: "L1"}}
	assert.ErrorIs(t, validateChallengePayload(input), ErrValidation)
}

func TestValidateChallengePayloadScavengerRules(t *testing.T) {
	input := validScavengerInput()
	input.Locations = nil
	assert.ErrorIs(t, validateChallengePayload(input), ErrValidation)

	input = validScavengerInput()
	input.Questions = []QuestionInput{{Text: "Q1", CorrectAnswer: "A"}}
	assert.ErrorIs(t, validateChallengePayload(input), ErrValidation)

	input = validScavengerInput()
	input.Locations[1].Code = input.Locations[0].Code
	assert.ErrorIs(t, validateChallengePayload(input), ErrValidation)
}

func TestValidateChallengePayloadPlainKinds(t *testing.T) {
	input := validQuizInput()
	input.Kind = models.ChallengeKindSocial
	input.Questions = nil
	assert.NoError(t, validateChallengePayload(input))

	input.Questions = []QuestionInput{{Text: "Q1", CorrectAnswer: "A"}}
	assert.ErrorIs(t, validateChallengePayload(input), ErrValidation)
}

func TestPayloadPointsTotal(t *testing.T) {
	assert.Equal(t, 10, payloadPointsTotal(validQuizInput()))
	assert.Equal(t, 30, payloadPointsTotal(validScavengerInput()))
	assert.Equal(t, 0, payloadPointsTotal(CreateChallengeInput{}))
}
