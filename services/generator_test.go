package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusquest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateRequest() GenerateQuizRequest {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return GenerateQuizRequest{
		EventID:        7,
		Topic:          "Campus History",
		QuestionCount:  3,
		PointsPerEntry: 10,
		StartTime:      start,
		EndTime:        start.Add(24 * time.Hour),
	}
}

func TestTemplateQuizGenerator(t *testing.T) {
	g := &TemplateQuizGenerator{}

	input, err := g.GenerateQuiz(context.Background(), generateRequest())
	require.NoError(t, err)

	assert.Equal(t, uint(7), input.EventID)
	assert.Equal(t, models.ChallengeKindQuiz, input.Kind)
	assert.Len(t, input.Questions, 3)
	for _, q := range input.Questions {
		assert.Equal(t, 10, q.Points)
		assert.NotEmpty(t, q.CorrectAnswer)
	}

	// The generated payload must survive the same checks as a manual one.
	assert.NoError(t, validateChallengePayload(*input))
}

func TestTemplateQuizGeneratorDefaults(t *testing.T) {
	g := &TemplateQuizGenerator{}

	req := generateRequest()
	req.QuestionCount = 0
	req.PointsPerEntry = 0

	input, err := g.GenerateQuiz(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, input.Questions, 5)
	assert.Equal(t, 10, input.Questions[0].Points)

	req.QuestionCount = 500
	input, err = g.GenerateQuiz(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, input.Questions, 25)
}

func TestTemplateQuizGeneratorRequiresTopic(t *testing.T) {
	g := &TemplateQuizGenerator{}

	req := generateRequest()
	req.Topic = "   "

	_, err := g.GenerateQuiz(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHTTPQuizGeneratorRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(CreateChallengeInput{
			Title: "Remote Quiz",
			Questions: []QuestionInput{
				{Text: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "B", Points: 5},
			},
		})
	}))
	defer server.Close()

	g := NewHTTPQuizGenerator(server.URL, "test-key", time.Second)

	input, err := g.GenerateQuiz(context.Background(), generateRequest())
	require.NoError(t, err)

	assert.Equal(t, "Remote Quiz", input.Title)
	// Event binding and kind come from the request, not the remote payload.
	assert.Equal(t, uint(7), input.EventID)
	assert.Equal(t, models.ChallengeKindQuiz, input.Kind)
	assert.False(t, input.StartTime.IsZero())
}

func TestHTTPQuizGeneratorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	g := NewHTTPQuizGenerator(server.URL, "", time.Second)

	input, err := g.GenerateQuiz(context.Background(), generateRequest())
	require.NoError(t, err)

	// Template output, not the failed remote response.
	assert.Contains(t, input.Title, "Campus History")
	assert.Len(t, input.Questions, 3)
}
