// services/generator.go - Quiz content generator collaborator
//
// The generator is an explicit dependency handed to the handlers, never a
// package global. A remote generative API can back it; when no endpoint is
// configured or the call fails, the local template generator takes over so
// organizers always get a well-formed payload.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campusquest/models"

	"github.com/sirupsen/logrus"
)

// GenerateQuizRequest describes the quiz an organizer wants produced.
type GenerateQuizRequest struct {
	EventID        uint      `json:"event_id"`
	Topic          string    `json:"topic"`
	QuestionCount  int       `json:"question_count"`
	PointsPerEntry int       `json:"points_per_question"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
}

// QuizGenerator produces a challenge payload that goes through the same
// validation as a manually authored one.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, req GenerateQuizRequest) (*CreateChallengeInput, error)
}

// HTTPQuizGenerator calls a remote generation endpoint with a bounded timeout.
type HTTPQuizGenerator struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
	Fallback QuizGenerator
}

func NewHTTPQuizGenerator(endpoint, apiKey string, timeout time.Duration) *HTTPQuizGenerator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPQuizGenerator{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: timeout},
		Fallback: &TemplateQuizGenerator{},
	}
}

func (g *HTTPQuizGenerator) GenerateQuiz(ctx context.Context, req GenerateQuizRequest) (*CreateChallengeInput, error) {
	input, err := g.generateRemote(ctx, req)
	if err != nil {
		logrus.WithError(err).Warn("remote quiz generation failed, using template fallback")
		if g.Fallback != nil {
			return g.Fallback.GenerateQuiz(ctx, req)
		}
		return nil, err
	}
	return input, nil
}

func (g *HTTPQuizGenerator) generateRemote(ctx context.Context, req GenerateQuizRequest) (*CreateChallengeInput, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.APIKey)
	}

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var input CreateChallengeInput
	if err := json.NewDecoder(resp.Body).Decode(&input); err != nil {
		return nil, fmt.Errorf("invalid generator response: %w", err)
	}

	input.EventID = req.EventID
	input.Kind = models.ChallengeKindQuiz
	if input.StartTime.IsZero() {
		input.StartTime = req.StartTime
	}
	if input.EndTime.IsZero() {
		input.EndTime = req.EndTime
	}
	return &input, nil
}

// TemplateQuizGenerator builds a plain multiple-choice quiz locally.
type TemplateQuizGenerator struct{}

func (g *TemplateQuizGenerator) GenerateQuiz(_ context.Context, req GenerateQuizRequest) (*CreateChallengeInput, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, Validationf("topic is required")
	}
	count := req.QuestionCount
	if count <= 0 {
		count = 5
	}
	if count > 25 {
		count = 25
	}
	points := req.PointsPerEntry
	if points <= 0 {
		points = 10
	}

	input := &CreateChallengeInput{
		EventID:     req.EventID,
		Title:       topic + " Quiz",
		Description: "Test your knowledge of " + topic + ".",
		Kind:        models.ChallengeKindQuiz,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	for i := 0; i < count; i++ {
		input.Questions = append(input.Questions, QuestionInput{
			Text:          fmt.Sprintf("Question %d about %s (edit before publishing)", i+1, topic),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "A",
			Points:        points,
		})
	}
	return input, nil
}
