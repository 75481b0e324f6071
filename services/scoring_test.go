package services

import (
	"testing"

	"campusquest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizQuestions(points ...int) []models.QuizQuestion {
	questions := make([]models.QuizQuestion, 0, len(points))
	for i, p := range points {
		questions = append(questions, models.QuizQuestion{
			Position:      i,
			Text:          "q",
			CorrectAnswer: "B",
			Points:        p,
		})
	}
	return questions
}

func TestGradeQuizPartiallyCorrect(t *testing.T) {
	// Three questions worth 5, 10, 15, correct answer "B" for each.
	questions := quizQuestions(5, 10, 15)

	grade := GradeQuiz(questions, []string{"B", "A", "B"})

	assert.Equal(t, 20, grade.TotalPoints)
	assert.Equal(t, 2, grade.CorrectCount)
	assert.Equal(t, 3, grade.TotalQuestions)

	require.Len(t, grade.Results, 3)
	assert.True(t, grade.Results[0].Correct)
	assert.Equal(t, 5, grade.Results[0].Points)
	assert.False(t, grade.Results[1].Correct)
	assert.Equal(t, 0, grade.Results[1].Points)
	assert.True(t, grade.Results[2].Correct)
	assert.Equal(t, 15, grade.Results[2].Points)
}

func TestGradeQuizAllCorrect(t *testing.T) {
	questions := quizQuestions(5, 10, 15)

	grade := GradeQuiz(questions, []string{"B", "B", "B"})

	assert.Equal(t, 30, grade.TotalPoints)
	assert.Equal(t, 3, grade.CorrectCount)
}

func TestGradeQuizExtraAnswersIgnored(t *testing.T) {
	questions := quizQuestions(5)

	grade := GradeQuiz(questions, []string{"B", "B", "B", "B"})

	assert.Equal(t, 5, grade.TotalPoints)
	assert.Equal(t, 1, grade.CorrectCount)
	assert.Len(t, grade.Results, 1)
}

func TestGradeQuizMissingAnswersScoreZero(t *testing.T) {
	questions := quizQuestions(5, 10, 15)

	grade := GradeQuiz(questions, []string{"B"})

	assert.Equal(t, 5, grade.TotalPoints)
	assert.Equal(t, 1, grade.CorrectCount)
	require.Len(t, grade.Results, 3)
	assert.False(t, grade.Results[1].Correct)
	assert.Equal(t, "", grade.Results[1].Answer)
	assert.False(t, grade.Results[2].Correct)
}

func TestGradeQuizExactEquality(t *testing.T) {
	questions := []models.QuizQuestion{{CorrectAnswer: "B", Points: 10}}

	// Case and whitespace matter.
	assert.Equal(t, 0, GradeQuiz(questions, []string{"b"}).TotalPoints)
	assert.Equal(t, 0, GradeQuiz(questions, []string{" B"}).TotalPoints)
	assert.Equal(t, 10, GradeQuiz(questions, []string{"B"}).TotalPoints)
}

func scavengerLocations() []models.ScavengerLocation {
	return []models.ScavengerLocation{
		{Position: 0, Name: "Library", Code: "L1", Points: 10},
		{Position: 1, Name: "Student Union", Code: "L2", Points: 20},
	}
}

func TestGradeCheckinMatch(t *testing.T) {
	index, points, err := GradeCheckin(scavengerLocations(), "L2")

	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.Equal(t, 20, points)
}

func TestGradeCheckinUnknownCode(t *testing.T) {
	_, _, err := GradeCheckin(scavengerLocations(), "NOPE")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPercentComplete(t *testing.T) {
	// Scenario: two locations, checked in one then both.
	assert.Equal(t, 50, percentComplete(1, 2))
	assert.Equal(t, 100, percentComplete(2, 2))

	assert.Equal(t, 0, percentComplete(0, 2))
	assert.Equal(t, 33, percentComplete(1, 3))
	assert.Equal(t, 0, percentComplete(0, 0))
	assert.Equal(t, 100, percentComplete(5, 2))
}

func TestCapPoints(t *testing.T) {
	assert.Equal(t, 30, capPoints(30, 30))
	assert.Equal(t, 30, capPoints(45, 30))
	assert.Equal(t, 10, capPoints(10, 30))
	// Zero max means no declared total to cap against.
	assert.Equal(t, 99, capPoints(99, 0))
}
