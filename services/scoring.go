// services/scoring.go - Pure grading logic for quizzes and scavenger check-ins
package services

import (
	"campusquest/models"
)

// QuestionResult is the graded outcome for a single quiz question.
type QuestionResult struct {
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
	Correct       bool   `json:"correct"`
	Points        int    `json:"points"`
}

// QuizGrade is the full grading result for one submission.
type QuizGrade struct {
	Results        []QuestionResult `json:"results"`
	TotalPoints    int              `json:"total_points"`
	CorrectCount   int              `json:"correct_count"`
	TotalQuestions int              `json:"total_questions"`
}

// GradeQuiz compares submitted answers against the question list by index.
// Exact string equality decides correctness; a missing answer for an existing
// question scores zero, and extra answers beyond the question count are
// ignored. No side effects.
func GradeQuiz(questions []models.QuizQuestion, answers []string) QuizGrade {
	grade := QuizGrade{
		Results:        make([]QuestionResult, 0, len(questions)),
		TotalQuestions: len(questions),
	}

	for i, q := range questions {
		result := QuestionResult{QuestionIndex: i}
		if i < len(answers) {
			result.Answer = answers[i]
		}
		if result.Answer == q.CorrectAnswer {
			result.Correct = true
			result.Points = q.Points
			grade.CorrectCount++
			grade.TotalPoints += q.Points
		}
		grade.Results = append(grade.Results, result)
	}

	return grade
}

// GradeCheckin scans the location list for an exact code match and returns
// its index and point value. Returns ErrNotFound when no location carries the
// code. No side effects.
func GradeCheckin(locations []models.ScavengerLocation, code string) (int, int, error) {
	for i, loc := range locations {
		if loc.Code == code {
			return i, loc.Points, nil
		}
	}
	return 0, 0, NotFoundf("no location matches the submitted code")
}
