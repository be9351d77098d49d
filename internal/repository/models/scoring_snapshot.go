package models

import "github.com/godilite/program-recommender/internal/domain"

// ScoringSnapshot is everything the aggregator needs for one survey, read in a single transaction.
type ScoringSnapshot struct {
	SurveyID  int64
	Responses []ResponseRow
	Weights   []domain.AnswerScore
	Programs  []domain.Program
}

// ResponseRow is a response joined to its catalog entries.
// Question or Answer is nil when the referenced row was deleted.
type ResponseRow struct {
	ResponseID int64
	QuestionID int64
	AnswerID   int64
	Question   *domain.Question
	Answer     *domain.Answer
}
