package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Results is the persisted output of a survey aggregation.
type Results struct {
	Programs     []ProgramResult `json:"programs"`
	CalculatedAt time.Time       `json:"calculated_at"`
}

// ProgramResult is one ranked recommendation with its supporting evidence.
type ProgramResult struct {
	ProgramID              int64                      `json:"program_id"`
	ProgramName            string                     `json:"program_name"`
	Score                  decimal.Decimal            `json:"score"`
	QuestionsAnswered      int                        `json:"questions_answered"`
	CategoryBreakdown      map[string]decimal.Decimal `json:"category_breakdown"`
	TopContributingAnswers []Contribution             `json:"top_contributing_answers"`
	Rank                   int                        `json:"rank"`
}

// Contribution is a single answer whose weight for a program was significant.
type Contribution struct {
	QuestionID   int64           `json:"question_id"`
	QuestionText string          `json:"question_text"`
	AnswerID     int64           `json:"answer_id"`
	AnswerText   string          `json:"answer_text"`
	Points       decimal.Decimal `json:"points"`
	Category     string          `json:"category"`
}
