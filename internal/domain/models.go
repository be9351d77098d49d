package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is applied at read time to questions stored without a category.
const DefaultCategory = "Övrigt"

func init() {
	// Points and scores travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Program is a candidate recommendation outcome, e.g. a school track.
type Program struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// QuestionSection groups questions that are shown together.
type QuestionSection struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// Question is a survey item. Answers and Section are populated by catalog reads only.
type Question struct {
	ID             int64            `json:"id"`
	Text           string           `json:"text"`
	Tips           string           `json:"tips,omitempty"`
	Category       string           `json:"category,omitempty"`
	Order          int              `json:"order"`
	Required       bool             `json:"required"`
	SectionID      int64            `json:"section_id"`
	ShowIfAnswerID *int64           `json:"show_if_answer_id,omitempty"`
	Section        *QuestionSection `json:"section,omitempty"`
	Answers        []Answer         `json:"answers,omitempty"`
}

// CategoryOrDefault returns the question category, falling back to DefaultCategory.
func (q Question) CategoryOrDefault() string {
	if strings.TrimSpace(q.Category) == "" {
		return DefaultCategory
	}
	return q.Category
}

// Answer is one selectable option of a question.
type Answer struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Order      int    `json:"order"`
	QuestionID int64  `json:"question_id"`
}

// AnswerScore weights how strongly choosing an answer supports a program.
// There is at most one row per (AnswerID, ProgramID).
type AnswerScore struct {
	AnswerID  int64           `json:"answer_id"`
	ProgramID int64           `json:"program_id"`
	Points    decimal.Decimal `json:"points"`
}

// SurveyStatus is the lifecycle state of a survey. Completed is terminal.
type SurveyStatus string

const (
	SurveyOpen      SurveyStatus = "open"
	SurveyCompleted SurveyStatus = "completed"
)

// Survey is one respondent's session.
type Survey struct {
	ID          int64      `json:"id"`
	UserName    string     `json:"user_name,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Results     *Results   `json:"results"`
	CreatedAt   time.Time  `json:"created_at"`
	Responses   []Response `json:"responses,omitempty"`
}

// Status derives the tagged lifecycle state from the completion flag.
func (s Survey) Status() SurveyStatus {
	if s.Completed {
		return SurveyCompleted
	}
	return SurveyOpen
}

// Response is the answer chosen for one question within one survey.
// Question and Answer are nil when the catalog entry no longer exists.
type Response struct {
	ID         int64     `json:"id"`
	SurveyID   int64     `json:"survey_id"`
	QuestionID int64     `json:"question_id"`
	AnswerID   int64     `json:"answer_id"`
	Question   *Question `json:"question,omitempty"`
	Answer     *Answer   `json:"answer,omitempty"`
}
