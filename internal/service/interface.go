package service

import (
	"context"
	"time"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/repository/models"
)

// AnswerScoreRepository defines the storage operations for the weight table.
type AnswerScoreRepository interface {
	GetAll(ctx context.Context) ([]domain.AnswerScore, error)
	Upsert(ctx context.Context, score domain.AnswerScore) (domain.AnswerScore, error)
	BatchUpsert(ctx context.Context, scores []domain.AnswerScore) (int, error)
}

// SurveyRepository defines the storage operations for surveys and their responses.
type SurveyRepository interface {
	Create(ctx context.Context, userName string, createdAt time.Time) (domain.Survey, error)
	Get(ctx context.Context, id int64) (domain.Survey, error)
	List(ctx context.Context) ([]domain.Survey, error)
	UpsertResponse(ctx context.Context, resp domain.Response, allowCompleted bool) (domain.Response, domain.SurveyStatus, error)
	LoadScoringSnapshot(ctx context.Context, surveyID int64) (models.ScoringSnapshot, error)
	SaveResults(ctx context.Context, surveyID int64, results domain.Results, completedAt time.Time) error
}

// CatalogRepository defines the storage operations for programs, sections, questions and answers.
type CatalogRepository interface {
	ListPrograms(ctx context.Context) ([]domain.Program, error)
	GetProgram(ctx context.Context, id int64) (domain.Program, error)
	UpsertProgram(ctx context.Context, p domain.Program) (domain.Program, error)
	DeleteProgram(ctx context.Context, id int64) error

	ListSections(ctx context.Context) ([]domain.QuestionSection, error)
	GetSection(ctx context.Context, id int64) (domain.QuestionSection, error)
	UpsertSection(ctx context.Context, s domain.QuestionSection) (domain.QuestionSection, error)
	DeleteSection(ctx context.Context, id int64) error

	ListQuestions(ctx context.Context) ([]domain.Question, error)
	GetQuestion(ctx context.Context, id int64) (domain.Question, error)
	UpsertQuestion(ctx context.Context, q domain.Question) (domain.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error

	GetAnswer(ctx context.Context, id int64) (domain.Answer, error)
	UpsertAnswer(ctx context.Context, a domain.Answer) (domain.Answer, error)
	DeleteAnswer(ctx context.Context, id int64) error
}
