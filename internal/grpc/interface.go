package grpc

import (
	"context"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/service"
)

type SurveyService interface {
	CreateSurvey(ctx context.Context, userName string) (domain.Survey, error)
	AddResponse(ctx context.Context, surveyID, questionID, answerID int64) (domain.Response, error)
	CompleteSurvey(ctx context.Context, surveyID int64) (domain.Results, error)
	GetSurvey(ctx context.Context, surveyID int64) (domain.Survey, error)
	ListSurveys(ctx context.Context) ([]domain.Survey, error)
}

type ScoringService interface {
	GetAllScores(ctx context.Context) ([]domain.AnswerScore, error)
	UpsertScore(ctx context.Context, in service.ScoreInput) (domain.AnswerScore, error)
	BatchUpsertScores(ctx context.Context, in []service.ScoreInput) (service.BatchSummary, error)
}

type CatalogService interface {
	ListPrograms(ctx context.Context) ([]domain.Program, error)
	GetProgram(ctx context.Context, id int64) (domain.Program, error)
	CreateProgram(ctx context.Context, p domain.Program) (domain.Program, error)
	UpdateProgram(ctx context.Context, id int64, p domain.Program) (domain.Program, error)
	DeleteProgram(ctx context.Context, id int64) error

	ListSections(ctx context.Context) ([]domain.QuestionSection, error)
	CreateSection(ctx context.Context, s domain.QuestionSection) (domain.QuestionSection, error)
	UpdateSection(ctx context.Context, id int64, s domain.QuestionSection) (domain.QuestionSection, error)
	DeleteSection(ctx context.Context, id int64) error

	ListQuestions(ctx context.Context) ([]domain.Question, error)
	GetQuestion(ctx context.Context, id int64) (domain.Question, error)
	UpsertQuestion(ctx context.Context, q domain.Question) (domain.Question, bool, error)
	UpdateQuestion(ctx context.Context, id int64, q domain.Question) (domain.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error

	UpsertAnswer(ctx context.Context, questionID int64, a domain.Answer) (domain.Answer, bool, error)
	DeleteAnswer(ctx context.Context, questionID, answerID int64) error
}
