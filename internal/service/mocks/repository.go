package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/repository/models"
)

// MockAnswerScoreRepository is a mock implementation of the AnswerScoreRepository interface
// for testing the service layer.
type MockAnswerScoreRepository struct {
	GetAllFunc      func(ctx context.Context) ([]domain.AnswerScore, error)
	UpsertFunc      func(ctx context.Context, score domain.AnswerScore) (domain.AnswerScore, error)
	BatchUpsertFunc func(ctx context.Context, scores []domain.AnswerScore) (int, error)
}

func (m *MockAnswerScoreRepository) GetAll(ctx context.Context) ([]domain.AnswerScore, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return nil, errors.New("GetAllFunc not implemented")
}

func (m *MockAnswerScoreRepository) Upsert(ctx context.Context, score domain.AnswerScore) (domain.AnswerScore, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, score)
	}
	return domain.AnswerScore{}, errors.New("UpsertFunc not implemented")
}

func (m *MockAnswerScoreRepository) BatchUpsert(ctx context.Context, scores []domain.AnswerScore) (int, error) {
	if m.BatchUpsertFunc != nil {
		return m.BatchUpsertFunc(ctx, scores)
	}
	return 0, errors.New("BatchUpsertFunc not implemented")
}

// MockSurveyRepository is a mock implementation of the SurveyRepository interface.
type MockSurveyRepository struct {
	CreateFunc              func(ctx context.Context, userName string, createdAt time.Time) (domain.Survey, error)
	GetFunc                 func(ctx context.Context, id int64) (domain.Survey, error)
	ListFunc                func(ctx context.Context) ([]domain.Survey, error)
	UpsertResponseFunc      func(ctx context.Context, resp domain.Response, allowCompleted bool) (domain.Response, domain.SurveyStatus, error)
	LoadScoringSnapshotFunc func(ctx context.Context, surveyID int64) (models.ScoringSnapshot, error)
	SaveResultsFunc         func(ctx context.Context, surveyID int64, results domain.Results, completedAt time.Time) error
}

func (m *MockSurveyRepository) Create(ctx context.Context, userName string, createdAt time.Time) (domain.Survey, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userName, createdAt)
	}
	return domain.Survey{}, errors.New("CreateFunc not implemented")
}

func (m *MockSurveyRepository) Get(ctx context.Context, id int64) (domain.Survey, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return domain.Survey{}, errors.New("GetFunc not implemented")
}

func (m *MockSurveyRepository) List(ctx context.Context) ([]domain.Survey, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, errors.New("ListFunc not implemented")
}

func (m *MockSurveyRepository) UpsertResponse(ctx context.Context, resp domain.Response, allowCompleted bool) (domain.Response, domain.SurveyStatus, error) {
	if m.UpsertResponseFunc != nil {
		return m.UpsertResponseFunc(ctx, resp, allowCompleted)
	}
	return domain.Response{}, "", errors.New("UpsertResponseFunc not implemented")
}

func (m *MockSurveyRepository) LoadScoringSnapshot(ctx context.Context, surveyID int64) (models.ScoringSnapshot, error) {
	if m.LoadScoringSnapshotFunc != nil {
		return m.LoadScoringSnapshotFunc(ctx, surveyID)
	}
	return models.ScoringSnapshot{}, errors.New("LoadScoringSnapshotFunc not implemented")
}

func (m *MockSurveyRepository) SaveResults(ctx context.Context, surveyID int64, results domain.Results, completedAt time.Time) error {
	if m.SaveResultsFunc != nil {
		return m.SaveResultsFunc(ctx, surveyID, results, completedAt)
	}
	return errors.New("SaveResultsFunc not implemented")
}

// MockCatalogRepository is a mock implementation of the CatalogRepository interface.
type MockCatalogRepository struct {
	ListProgramsFunc   func(ctx context.Context) ([]domain.Program, error)
	GetProgramFunc     func(ctx context.Context, id int64) (domain.Program, error)
	UpsertProgramFunc  func(ctx context.Context, p domain.Program) (domain.Program, error)
	DeleteProgramFunc  func(ctx context.Context, id int64) error
	ListSectionsFunc   func(ctx context.Context) ([]domain.QuestionSection, error)
	GetSectionFunc     func(ctx context.Context, id int64) (domain.QuestionSection, error)
	UpsertSectionFunc  func(ctx context.Context, s domain.QuestionSection) (domain.QuestionSection, error)
	DeleteSectionFunc  func(ctx context.Context, id int64) error
	ListQuestionsFunc  func(ctx context.Context) ([]domain.Question, error)
	GetQuestionFunc    func(ctx context.Context, id int64) (domain.Question, error)
	UpsertQuestionFunc func(ctx context.Context, q domain.Question) (domain.Question, error)
	DeleteQuestionFunc func(ctx context.Context, id int64) error
	GetAnswerFunc      func(ctx context.Context, id int64) (domain.Answer, error)
	UpsertAnswerFunc   func(ctx context.Context, a domain.Answer) (domain.Answer, error)
	DeleteAnswerFunc   func(ctx context.Context, id int64) error
}

func (m *MockCatalogRepository) ListPrograms(ctx context.Context) ([]domain.Program, error) {
	if m.ListProgramsFunc != nil {
		return m.ListProgramsFunc(ctx)
	}
	return nil, errors.New("ListProgramsFunc not implemented")
}

func (m *MockCatalogRepository) GetProgram(ctx context.Context, id int64) (domain.Program, error) {
	if m.GetProgramFunc != nil {
		return m.GetProgramFunc(ctx, id)
	}
	return domain.Program{}, errors.New("GetProgramFunc not implemented")
}

func (m *MockCatalogRepository) UpsertProgram(ctx context.Context, p domain.Program) (domain.Program, error) {
	if m.UpsertProgramFunc != nil {
		return m.UpsertProgramFunc(ctx, p)
	}
	return domain.Program{}, errors.New("UpsertProgramFunc not implemented")
}

func (m *MockCatalogRepository) DeleteProgram(ctx context.Context, id int64) error {
	if m.DeleteProgramFunc != nil {
		return m.DeleteProgramFunc(ctx, id)
	}
	return errors.New("DeleteProgramFunc not implemented")
}

func (m *MockCatalogRepository) ListSections(ctx context.Context) ([]domain.QuestionSection, error) {
	if m.ListSectionsFunc != nil {
		return m.ListSectionsFunc(ctx)
	}
	return nil, errors.New("ListSectionsFunc not implemented")
}

func (m *MockCatalogRepository) GetSection(ctx context.Context, id int64) (domain.QuestionSection, error) {
	if m.GetSectionFunc != nil {
		return m.GetSectionFunc(ctx, id)
	}
	return domain.QuestionSection{}, errors.New("GetSectionFunc not implemented")
}

func (m *MockCatalogRepository) UpsertSection(ctx context.Context, s domain.QuestionSection) (domain.QuestionSection, error) {
	if m.UpsertSectionFunc != nil {
		return m.UpsertSectionFunc(ctx, s)
	}
	return domain.QuestionSection{}, errors.New("UpsertSectionFunc not implemented")
}

func (m *MockCatalogRepository) DeleteSection(ctx context.Context, id int64) error {
	if m.DeleteSectionFunc != nil {
		return m.DeleteSectionFunc(ctx, id)
	}
	return errors.New("DeleteSectionFunc not implemented")
}

func (m *MockCatalogRepository) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx)
	}
	return nil, errors.New("ListQuestionsFunc not implemented")
}

func (m *MockCatalogRepository) GetQuestion(ctx context.Context, id int64) (domain.Question, error) {
	if m.GetQuestionFunc != nil {
		return m.GetQuestionFunc(ctx, id)
	}
	return domain.Question{}, errors.New("GetQuestionFunc not implemented")
}

func (m *MockCatalogRepository) UpsertQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	if m.UpsertQuestionFunc != nil {
		return m.UpsertQuestionFunc(ctx, q)
	}
	return domain.Question{}, errors.New("UpsertQuestionFunc not implemented")
}

func (m *MockCatalogRepository) DeleteQuestion(ctx context.Context, id int64) error {
	if m.DeleteQuestionFunc != nil {
		return m.DeleteQuestionFunc(ctx, id)
	}
	return errors.New("DeleteQuestionFunc not implemented")
}

func (m *MockCatalogRepository) GetAnswer(ctx context.Context, id int64) (domain.Answer, error) {
	if m.GetAnswerFunc != nil {
		return m.GetAnswerFunc(ctx, id)
	}
	return domain.Answer{}, errors.New("GetAnswerFunc not implemented")
}

func (m *MockCatalogRepository) UpsertAnswer(ctx context.Context, a domain.Answer) (domain.Answer, error) {
	if m.UpsertAnswerFunc != nil {
		return m.UpsertAnswerFunc(ctx, a)
	}
	return domain.Answer{}, errors.New("UpsertAnswerFunc not implemented")
}

func (m *MockCatalogRepository) DeleteAnswer(ctx context.Context, id int64) error {
	if m.DeleteAnswerFunc != nil {
		return m.DeleteAnswerFunc(ctx, id)
	}
	return errors.New("DeleteAnswerFunc not implemented")
}
