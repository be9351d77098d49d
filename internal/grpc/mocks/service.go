package mocks

import (
	"context"
	"errors"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/service"
)

// MockSurveyService is a mock implementation of the SurveyService interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockSurveyService struct {
	CreateSurveyFunc   func(ctx context.Context, userName string) (domain.Survey, error)
	AddResponseFunc    func(ctx context.Context, surveyID, questionID, answerID int64) (domain.Response, error)
	CompleteSurveyFunc func(ctx context.Context, surveyID int64) (domain.Results, error)
	GetSurveyFunc      func(ctx context.Context, surveyID int64) (domain.Survey, error)
	ListSurveysFunc    func(ctx context.Context) ([]domain.Survey, error)
}

func (m *MockSurveyService) CreateSurvey(ctx context.Context, userName string) (domain.Survey, error) {
	if m.CreateSurveyFunc != nil {
		return m.CreateSurveyFunc(ctx, userName)
	}
	return domain.Survey{}, errors.New("CreateSurveyFunc not implemented")
}

func (m *MockSurveyService) AddResponse(ctx context.Context, surveyID, questionID, answerID int64) (domain.Response, error) {
	if m.AddResponseFunc != nil {
		return m.AddResponseFunc(ctx, surveyID, questionID, answerID)
	}
	return domain.Response{}, errors.New("AddResponseFunc not implemented")
}

func (m *MockSurveyService) CompleteSurvey(ctx context.Context, surveyID int64) (domain.Results, error) {
	if m.CompleteSurveyFunc != nil {
		return m.CompleteSurveyFunc(ctx, surveyID)
	}
	return domain.Results{}, errors.New("CompleteSurveyFunc not implemented")
}

func (m *MockSurveyService) GetSurvey(ctx context.Context, surveyID int64) (domain.Survey, error) {
	if m.GetSurveyFunc != nil {
		return m.GetSurveyFunc(ctx, surveyID)
	}
	return domain.Survey{}, errors.New("GetSurveyFunc not implemented")
}

func (m *MockSurveyService) ListSurveys(ctx context.Context) ([]domain.Survey, error) {
	if m.ListSurveysFunc != nil {
		return m.ListSurveysFunc(ctx)
	}
	return nil, errors.New("ListSurveysFunc not implemented")
}

// MockScoringService is a mock implementation of the ScoringService interface.
type MockScoringService struct {
	GetAllScoresFunc      func(ctx context.Context) ([]domain.AnswerScore, error)
	UpsertScoreFunc       func(ctx context.Context, in service.ScoreInput) (domain.AnswerScore, error)
	BatchUpsertScoresFunc func(ctx context.Context, in []service.ScoreInput) (service.BatchSummary, error)
}

func (m *MockScoringService) GetAllScores(ctx context.Context) ([]domain.AnswerScore, error) {
	if m.GetAllScoresFunc != nil {
		return m.GetAllScoresFunc(ctx)
	}
	return nil, errors.New("GetAllScoresFunc not implemented")
}

func (m *MockScoringService) UpsertScore(ctx context.Context, in service.ScoreInput) (domain.AnswerScore, error) {
	if m.UpsertScoreFunc != nil {
		return m.UpsertScoreFunc(ctx, in)
	}
	return domain.AnswerScore{}, errors.New("UpsertScoreFunc not implemented")
}

func (m *MockScoringService) BatchUpsertScores(ctx context.Context, in []service.ScoreInput) (service.BatchSummary, error) {
	if m.BatchUpsertScoresFunc != nil {
		return m.BatchUpsertScoresFunc(ctx, in)
	}
	return service.BatchSummary{}, errors.New("BatchUpsertScoresFunc not implemented")
}

// MockCatalogService is a mock implementation of the CatalogService interface.
type MockCatalogService struct {
	ListProgramsFunc   func(ctx context.Context) ([]domain.Program, error)
	GetProgramFunc     func(ctx context.Context, id int64) (domain.Program, error)
	CreateProgramFunc  func(ctx context.Context, p domain.Program) (domain.Program, error)
	UpdateProgramFunc  func(ctx context.Context, id int64, p domain.Program) (domain.Program, error)
	DeleteProgramFunc  func(ctx context.Context, id int64) error
	ListSectionsFunc   func(ctx context.Context) ([]domain.QuestionSection, error)
	CreateSectionFunc  func(ctx context.Context, s domain.QuestionSection) (domain.QuestionSection, error)
	UpdateSectionFunc  func(ctx context.Context, id int64, s domain.QuestionSection) (domain.QuestionSection, error)
	DeleteSectionFunc  func(ctx context.Context, id int64) error
	ListQuestionsFunc  func(ctx context.Context) ([]domain.Question, error)
	GetQuestionFunc    func(ctx context.Context, id int64) (domain.Question, error)
	UpsertQuestionFunc func(ctx context.Context, q domain.Question) (domain.Question, bool, error)
	UpdateQuestionFunc func(ctx context.Context, id int64, q domain.Question) (domain.Question, error)
	DeleteQuestionFunc func(ctx context.Context, id int64) error
	UpsertAnswerFunc   func(ctx context.Context, questionID int64, a domain.Answer) (domain.Answer, bool, error)
	DeleteAnswerFunc   func(ctx context.Context, questionID, answerID int64) error
}

func (m *MockCatalogService) ListPrograms(ctx context.Context) ([]domain.Program, error) {
	if m.ListProgramsFunc != nil {
		return m.ListProgramsFunc(ctx)
	}
	return nil, errors.New("ListProgramsFunc not implemented")
}

func (m *MockCatalogService) GetProgram(ctx context.Context, id int64) (domain.Program, error) {
	if m.GetProgramFunc != nil {
		return m.GetProgramFunc(ctx, id)
	}
	return domain.Program{}, errors.New("GetProgramFunc not implemented")
}

func (m *MockCatalogService) CreateProgram(ctx context.Context, p domain.Program) (domain.Program, error) {
	if m.CreateProgramFunc != nil {
		return m.CreateProgramFunc(ctx, p)
	}
	return domain.Program{}, errors.New("CreateProgramFunc not implemented")
}

func (m *MockCatalogService) UpdateProgram(ctx context.Context, id int64, p domain.Program) (domain.Program, error) {
	if m.UpdateProgramFunc != nil {
		return m.UpdateProgramFunc(ctx, id, p)
	}
	return domain.Program{}, errors.New("UpdateProgramFunc not implemented")
}

func (m *MockCatalogService) DeleteProgram(ctx context.Context, id int64) error {
	if m.DeleteProgramFunc != nil {
		return m.DeleteProgramFunc(ctx, id)
	}
	return errors.New("DeleteProgramFunc not implemented")
}

func (m *MockCatalogService) ListSections(ctx context.Context) ([]domain.QuestionSection, error) {
	if m.ListSectionsFunc != nil {
		return m.ListSectionsFunc(ctx)
	}
	return nil, errors.New("ListSectionsFunc not implemented")
}

func (m *MockCatalogService) CreateSection(ctx context.Context, s domain.QuestionSection) (domain.QuestionSection, error) {
	if m.CreateSectionFunc != nil {
		return m.CreateSectionFunc(ctx, s)
	}
	return domain.QuestionSection{}, errors.New("CreateSectionFunc not implemented")
}

func (m *MockCatalogService) UpdateSection(ctx context.Context, id int64, s domain.QuestionSection) (domain.QuestionSection, error) {
	if m.UpdateSectionFunc != nil {
		return m.UpdateSectionFunc(ctx, id, s)
	}
	return domain.QuestionSection{}, errors.New("UpdateSectionFunc not implemented")
}

func (m *MockCatalogService) DeleteSection(ctx context.Context, id int64) error {
	if m.DeleteSectionFunc != nil {
		return m.DeleteSectionFunc(ctx, id)
	}
	return errors.New("DeleteSectionFunc not implemented")
}

func (m *MockCatalogService) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx)
	}
	return nil, errors.New("ListQuestionsFunc not implemented")
}

func (m *MockCatalogService) GetQuestion(ctx context.Context, id int64) (domain.Question, error) {
	if m.GetQuestionFunc != nil {
		return m.GetQuestionFunc(ctx, id)
	}
	return domain.Question{}, errors.New("GetQuestionFunc not implemented")
}

func (m *MockCatalogService) UpsertQuestion(ctx context.Context, q domain.Question) (domain.Question, bool, error) {
	if m.UpsertQuestionFunc != nil {
		return m.UpsertQuestionFunc(ctx, q)
	}
	return domain.Question{}, false, errors.New("UpsertQuestionFunc not implemented")
}

func (m *MockCatalogService) UpdateQuestion(ctx context.Context, id int64, q domain.Question) (domain.Question, error) {
	if m.UpdateQuestionFunc != nil {
		return m.UpdateQuestionFunc(ctx, id, q)
	}
	return domain.Question{}, errors.New("UpdateQuestionFunc not implemented")
}

func (m *MockCatalogService) DeleteQuestion(ctx context.Context, id int64) error {
	if m.DeleteQuestionFunc != nil {
		return m.DeleteQuestionFunc(ctx, id)
	}
	return errors.New("DeleteQuestionFunc not implemented")
}

func (m *MockCatalogService) UpsertAnswer(ctx context.Context, questionID int64, a domain.Answer) (domain.Answer, bool, error) {
	if m.UpsertAnswerFunc != nil {
		return m.UpsertAnswerFunc(ctx, questionID, a)
	}
	return domain.Answer{}, false, errors.New("UpsertAnswerFunc not implemented")
}

func (m *MockCatalogService) DeleteAnswer(ctx context.Context, questionID, answerID int64) error {
	if m.DeleteAnswerFunc != nil {
		return m.DeleteAnswerFunc(ctx, questionID, answerID)
	}
	return errors.New("DeleteAnswerFunc not implemented")
}
