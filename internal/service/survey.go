package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/godilite/program-recommender/internal/domain"
)

// SurveyService drives a survey from creation through completion.
type SurveyService struct {
	storage    SurveyRepository
	aggregator *Aggregator
	logger     *zap.Logger
	now        func() time.Time
	allowEdits bool
}

type SurveyOption func(*SurveyService)

// WithClock replaces time.Now for created_at and completion timestamps.
func WithClock(now func() time.Time) SurveyOption {
	return func(s *SurveyService) { s.now = now }
}

// WithEditsAfterCompletion lets AddResponse change a completed survey.
// The stored results stay as they were until the survey is completed again.
func WithEditsAfterCompletion(allow bool) SurveyOption {
	return func(s *SurveyService) { s.allowEdits = allow }
}

// NewSurveyService creates a new SurveyService instance.
func NewSurveyService(storage SurveyRepository, aggregator *Aggregator, logger *zap.Logger, opts ...SurveyOption) *SurveyService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	if aggregator == nil {
		aggregator = NewAggregator(logger)
	}
	s := &SurveyService{
		storage:    storage,
		aggregator: aggregator,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSurvey opens a new survey. The user name is optional.
func (s *SurveyService) CreateSurvey(ctx context.Context, userName string) (domain.Survey, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	survey, err := s.storage.Create(dbCtx, strings.TrimSpace(userName), s.now())
	if err != nil {
		s.logger.Error("failed to create survey", zap.Error(err))
		return domain.Survey{}, storageErr(err)
	}
	survey.Responses = []domain.Response{}

	s.logger.Info("survey created", zap.Int64("survey_id", survey.ID))
	return survey, nil
}

// AddResponse records the chosen answer for a question, replacing an earlier choice.
// Whether the answer belongs to the question is not checked.
func (s *SurveyService) AddResponse(ctx context.Context, surveyID, questionID, answerID int64) (domain.Response, error) {
	if questionID <= 0 || answerID <= 0 {
		return domain.Response{}, fmt.Errorf("%w: question_id and answer_id are required", domain.ErrValidation)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	resp, status, err := s.storage.UpsertResponse(dbCtx, domain.Response{
		SurveyID:   surveyID,
		QuestionID: questionID,
		AnswerID:   answerID,
	}, s.allowEdits)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrSurveyCompleted) {
			s.logger.Error("failed to record response", zap.Int64("survey_id", surveyID), zap.Error(err))
		}
		return domain.Response{}, storageErr(err)
	}

	if status == domain.SurveyCompleted {
		s.logger.Info("response changed on completed survey",
			zap.Int64("survey_id", surveyID),
			zap.Int64("question_id", questionID))
	}
	return resp, nil
}

// CompleteSurvey aggregates the survey's responses, stores the results and marks it completed.
// Completing again recomputes from the current responses and weights.
func (s *SurveyService) CompleteSurvey(ctx context.Context, surveyID int64) (domain.Results, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	snap, err := s.storage.LoadScoringSnapshot(dbCtx, surveyID)
	if err != nil {
		return domain.Results{}, storageErr(err)
	}

	now := s.now().UTC()
	results := s.aggregator.Aggregate(snap, now)

	if err := s.storage.SaveResults(dbCtx, surveyID, results, now); err != nil {
		s.logger.Error("failed to store survey results", zap.Int64("survey_id", surveyID), zap.Error(err))
		return domain.Results{}, storageErr(err)
	}

	s.logger.Info("survey completed",
		zap.Int64("survey_id", surveyID),
		zap.Int("responses", len(snap.Responses)),
		zap.Int("programs", len(results.Programs)))
	return results, nil
}

// GetSurvey returns a survey with its responses.
func (s *SurveyService) GetSurvey(ctx context.Context, surveyID int64) (domain.Survey, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	survey, err := s.storage.Get(dbCtx, surveyID)
	if err != nil {
		return domain.Survey{}, storageErr(err)
	}
	return survey, nil
}

// ListSurveys returns all surveys, newest first.
func (s *SurveyService) ListSurveys(ctx context.Context) ([]domain.Survey, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	surveys, err := s.storage.List(dbCtx)
	if err != nil {
		s.logger.Error("failed to list surveys", zap.Error(err))
		return nil, storageErr(err)
	}
	return surveys, nil
}
