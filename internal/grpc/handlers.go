package grpc

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/service"
	"github.com/godilite/program-recommender/pkg/cache"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
)

type GRPCHandlers struct {
	surveys  SurveyService
	scoring  ScoringService
	catalog  CatalogService
	cache    cache.Cacher
	logger   *zap.Logger
	sfGroup  singleflight.Group
	cacheTTL time.Duration
}

var _ SurveyServiceServer = (*GRPCHandlers)(nil)

// NewGRPCHandlers initializes the gRPC handlers. A nil cache disables caching.
func NewGRPCHandlers(surveys SurveyService, scoring ScoringService, catalog CatalogService, c cache.Cacher, logger *zap.Logger, ttl time.Duration) *GRPCHandlers {
	if surveys == nil || scoring == nil || catalog == nil {
		panic("nil service provided to NewGRPCHandlers")
	}
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &GRPCHandlers{
		surveys:  surveys,
		scoring:  scoring,
		catalog:  catalog,
		cache:    c,
		logger:   logger.Named("grpc-handler"),
		cacheTTL: ttl,
	}
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Info("not found", zap.String("op", op), zap.Error(err))
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrBatchWrite), errors.Is(err, domain.ErrValidation):
		s.logger.Info("invalid request", zap.String("op", op), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrSurveyCompleted):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

func requireSurveyID(id int64) error {
	if id <= 0 {
		return status.Error(codes.InvalidArgument, "survey_id is required")
	}
	return nil
}

func (s *GRPCHandlers) CreateSurvey(ctx context.Context, req *CreateSurveyRequest) (*SurveyReply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	survey, err := s.surveys.CreateSurvey(ctx, req.UserName)
	if err != nil {
		return nil, s.handleError(ctx, "CreateSurvey", err)
	}
	return &SurveyReply{Survey: survey}, nil
}

func (s *GRPCHandlers) AddResponse(ctx context.Context, req *AddResponseRequest) (*ResponseReply, error) {
	if err := requireSurveyID(req.SurveyID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	resp, err := s.surveys.AddResponse(ctx, req.SurveyID, req.QuestionID, req.AnswerID)
	if err != nil {
		return nil, s.handleError(ctx, "AddResponse", err)
	}
	return &ResponseReply{Response: resp}, nil
}

func (s *GRPCHandlers) CompleteSurvey(ctx context.Context, req *SurveyIDRequest) (*ResultsReply, error) {
	if err := requireSurveyID(req.SurveyID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	results, err := s.surveys.CompleteSurvey(ctx, req.SurveyID)
	if err != nil {
		return nil, s.handleError(ctx, "CompleteSurvey", err)
	}
	return &ResultsReply{Results: results}, nil
}

func (s *GRPCHandlers) GetSurvey(ctx context.Context, req *SurveyIDRequest) (*SurveyReply, error) {
	if err := requireSurveyID(req.SurveyID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	survey, err := s.surveys.GetSurvey(ctx, req.SurveyID)
	if err != nil {
		return nil, s.handleError(ctx, "GetSurvey", err)
	}
	return &SurveyReply{Survey: survey}, nil
}

func (s *GRPCHandlers) ListSurveys(ctx context.Context, _ *Empty) (*ListSurveysReply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	surveys, err := s.surveys.ListSurveys(ctx)
	if err != nil {
		return nil, s.handleError(ctx, "ListSurveys", err)
	}
	return &ListSurveysReply{Surveys: surveys}, nil
}

func (s *GRPCHandlers) ListScores(ctx context.Context, _ *Empty) (*ListScoresReply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	scores, err := cache.FindAndCache(ctx, s.cache, &s.sfGroup, service.CacheKeyScores, s.cacheTTL, s.logger, s.scoring.GetAllScores)
	if err != nil {
		return nil, s.handleError(ctx, "ListScores", err)
	}
	return &ListScoresReply{Scores: scores}, nil
}

func (s *GRPCHandlers) UpsertScore(ctx context.Context, req *UpsertScoreRequest) (*ScoreReply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	score, err := s.scoring.UpsertScore(ctx, *req)
	if err != nil {
		return nil, s.handleError(ctx, "UpsertScore", err)
	}
	cache.Invalidate(ctx, s.cache, s.logger, service.CacheKeyScores)
	return &ScoreReply{Score: score}, nil
}

func (s *GRPCHandlers) BatchUpsertScores(ctx context.Context, req *BatchUpsertScoresRequest) (*BatchUpsertScoresReply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	summary, err := s.scoring.BatchUpsertScores(ctx, req.Scores)
	if err != nil {
		return nil, s.handleError(ctx, "BatchUpsertScores", err)
	}
	cache.Invalidate(ctx, s.cache, s.logger, service.CacheKeyScores)
	return &BatchUpsertScoresReply{Updated: summary.Updated}, nil
}

func (s *GRPCHandlers) ListPrograms(ctx context.Context, _ *Empty) (*ListProgramsReply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	programs, err := cache.FindAndCache(ctx, s.cache, &s.sfGroup, service.CacheKeyPrograms, s.cacheTTL, s.logger, s.catalog.ListPrograms)
	if err != nil {
		return nil, s.handleError(ctx, "ListPrograms", err)
	}
	return &ListProgramsReply{Programs: programs}, nil
}

func (s *GRPCHandlers) ListQuestions(ctx context.Context, _ *Empty) (*ListQuestionsReply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	questions, err := cache.FindAndCache(ctx, s.cache, &s.sfGroup, service.CacheKeyQuestions, s.cacheTTL, s.logger, s.catalog.ListQuestions)
	if err != nil {
		return nil, s.handleError(ctx, "ListQuestions", err)
	}
	return &ListQuestionsReply{Questions: questions}, nil
}
