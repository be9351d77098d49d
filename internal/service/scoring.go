package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/godilite/program-recommender/internal/domain"
)

const (
	dbTimeout   = 1 * time.Second
	pointsScale = 2
)

// maxPoints bounds a weight to five significant digits with two decimals.
var maxPoints = decimal.RequireFromString("999.99")

// ErrStorageFailure wraps repository errors that carry no domain meaning.
var ErrStorageFailure = errors.New("storage failure")

// ScoringService manages the answer-to-program weight table.
type ScoringService struct {
	storage AnswerScoreRepository
	logger  *zap.Logger
}

// NewScoringService creates a new ScoringService instance.
func NewScoringService(storage AnswerScoreRepository, logger *zap.Logger) *ScoringService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &ScoringService{
		storage: storage,
		logger:  logger,
	}
}

// ParsePoints converts caller input into a weight. Non-numeric or out of range
// values fail with domain.ErrValidation.
func ParsePoints(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: points is required", domain.ErrValidation)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: points %q is not numeric", domain.ErrValidation, raw)
	}
	if d.Abs().GreaterThan(maxPoints) {
		return decimal.Decimal{}, fmt.Errorf("%w: points %s out of range", domain.ErrValidation, raw)
	}
	return d.Round(pointsScale), nil
}

// storageErr keeps domain errors intact and tags everything else as a storage failure.
func storageErr(err error) error {
	for _, target := range []error{domain.ErrNotFound, domain.ErrValidation, domain.ErrBatchWrite, domain.ErrSurveyCompleted} {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}

// GetAllScores returns every weight row.
func (s *ScoringService) GetAllScores(ctx context.Context) ([]domain.AnswerScore, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	scores, err := s.storage.GetAll(dbCtx)
	if err != nil {
		s.logger.Error("failed to fetch answer scores", zap.Error(err))
		return nil, storageErr(err)
	}
	return scores, nil
}

// UpsertScore replaces or inserts the weight for one (answer, program) pair.
func (s *ScoringService) UpsertScore(ctx context.Context, in ScoreInput) (domain.AnswerScore, error) {
	points, err := ParsePoints(string(in.Points))
	if err != nil {
		return domain.AnswerScore{}, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	score, err := s.storage.Upsert(dbCtx, domain.AnswerScore{
		AnswerID:  in.AnswerID,
		ProgramID: in.ProgramID,
		Points:    points,
	})
	if err != nil {
		return domain.AnswerScore{}, storageErr(err)
	}

	s.logger.Info("upserted answer score",
		zap.Int64("answer_id", score.AnswerID),
		zap.Int64("program_id", score.ProgramID),
		zap.Stringer("points", score.Points))
	return score, nil
}

// BatchUpsertScores writes all entries or none. Every entry is validated before
// the repository is touched.
func (s *ScoringService) BatchUpsertScores(ctx context.Context, in []ScoreInput) (BatchSummary, error) {
	scores := make([]domain.AnswerScore, 0, len(in))
	for i, e := range in {
		points, err := ParsePoints(string(e.Points))
		if err != nil {
			return BatchSummary{}, fmt.Errorf("%w: entry %d (answer %d, program %d): %w", domain.ErrBatchWrite, i, e.AnswerID, e.ProgramID, err)
		}
		scores = append(scores, domain.AnswerScore{AnswerID: e.AnswerID, ProgramID: e.ProgramID, Points: points})
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	n, err := s.storage.BatchUpsert(dbCtx, scores)
	if err != nil {
		s.logger.Warn("batch upsert rejected", zap.Int("entries", len(scores)), zap.Error(err))
		return BatchSummary{}, storageErr(err)
	}

	s.logger.Info("batch upserted answer scores", zap.Int("updated", n))
	return BatchSummary{Updated: n}, nil
}
