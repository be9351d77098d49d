package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/repository/models"
	"github.com/godilite/program-recommender/internal/service/mocks"
)

var fixedNow = time.Date(2025, 10, 18, 9, 30, 0, 0, time.UTC)

func newTestSurveyService(repo *mocks.MockSurveyRepository, opts ...SurveyOption) *SurveyService {
	opts = append([]SurveyOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewSurveyService(repo, NewAggregator(zap.NewNop()), zap.NewNop(), opts...)
}

func TestNewSurveyService(t *testing.T) {
	t.Run("nil storage panics", func(t *testing.T) {
		assert.Panics(t, func() { NewSurveyService(nil, nil, zap.NewNop()) })
	})

	t.Run("defaults", func(t *testing.T) {
		svc := NewSurveyService(&mocks.MockSurveyRepository{}, nil, nil)
		assert.NotNil(t, svc.aggregator)
		assert.NotNil(t, svc.logger)
		assert.False(t, svc.allowEdits)
	})
}

func TestCreateSurvey(t *testing.T) {
	ctx := context.Background()

	t.Run("trims the name and stamps created_at", func(t *testing.T) {
		svc := newTestSurveyService(&mocks.MockSurveyRepository{
			CreateFunc: func(ctx context.Context, name string, at time.Time) (domain.Survey, error) {
				assert.Equal(t, "Alva", name)
				assert.Equal(t, fixedNow, at)
				return domain.Survey{ID: 3, UserName: name, CreatedAt: at}, nil
			},
		})

		s, err := svc.CreateSurvey(ctx, "  Alva ")

		require.NoError(t, err)
		assert.Equal(t, int64(3), s.ID)
		assert.Equal(t, domain.SurveyOpen, s.Status())
		assert.NotNil(t, s.Responses)
	})

	t.Run("storage error", func(t *testing.T) {
		svc := newTestSurveyService(&mocks.MockSurveyRepository{
			CreateFunc: func(ctx context.Context, name string, at time.Time) (domain.Survey, error) {
				return domain.Survey{}, errors.New("locked")
			},
		})

		_, err := svc.CreateSurvey(ctx, "")

		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestAddResponse(t *testing.T) {
	ctx := context.Background()

	upsertAs := func(status domain.SurveyStatus) func(context.Context, domain.Response, bool) (domain.Response, domain.SurveyStatus, error) {
		return func(ctx context.Context, r domain.Response, allowCompleted bool) (domain.Response, domain.SurveyStatus, error) {
			if status == domain.SurveyCompleted && !allowCompleted {
				return domain.Response{}, "", domain.ErrSurveyCompleted
			}
			r.ID = 11
			return r, status, nil
		}
	}

	t.Run("open survey accepts the response", func(t *testing.T) {
		svc := newTestSurveyService(&mocks.MockSurveyRepository{
			UpsertResponseFunc: upsertAs(domain.SurveyOpen),
		})

		r, err := svc.AddResponse(ctx, 1, 2, 3)

		require.NoError(t, err)
		assert.Equal(t, domain.Response{ID: 11, SurveyID: 1, QuestionID: 2, AnswerID: 3}, r)
	})

	t.Run("missing ids are a validation error", func(t *testing.T) {
		svc := newTestSurveyService(&mocks.MockSurveyRepository{})

		_, err := svc.AddResponse(ctx, 1, 0, 3)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown survey", func(t *testing.T) {
		svc := newTestSurveyService(&mocks.MockSurveyRepository{
			UpsertResponseFunc: func(ctx context.Context, r domain.Response, allowCompleted bool) (domain.Response, domain.SurveyStatus, error) {
				return domain.Response{}, "", domain.ErrNotFound
			},
		})

		_, err := svc.AddResponse(ctx, 9, 2, 3)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("completed survey is rejected by default", func(t *testing.T) {
		var allowed bool
		svc := newTestSurveyService(&mocks.MockSurveyRepository{
			UpsertResponseFunc: func(ctx context.Context, r domain.Response, allowCompleted bool) (domain.Response, domain.SurveyStatus, error) {
				allowed = allowCompleted
				return upsertAs(domain.SurveyCompleted)(ctx, r, allowCompleted)
			},
		})

		_, err := svc.AddResponse(ctx, 1, 2, 3)

		assert.ErrorIs(t, err, domain.ErrSurveyCompleted)
		assert.False(t, allowed)
	})

	t.Run("completed survey accepts edits when allowed", func(t *testing.T) {
		svc := newTestSurveyService(&mocks.MockSurveyRepository{
			UpsertResponseFunc: upsertAs(domain.SurveyCompleted),
		}, WithEditsAfterCompletion(true))

		r, err := svc.AddResponse(ctx, 1, 2, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(11), r.ID)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		svc := newTestSurveyService(&mocks.MockSurveyRepository{
			UpsertResponseFunc: func(ctx context.Context, r domain.Response, allowCompleted bool) (domain.Response, domain.SurveyStatus, error) {
				return domain.Response{}, "", errors.New("disk I/O error")
			},
		})

		_, err := svc.AddResponse(ctx, 1, 2, 3)

		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestCompleteSurvey(t *testing.T) {
	ctx := context.Background()

	snapshot := models.ScoringSnapshot{
		SurveyID: 5,
		Programs: []domain.Program{{ID: 1, Name: "Teknik"}},
		Responses: []models.ResponseRow{{
			ResponseID: 1, QuestionID: 1, AnswerID: 1,
			Question: &domain.Question{ID: 1, Text: "q"},
			Answer:   &domain.Answer{ID: 1, Text: "a"},
		}},
		Weights: []domain.AnswerScore{{AnswerID: 1, ProgramID: 1, Points: decimal.NewFromInt(6)}},
	}

	t.Run("aggregates and stores results", func(t *testing.T) {
		var saved domain.Results
		svc := newTestSurveyService(&mocks.MockSurveyRepository{
			LoadScoringSnapshotFunc: func(ctx context.Context, id int64) (models.ScoringSnapshot, error) {
				return snapshot, nil
			},
			SaveResultsFunc: func(ctx context.Context, id int64, res domain.Results, at time.Time) error {
				assert.Equal(t, int64(5), id)
				assert.Equal(t, fixedNow, at)
				saved = res
				return nil
			},
		})

		res, err := svc.CompleteSurvey(ctx, 5)

		require.NoError(t, err)
		require.Len(t, res.Programs, 1)
		assert.Equal(t, "6", res.Programs[0].Score.String())
		assert.Equal(t, fixedNow, res.CalculatedAt)
		assert.Equal(t, res, saved)
	})

	t.Run("unknown survey writes nothing", func(t *testing.T) {
		svc := newTestSurveyService(&mocks.MockSurveyRepository{
			LoadScoringSnapshotFunc: func(ctx context.Context, id int64) (models.ScoringSnapshot, error) {
				return models.ScoringSnapshot{}, domain.ErrNotFound
			},
			SaveResultsFunc: func(ctx context.Context, id int64, res domain.Results, at time.Time) error {
				t.Fatal("SaveResults must not be called")
				return nil
			},
		})

		_, err := svc.CompleteSurvey(ctx, 5)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("save failure is a storage failure", func(t *testing.T) {
		svc := newTestSurveyService(&mocks.MockSurveyRepository{
			LoadScoringSnapshotFunc: func(ctx context.Context, id int64) (models.ScoringSnapshot, error) {
				return snapshot, nil
			},
			SaveResultsFunc: func(ctx context.Context, id int64, res domain.Results, at time.Time) error {
				return errors.New("disk full")
			},
		})

		_, err := svc.CompleteSurvey(ctx, 5)

		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestGetAndListSurveys(t *testing.T) {
	ctx := context.Background()
	svc := newTestSurveyService(&mocks.MockSurveyRepository{
		GetFunc: func(ctx context.Context, id int64) (domain.Survey, error) {
			if id != 1 {
				return domain.Survey{}, domain.ErrNotFound
			}
			return domain.Survey{ID: 1}, nil
		},
		ListFunc: func(ctx context.Context) ([]domain.Survey, error) {
			return []domain.Survey{{ID: 2}, {ID: 1}}, nil
		},
	})

	s, err := svc.GetSurvey(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)

	_, err = svc.GetSurvey(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := svc.ListSurveys(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
