package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/repository"
	ts "github.com/godilite/program-recommender/internal/testsupport"
)

func TestSurveyRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := ts.NewDB(t)
	ts.SeedCatalog(t, db)
	repo := repository.NewSurveyRepository(db)
	baseTime := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)

	t.Run("Create then Get returns an open survey without responses", func(t *testing.T) {
		s, err := repo.Create(ctx, "Alva", baseTime)
		require.NoError(t, err)
		assert.NotZero(t, s.ID)

		got, err := repo.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alva", got.UserName)
		assert.False(t, got.Completed)
		assert.Nil(t, got.CompletedAt)
		assert.Nil(t, got.Results)
		assert.True(t, baseTime.Equal(got.CreatedAt))
		assert.NotNil(t, got.Responses)
		assert.Empty(t, got.Responses)

		assert.Equal(t, domain.SurveyOpen, got.Status())
	})

	t.Run("unknown survey is not found", func(t *testing.T) {
		_, err := repo.Get(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, _, err = repo.UpsertResponse(ctx, domain.Response{SurveyID: 999, QuestionID: ts.QuestionLab, AnswerID: ts.AnswerLabYes}, true)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = repo.LoadScoringSnapshot(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = repo.SaveResults(ctx, 999, domain.Results{}, baseTime)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("UpsertResponse keeps one row per question", func(t *testing.T) {
		s, err := repo.Create(ctx, "Bo", baseTime)
		require.NoError(t, err)

		first, status, err := repo.UpsertResponse(ctx, domain.Response{SurveyID: s.ID, QuestionID: ts.QuestionLab, AnswerID: ts.AnswerLabYes}, false)
		require.NoError(t, err)
		assert.Equal(t, domain.SurveyOpen, status)
		second, _, err := repo.UpsertResponse(ctx, domain.Response{SurveyID: s.ID, QuestionID: ts.QuestionLab, AnswerID: ts.AnswerLabNo}, false)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		got, err := repo.Get(ctx, s.ID)
		require.NoError(t, err)
		require.Len(t, got.Responses, 1)
		assert.Equal(t, ts.AnswerLabNo, got.Responses[0].AnswerID)
		require.NotNil(t, got.Responses[0].Answer)
		assert.Equal(t, "Nej", got.Responses[0].Answer.Text)
		require.NotNil(t, got.Responses[0].Question)
		assert.Equal(t, "Intressen", got.Responses[0].Question.Category)
	})

	t.Run("LoadScoringSnapshot reads responses, their weights and programs", func(t *testing.T) {
		s, err := repo.Create(ctx, "Cleo", baseTime)
		require.NoError(t, err)
		for _, r := range []domain.Response{
			{SurveyID: s.ID, QuestionID: ts.QuestionLab, AnswerID: ts.AnswerLabYes},
			{SurveyID: s.ID, QuestionID: ts.QuestionNumbers, AnswerID: ts.AnswerNumbersNo},
		} {
			_, _, err := repo.UpsertResponse(ctx, r, false)
			require.NoError(t, err)
		}

		snap, err := repo.LoadScoringSnapshot(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, snap.SurveyID)
		require.Len(t, snap.Responses, 2)
		assert.Len(t, snap.Weights, 3)
		require.Len(t, snap.Programs, 3)
		assert.Equal(t, "Naturvetenskap", snap.Programs[0].Name)

		for _, w := range snap.Weights {
			assert.Contains(t, []int64{ts.AnswerLabYes, ts.AnswerNumbersNo}, w.AnswerID)
		}
		assert.Empty(t, snap.Responses[1].Question.Category)
	})

	t.Run("SaveResults marks the survey completed and round-trips results", func(t *testing.T) {
		s, err := repo.Create(ctx, "Dag", baseTime)
		require.NoError(t, err)

		completedAt := baseTime.Add(time.Hour)
		results := domain.Results{
			CalculatedAt: completedAt,
			Programs: []domain.ProgramResult{{
				ProgramID:         ts.ProgramTech,
				ProgramName:       "Teknik",
				Score:             decimal.RequireFromString("7.5"),
				QuestionsAnswered: 2,
				CategoryBreakdown: map[string]decimal.Decimal{"Intressen": decimal.NewFromInt(15)},
				TopContributingAnswers: []domain.Contribution{{
					QuestionID: ts.QuestionTeam, AnswerID: ts.AnswerTeamYes, Points: decimal.NewFromInt(7), Category: "Arbetssätt",
				}},
				Rank: 1,
			}},
		}
		require.NoError(t, repo.SaveResults(ctx, s.ID, results, completedAt))

		got, err := repo.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.True(t, got.Completed)
		require.NotNil(t, got.CompletedAt)
		assert.True(t, completedAt.Equal(*got.CompletedAt))
		require.NotNil(t, got.Results)
		require.Len(t, got.Results.Programs, 1)

		p := got.Results.Programs[0]
		assert.Equal(t, "7.5", p.Score.String())
		assert.Equal(t, "15", p.CategoryBreakdown["Intressen"].String())
		assert.Equal(t, 1, p.Rank)
		require.Len(t, p.TopContributingAnswers, 1)
		assert.Equal(t, "Arbetssätt", p.TopContributingAnswers[0].Category)

		assert.Equal(t, domain.SurveyCompleted, got.Status())
	})

	t.Run("UpsertResponse checks completion inside the write", func(t *testing.T) {
		s, err := repo.Create(ctx, "Frej", baseTime)
		require.NoError(t, err)
		_, _, err = repo.UpsertResponse(ctx, domain.Response{SurveyID: s.ID, QuestionID: ts.QuestionLab, AnswerID: ts.AnswerLabYes}, false)
		require.NoError(t, err)
		require.NoError(t, repo.SaveResults(ctx, s.ID, domain.Results{CalculatedAt: baseTime}, baseTime))

		_, _, err = repo.UpsertResponse(ctx, domain.Response{SurveyID: s.ID, QuestionID: ts.QuestionLab, AnswerID: ts.AnswerLabNo}, false)
		assert.ErrorIs(t, err, domain.ErrSurveyCompleted)

		got, err := repo.Get(ctx, s.ID)
		require.NoError(t, err)
		require.Len(t, got.Responses, 1)
		assert.Equal(t, ts.AnswerLabYes, got.Responses[0].AnswerID)

		_, status, err := repo.UpsertResponse(ctx, domain.Response{SurveyID: s.ID, QuestionID: ts.QuestionLab, AnswerID: ts.AnswerLabNo}, true)
		require.NoError(t, err)
		assert.Equal(t, domain.SurveyCompleted, status)
	})

	t.Run("List returns surveys newest first", func(t *testing.T) {
		db := ts.NewDB(t)
		repo := repository.NewSurveyRepository(db)

		older, err := repo.Create(ctx, "older", baseTime)
		require.NoError(t, err)
		newer, err := repo.Create(ctx, "newer", baseTime.Add(time.Minute))
		require.NoError(t, err)
		sameTime, err := repo.Create(ctx, "same", baseTime.Add(time.Minute))
		require.NoError(t, err)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []int64{sameTime.ID, newer.ID, older.ID}, []int64{list[0].ID, list[1].ID, list[2].ID})
	})

	t.Run("responses survive catalog deletes as stale references", func(t *testing.T) {
		catalog := repository.NewCatalogRepository(db)
		s, err := repo.Create(ctx, "Eir", baseTime)
		require.NoError(t, err)
		_, _, err = repo.UpsertResponse(ctx, domain.Response{SurveyID: s.ID, QuestionID: ts.QuestionNumbers, AnswerID: ts.AnswerNumbersYes}, false)
		require.NoError(t, err)
		_, _, err = repo.UpsertResponse(ctx, domain.Response{SurveyID: s.ID, QuestionID: ts.QuestionTeam, AnswerID: ts.AnswerTeamNo}, false)
		require.NoError(t, err)

		require.NoError(t, catalog.DeleteAnswer(ctx, ts.AnswerNumbersYes))
		require.NoError(t, catalog.DeleteQuestion(ctx, ts.QuestionTeam))

		snap, err := repo.LoadScoringSnapshot(ctx, s.ID)
		require.NoError(t, err)
		require.Len(t, snap.Responses, 2)

		assert.NotNil(t, snap.Responses[0].Question)
		assert.Nil(t, snap.Responses[0].Answer)
		assert.Nil(t, snap.Responses[1].Question)
		assert.Nil(t, snap.Responses[1].Answer)
		assert.Empty(t, snap.Weights)
	})
}
