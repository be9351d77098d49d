package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/repository"
	"github.com/godilite/program-recommender/internal/service"
	ts "github.com/godilite/program-recommender/internal/testsupport"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Programs, 5)
	assert.Len(t, c.Sections, 2)
	assert.Equal(t, "Intressen", c.Sections[0].Title)
	assert.Equal(t, "2.5", c.Sections[1].Questions[0].Answers[1].Scores["Ekonomiprogrammet"])
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			yaml:    "programs: [",
			wantErr: "decode catalog",
		},
		{
			name:    "program without id",
			yaml:    "programs:\n  - name: Teknik\n",
			wantErr: "needs an id",
		},
		{
			name:    "duplicate program",
			yaml:    "programs:\n  - {id: 1, name: A}\n  - {id: 2, name: A}\n",
			wantErr: "duplicate program",
		},
		{
			name: "duplicate answer id",
			yaml: `
programs: [{id: 1, name: A}]
sections:
  - id: 1
    questions:
      - id: 1
        answers: [{id: 1, text: Ja}, {id: 1, text: Nej}]
`,
			wantErr: "duplicate answer id 1",
		},
		{
			name: "unknown program in scores",
			yaml: `
programs: [{id: 1, name: A}]
sections:
  - id: 1
    questions:
      - id: 1
        answers: [{id: 1, text: Ja, scores: {B: 3}}]
`,
			wantErr: `unknown program "B"`,
		},
		{
			name: "non-numeric points",
			yaml: `
programs: [{id: 1, name: A}]
sections:
  - id: 1
    questions:
      - id: 1
        answers: [{id: 1, text: Ja, scores: {A: lots}}]
`,
			wantErr: "lots",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("programs: [{id: 7, name: Teknik}]\n"), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, c.Programs, 1)
	assert.Equal(t, int64(7), c.Programs[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply_Integration(t *testing.T) {
	ctx := context.Background()
	db := ts.NewDB(t)
	logger := zaptest.NewLogger(t)

	catalogRepo := repository.NewCatalogRepository(db)
	scoring := service.NewScoringService(repository.NewAnswerScoreRepository(db), logger)

	c, err := Default()
	require.NoError(t, err)

	want := Summary{Programs: 5, Sections: 2, Questions: 6, Answers: 15, Scores: 23}

	sum, err := Apply(ctx, c, catalogRepo, scoring, logger)
	require.NoError(t, err)
	assert.Equal(t, want, sum)

	t.Run("seeding twice updates in place", func(t *testing.T) {
		sum, err := Apply(ctx, c, catalogRepo, scoring, logger)
		require.NoError(t, err)
		assert.Equal(t, want, sum)

		programs, err := catalogRepo.ListPrograms(ctx)
		require.NoError(t, err)
		assert.Len(t, programs, 5)

		scores, err := scoring.GetAllScores(ctx)
		require.NoError(t, err)
		assert.Len(t, scores, 23)
	})

	t.Run("questions keep file order", func(t *testing.T) {
		questions, err := catalogRepo.ListQuestions(ctx)
		require.NoError(t, err)
		require.Len(t, questions, 6)
		assert.Equal(t, int64(1), questions[0].ID)
		assert.Equal(t, domain.DefaultCategory, questions[5].CategoryOrDefault())
	})

	t.Run("a survey over the seeded catalog ranks programs", func(t *testing.T) {
		surveys := service.NewSurveyService(repository.NewSurveyRepository(db), service.NewAggregator(logger), logger)
		s, err := surveys.CreateSurvey(ctx, "Alva")
		require.NoError(t, err)

		for q, a := range map[int64]int64{1: 1, 2: 4, 6: 13} {
			_, err := surveys.AddResponse(ctx, s.ID, q, a)
			require.NoError(t, err)
		}

		res, err := surveys.CompleteSurvey(ctx, s.ID)
		require.NoError(t, err)
		require.NotEmpty(t, res.Programs)
		// tech (4+9+6)/3 = 6.3 beats science (8+2+6)/3 = 5.3
		assert.Equal(t, "Teknikprogrammet", res.Programs[0].ProgramName)
		assert.Equal(t, "6.3", res.Programs[0].Score.String())
	})
}
