package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/repository/models"
)

const (
	// TopContributionLimit caps top_contributing_answers per program.
	TopContributionLimit = 3
	scoreScale           = 1
)

// DefaultContributionThreshold is the minimum |points| for a weight to be listed as a contribution.
var DefaultContributionThreshold = decimal.NewFromInt(5)

// Aggregator turns a scoring snapshot into ranked program results.
type Aggregator struct {
	threshold decimal.Decimal
	logger    *zap.Logger
}

type AggregatorOption func(*Aggregator)

// WithContributionThreshold overrides DefaultContributionThreshold.
func WithContributionThreshold(t decimal.Decimal) AggregatorOption {
	return func(a *Aggregator) { a.threshold = t.Abs() }
}

func NewAggregator(logger *zap.Logger, opts ...AggregatorOption) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Aggregator{threshold: DefaultContributionThreshold, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type programAccumulator struct {
	program    domain.Program
	total      decimal.Decimal
	answered   int
	categories map[string]decimal.Decimal
	candidates []domain.Contribution
}

// Aggregate scores every program in the snapshot's catalog. Responses whose
// question or answer no longer exists contribute nothing.
func (a *Aggregator) Aggregate(snap models.ScoringSnapshot, calculatedAt time.Time) domain.Results {
	accs := make([]*programAccumulator, 0, len(snap.Programs))
	byProgram := make(map[int64]*programAccumulator, len(snap.Programs))
	for _, p := range snap.Programs {
		acc := &programAccumulator{
			program:    p,
			categories: make(map[string]decimal.Decimal),
		}
		accs = append(accs, acc)
		byProgram[p.ID] = acc
	}

	weights := make(map[int64][]domain.AnswerScore)
	for _, w := range snap.Weights {
		weights[w.AnswerID] = append(weights[w.AnswerID], w)
	}

	for _, r := range snap.Responses {
		if r.Question == nil || r.Answer == nil {
			a.logger.Warn("skipping response",
				zap.Int64("survey_id", snap.SurveyID),
				zap.Int64("response_id", r.ResponseID),
				zap.Int64("question_id", r.QuestionID),
				zap.Int64("answer_id", r.AnswerID),
				zap.Error(domain.ErrStaleReference))
			continue
		}
		category := r.Question.CategoryOrDefault()

		touched := make(map[int64]bool)
		for _, w := range weights[r.AnswerID] {
			acc, ok := byProgram[w.ProgramID]
			if !ok {
				continue
			}
			acc.total = acc.total.Add(w.Points)
			if !touched[w.ProgramID] {
				touched[w.ProgramID] = true
				acc.answered++
			}
			acc.categories[category] = acc.categories[category].Add(w.Points)

			if w.Points.Abs().GreaterThanOrEqual(a.threshold) {
				acc.candidates = append(acc.candidates, domain.Contribution{
					QuestionID:   r.Question.ID,
					QuestionText: r.Question.Text,
					AnswerID:     r.Answer.ID,
					AnswerText:   r.Answer.Text,
					Points:       w.Points,
					Category:     category,
				})
			}
		}
	}

	programs := make([]domain.ProgramResult, 0, len(accs))
	for _, acc := range accs {
		if acc.answered == 0 {
			continue
		}
		programs = append(programs, domain.ProgramResult{
			ProgramID:              acc.program.ID,
			ProgramName:            acc.program.Name,
			Score:                  roundHalfUp(acc.total.Div(decimal.NewFromInt(int64(acc.answered)))),
			QuestionsAnswered:      acc.answered,
			CategoryBreakdown:      acc.categories,
			TopContributingAnswers: topContributions(acc.candidates),
		})
	}

	sort.SliceStable(programs, func(i, j int) bool {
		return programs[i].Score.GreaterThan(programs[j].Score)
	})
	for i := range programs {
		programs[i].Rank = i + 1
	}

	return domain.Results{
		Programs:     programs,
		CalculatedAt: calculatedAt.UTC(),
	}
}

// roundHalfUp rounds to scoreScale places with ties going toward positive infinity,
// so -2.25 becomes -2.2 and 2.25 becomes 2.3.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(decimal.New(5, -(scoreScale + 1))).RoundFloor(scoreScale)
}

func topContributions(candidates []domain.Contribution) []domain.Contribution {
	out := make([]domain.Contribution, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points.Abs().GreaterThan(out[j].Points.Abs())
	})
	if len(out) > TopContributionLimit {
		out = out[:TopContributionLimit]
	}
	return out
}
