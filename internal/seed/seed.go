// Package seed loads a program and question catalog from YAML into the store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/service"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the on-disk seed format. Ids are explicit so that seeding twice
// updates rows in place instead of duplicating them.
type Catalog struct {
	Programs []Program `yaml:"programs"`
	Sections []Section `yaml:"sections"`
}

type Program struct {
	ID          int64  `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Section struct {
	ID          int64      `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Questions   []Question `yaml:"questions"`
}

type Question struct {
	ID       int64    `yaml:"id"`
	Text     string   `yaml:"text"`
	Tips     string   `yaml:"tips"`
	Category string   `yaml:"category"`
	Required bool     `yaml:"required"`
	Answers  []Answer `yaml:"answers"`
}

// Answer weights are keyed by program name. Points may be written as numbers or strings.
type Answer struct {
	ID     int64             `yaml:"id"`
	Text   string            `yaml:"text"`
	Scores map[string]string `yaml:"scores"`
}

// CatalogWriter is the subset of the catalog repository the seeder writes through.
type CatalogWriter interface {
	UpsertProgram(ctx context.Context, p domain.Program) (domain.Program, error)
	UpsertSection(ctx context.Context, s domain.QuestionSection) (domain.QuestionSection, error)
	UpsertQuestion(ctx context.Context, q domain.Question) (domain.Question, error)
	UpsertAnswer(ctx context.Context, a domain.Answer) (domain.Answer, error)
}

type ScoreWriter interface {
	BatchUpsertScores(ctx context.Context, in []service.ScoreInput) (service.BatchSummary, error)
}

// Summary counts what Apply wrote.
type Summary struct {
	Programs  int
	Sections  int
	Questions int
	Answers   int
	Scores    int
}

// Default returns the catalog bundled with the binary.
func Default() (Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("%w: decode catalog: %w", domain.ErrValidation, err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate checks ids are set and unique and that every score names a known program.
func (c Catalog) Validate() error {
	programs := make(map[string]bool, len(c.Programs))
	programIDs := make(map[int64]bool, len(c.Programs))
	for _, p := range c.Programs {
		if p.ID <= 0 || p.Name == "" {
			return fmt.Errorf("%w: program %q needs an id and a name", domain.ErrValidation, p.Name)
		}
		if programs[p.Name] || programIDs[p.ID] {
			return fmt.Errorf("%w: duplicate program %q (id %d)", domain.ErrValidation, p.Name, p.ID)
		}
		programs[p.Name] = true
		programIDs[p.ID] = true
	}

	seen := map[string]map[int64]bool{"section": {}, "question": {}, "answer": {}}
	claim := func(kind string, id int64) error {
		if id <= 0 {
			return fmt.Errorf("%w: %s without id", domain.ErrValidation, kind)
		}
		if seen[kind][id] {
			return fmt.Errorf("%w: duplicate %s id %d", domain.ErrValidation, kind, id)
		}
		seen[kind][id] = true
		return nil
	}

	for _, s := range c.Sections {
		if err := claim("section", s.ID); err != nil {
			return err
		}
		for _, q := range s.Questions {
			if err := claim("question", q.ID); err != nil {
				return err
			}
			for _, a := range q.Answers {
				if err := claim("answer", a.ID); err != nil {
					return err
				}
				for name, pts := range a.Scores {
					if !programs[name] {
						return fmt.Errorf("%w: answer %d scores unknown program %q", domain.ErrValidation, a.ID, name)
					}
					if _, err := service.ParsePoints(pts); err != nil {
						return fmt.Errorf("answer %d, program %q: %w", a.ID, name, err)
					}
				}
			}
		}
	}
	return nil
}

// Apply upserts the catalog and then writes all weights as one batch.
// Display order follows position in the file.
func Apply(ctx context.Context, c Catalog, catalog CatalogWriter, scores ScoreWriter, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var sum Summary
	programIDs := make(map[string]int64, len(c.Programs))

	for _, p := range c.Programs {
		saved, err := catalog.UpsertProgram(ctx, domain.Program{ID: p.ID, Name: p.Name, Description: p.Description})
		if err != nil {
			return sum, fmt.Errorf("seed program %q: %w", p.Name, err)
		}
		programIDs[p.Name] = saved.ID
		sum.Programs++
	}

	var weights []service.ScoreInput
	for si, s := range c.Sections {
		if _, err := catalog.UpsertSection(ctx, domain.QuestionSection{
			ID: s.ID, Title: s.Title, Description: s.Description, Order: si + 1,
		}); err != nil {
			return sum, fmt.Errorf("seed section %d: %w", s.ID, err)
		}
		sum.Sections++

		for qi, q := range s.Questions {
			if _, err := catalog.UpsertQuestion(ctx, domain.Question{
				ID:        q.ID,
				Text:      q.Text,
				Tips:      q.Tips,
				Category:  q.Category,
				Order:     qi + 1,
				Required:  q.Required,
				SectionID: s.ID,
			}); err != nil {
				return sum, fmt.Errorf("seed question %d: %w", q.ID, err)
			}
			sum.Questions++

			for ai, a := range q.Answers {
				if _, err := catalog.UpsertAnswer(ctx, domain.Answer{
					ID: a.ID, Text: a.Text, Order: ai + 1, QuestionID: q.ID,
				}); err != nil {
					return sum, fmt.Errorf("seed answer %d: %w", a.ID, err)
				}
				sum.Answers++

				names := make([]string, 0, len(a.Scores))
				for name := range a.Scores {
					names = append(names, name)
				}
				slices.Sort(names)
				for _, name := range names {
					weights = append(weights, service.ScoreInput{
						AnswerID:  a.ID,
						ProgramID: programIDs[name],
						Points:    service.PointsText(a.Scores[name]),
					})
				}
			}
		}
	}

	if len(weights) > 0 {
		res, err := scores.BatchUpsertScores(ctx, weights)
		if err != nil {
			return sum, fmt.Errorf("seed scores: %w", err)
		}
		sum.Scores = res.Updated
	}

	logger.Info("catalog seeded",
		zap.Int("programs", sum.Programs),
		zap.Int("sections", sum.Sections),
		zap.Int("questions", sum.Questions),
		zap.Int("answers", sum.Answers),
		zap.Int("scores", sum.Scores))
	return sum, nil
}
