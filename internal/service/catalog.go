package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/godilite/program-recommender/internal/domain"
)

// CatalogService exposes the program and question catalog to transports,
// including the admin writes that maintain it.
type CatalogService struct {
	storage CatalogRepository
	logger  *zap.Logger
}

func NewCatalogService(storage CatalogRepository, logger *zap.Logger) *CatalogService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{storage: storage, logger: logger}
}

func (s *CatalogService) ListPrograms(ctx context.Context) ([]domain.Program, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	programs, err := s.storage.ListPrograms(dbCtx)
	if err != nil {
		s.logger.Error("failed to list programs", zap.Error(err))
		return nil, storageErr(err)
	}
	return programs, nil
}

func (s *CatalogService) GetProgram(ctx context.Context, id int64) (domain.Program, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	p, err := s.storage.GetProgram(dbCtx, id)
	if err != nil {
		return domain.Program{}, storageErr(err)
	}
	return p, nil
}

// CreateProgram inserts a new program. Any id in p is ignored.
func (s *CatalogService) CreateProgram(ctx context.Context, p domain.Program) (domain.Program, error) {
	p.ID = 0
	return s.saveProgram(ctx, p)
}

// UpdateProgram replaces an existing program.
func (s *CatalogService) UpdateProgram(ctx context.Context, id int64, p domain.Program) (domain.Program, error) {
	if _, err := s.GetProgram(ctx, id); err != nil {
		return domain.Program{}, err
	}
	p.ID = id
	return s.saveProgram(ctx, p)
}

func (s *CatalogService) saveProgram(ctx context.Context, p domain.Program) (domain.Program, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Program{}, fmt.Errorf("%w: program name is required", domain.ErrValidation)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	saved, err := s.storage.UpsertProgram(dbCtx, p)
	if err != nil {
		s.logger.Error("failed to save program", zap.Int64("program_id", p.ID), zap.Error(err))
		return domain.Program{}, storageErr(err)
	}
	s.logger.Info("program saved", zap.Int64("program_id", saved.ID))
	return saved, nil
}

// DeleteProgram removes a program together with its weights.
func (s *CatalogService) DeleteProgram(ctx context.Context, id int64) error {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.DeleteProgram(dbCtx, id); err != nil {
		return s.deleteErr("program", id, err)
	}
	s.logger.Info("program deleted", zap.Int64("program_id", id))
	return nil
}

func (s *CatalogService) ListSections(ctx context.Context) ([]domain.QuestionSection, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	sections, err := s.storage.ListSections(dbCtx)
	if err != nil {
		s.logger.Error("failed to list sections", zap.Error(err))
		return nil, storageErr(err)
	}
	return sections, nil
}

func (s *CatalogService) CreateSection(ctx context.Context, sec domain.QuestionSection) (domain.QuestionSection, error) {
	sec.ID = 0
	return s.saveSection(ctx, sec)
}

func (s *CatalogService) UpdateSection(ctx context.Context, id int64, sec domain.QuestionSection) (domain.QuestionSection, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.storage.GetSection(dbCtx, id); err != nil {
		return domain.QuestionSection{}, storageErr(err)
	}
	sec.ID = id
	return s.saveSection(ctx, sec)
}

func (s *CatalogService) saveSection(ctx context.Context, sec domain.QuestionSection) (domain.QuestionSection, error) {
	sec.Title = strings.TrimSpace(sec.Title)
	if sec.Title == "" {
		return domain.QuestionSection{}, fmt.Errorf("%w: section title is required", domain.ErrValidation)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	saved, err := s.storage.UpsertSection(dbCtx, sec)
	if err != nil {
		s.logger.Error("failed to save section", zap.Int64("section_id", sec.ID), zap.Error(err))
		return domain.QuestionSection{}, storageErr(err)
	}
	return saved, nil
}

// DeleteSection removes a section with its questions, answers and their weights.
func (s *CatalogService) DeleteSection(ctx context.Context, id int64) error {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.DeleteSection(dbCtx, id); err != nil {
		return s.deleteErr("section", id, err)
	}
	s.logger.Info("section deleted", zap.Int64("section_id", id))
	return nil
}

// ListQuestions returns every question with its section and answers.
func (s *CatalogService) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	questions, err := s.storage.ListQuestions(dbCtx)
	if err != nil {
		s.logger.Error("failed to list questions", zap.Error(err))
		return nil, storageErr(err)
	}
	return questions, nil
}

func (s *CatalogService) GetQuestion(ctx context.Context, id int64) (domain.Question, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	q, err := s.storage.GetQuestion(dbCtx, id)
	if err != nil {
		return domain.Question{}, storageErr(err)
	}
	return q, nil
}

// UpsertQuestion inserts q, or replaces it when q.ID names an existing question.
// created reports whether a new row was written.
func (s *CatalogService) UpsertQuestion(ctx context.Context, q domain.Question) (domain.Question, bool, error) {
	if q.ID < 0 {
		return domain.Question{}, false, fmt.Errorf("%w: question id must be positive", domain.ErrValidation)
	}
	created := q.ID == 0
	if !created {
		_, err := s.GetQuestion(ctx, q.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			created = true
		case err != nil:
			return domain.Question{}, false, err
		}
	}

	saved, err := s.saveQuestion(ctx, q)
	if err != nil {
		return domain.Question{}, false, err
	}
	return saved, created, nil
}

// UpdateQuestion replaces an existing question. Its answers are left untouched.
func (s *CatalogService) UpdateQuestion(ctx context.Context, id int64, q domain.Question) (domain.Question, error) {
	if _, err := s.GetQuestion(ctx, id); err != nil {
		return domain.Question{}, err
	}
	q.ID = id
	return s.saveQuestion(ctx, q)
}

func (s *CatalogService) saveQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		return domain.Question{}, fmt.Errorf("%w: question text is required", domain.ErrValidation)
	}
	if q.SectionID <= 0 {
		return domain.Question{}, fmt.Errorf("%w: section_id is required", domain.ErrValidation)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	saved, err := s.storage.UpsertQuestion(dbCtx, q)
	if err != nil {
		s.logger.Error("failed to save question", zap.Int64("question_id", q.ID), zap.Error(err))
		return domain.Question{}, storageErr(err)
	}
	return saved, nil
}

// DeleteQuestion removes a question with its answers and their weights.
// Responses that reference it become stale.
func (s *CatalogService) DeleteQuestion(ctx context.Context, id int64) error {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.DeleteQuestion(dbCtx, id); err != nil {
		return s.deleteErr("question", id, err)
	}
	s.logger.Info("question deleted", zap.Int64("question_id", id))
	return nil
}

// UpsertAnswer writes an answer under questionID. An existing a.ID is replaced,
// which moves the answer to questionID if it belonged elsewhere.
func (s *CatalogService) UpsertAnswer(ctx context.Context, questionID int64, a domain.Answer) (domain.Answer, bool, error) {
	a.Text = strings.TrimSpace(a.Text)
	if a.Text == "" {
		return domain.Answer{}, false, fmt.Errorf("%w: answer text is required", domain.ErrValidation)
	}
	if a.ID < 0 {
		return domain.Answer{}, false, fmt.Errorf("%w: answer id must be positive", domain.ErrValidation)
	}
	a.QuestionID = questionID

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	created := a.ID == 0
	if !created {
		_, err := s.storage.GetAnswer(dbCtx, a.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			created = true
		case err != nil:
			return domain.Answer{}, false, storageErr(err)
		}
	}

	saved, err := s.storage.UpsertAnswer(dbCtx, a)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("failed to save answer", zap.Int64("question_id", questionID), zap.Error(err))
		}
		return domain.Answer{}, false, storageErr(err)
	}
	return saved, created, nil
}

// DeleteAnswer removes an answer only when it belongs to questionID.
func (s *CatalogService) DeleteAnswer(ctx context.Context, questionID, answerID int64) error {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	a, err := s.storage.GetAnswer(dbCtx, answerID)
	if err != nil {
		return storageErr(err)
	}
	if a.QuestionID != questionID {
		return fmt.Errorf("%w: answer %d on question %d", domain.ErrNotFound, answerID, questionID)
	}
	if err := s.storage.DeleteAnswer(dbCtx, answerID); err != nil {
		return s.deleteErr("answer", answerID, err)
	}
	s.logger.Info("answer deleted", zap.Int64("question_id", questionID), zap.Int64("answer_id", answerID))
	return nil
}

func (s *CatalogService) deleteErr(entity string, id int64, err error) error {
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Error("failed to delete "+entity, zap.Int64("id", id), zap.Error(err))
	}
	return storageErr(err)
}
