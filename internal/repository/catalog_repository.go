package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/godilite/program-recommender/internal/domain"
)

// CatalogRepository stores programs, sections, questions and answers.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListPrograms returns all programs in id order, which is also the ranking encounter order.
func (r *CatalogRepository) ListPrograms(ctx context.Context) ([]domain.Program, error) {
	return listPrograms(ctx, r.db)
}

func (r *CatalogRepository) GetProgram(ctx context.Context, id int64) (domain.Program, error) {
	var p domain.Program
	err := r.db.QueryRowContext(ctx, `SELECT id, name, description FROM programs WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Program{}, fmt.Errorf("%w: program %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.Program{}, fmt.Errorf("query GetProgram: %w", err)
	}
	return p, nil
}

// UpsertProgram inserts a program, or replaces it when p.ID is set.
func (r *CatalogRepository) UpsertProgram(ctx context.Context, p domain.Program) (domain.Program, error) {
	const query = `
		INSERT INTO programs (id, name, description) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, description = excluded.description
	`
	id, err := upsertWithID(ctx, r.db, query, p.ID, p.Name, p.Description)
	if err != nil {
		return domain.Program{}, fmt.Errorf("upsert program: %w", err)
	}
	p.ID = id
	return p, nil
}

// DeleteProgram removes a program and, through cascade, its answer scores.
func (r *CatalogRepository) DeleteProgram(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "programs", id)
}

func (r *CatalogRepository) ListSections(ctx context.Context) ([]domain.QuestionSection, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, sort_order
		FROM question_sections
		ORDER BY sort_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query ListSections: %w", err)
	}
	defer rows.Close()

	sections := make([]domain.QuestionSection, 0)
	for rows.Next() {
		var s domain.QuestionSection
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Order); err != nil {
			return nil, fmt.Errorf("scan section row: %w", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return sections, nil
}

func (r *CatalogRepository) GetSection(ctx context.Context, id int64) (domain.QuestionSection, error) {
	var s domain.QuestionSection
	err := r.db.QueryRowContext(ctx, `SELECT id, title, description, sort_order FROM question_sections WHERE id = ?`, id).
		Scan(&s.ID, &s.Title, &s.Description, &s.Order)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.QuestionSection{}, fmt.Errorf("%w: section %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.QuestionSection{}, fmt.Errorf("query GetSection: %w", err)
	}
	return s, nil
}

func (r *CatalogRepository) UpsertSection(ctx context.Context, s domain.QuestionSection) (domain.QuestionSection, error) {
	const query = `
		INSERT INTO question_sections (id, title, description, sort_order) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			sort_order = excluded.sort_order
	`
	id, err := upsertWithID(ctx, r.db, query, s.ID, s.Title, s.Description, s.Order)
	if err != nil {
		return domain.QuestionSection{}, fmt.Errorf("upsert section: %w", err)
	}
	s.ID = id
	return s, nil
}

// DeleteSection removes a section together with its questions and answers.
func (r *CatalogRepository) DeleteSection(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "question_sections", id)
}

// ListQuestions returns questions with their section and answers, ordered by section then question order.
func (r *CatalogRepository) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT q.id, q.text, q.tips, q.category, q.sort_order, q.required, q.section_id, q.show_if_answer_id,
		       s.id, s.title, s.description, s.sort_order
		FROM questions AS q
		JOIN question_sections AS s ON s.id = q.section_id
		ORDER BY s.sort_order, s.id, q.sort_order, q.id
	`)
	if err != nil {
		return nil, fmt.Errorf("query ListQuestions: %w", err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var q domain.Question
		var s domain.QuestionSection
		var category sql.NullString
		var showIf sql.NullInt64
		if err := rows.Scan(&q.ID, &q.Text, &q.Tips, &category, &q.Order, &q.Required, &q.SectionID, &showIf,
			&s.ID, &s.Title, &s.Description, &s.Order); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}
		q.Category = category.String
		if showIf.Valid {
			q.ShowIfAnswerID = &showIf.Int64
		}
		q.Section = &s
		q.Answers = make([]domain.Answer, 0)
		index[q.ID] = len(questions)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	answers, err := r.listAnswers(ctx, `SELECT id, text, sort_order, question_id FROM answers ORDER BY question_id, sort_order, id`)
	if err != nil {
		return nil, err
	}
	for _, a := range answers {
		if i, ok := index[a.QuestionID]; ok {
			questions[i].Answers = append(questions[i].Answers, a)
		}
	}
	return questions, nil
}

// GetQuestion returns one question with its answers.
func (r *CatalogRepository) GetQuestion(ctx context.Context, id int64) (domain.Question, error) {
	var q domain.Question
	var category sql.NullString
	var showIf sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, text, tips, category, sort_order, required, section_id, show_if_answer_id
		FROM questions WHERE id = ?
	`, id).Scan(&q.ID, &q.Text, &q.Tips, &category, &q.Order, &q.Required, &q.SectionID, &showIf)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Question{}, fmt.Errorf("%w: question %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("query GetQuestion: %w", err)
	}
	q.Category = category.String
	if showIf.Valid {
		q.ShowIfAnswerID = &showIf.Int64
	}

	q.Answers, err = r.listAnswers(ctx, `SELECT id, text, sort_order, question_id FROM answers WHERE question_id = ? ORDER BY sort_order, id`, id)
	if err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

// UpsertQuestion inserts or replaces a question. The owning section must exist.
func (r *CatalogRepository) UpsertQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	const query = `
		INSERT INTO questions (id, text, tips, category, sort_order, required, section_id, show_if_answer_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			text = excluded.text,
			tips = excluded.tips,
			category = excluded.category,
			sort_order = excluded.sort_order,
			required = excluded.required,
			section_id = excluded.section_id,
			show_if_answer_id = excluded.show_if_answer_id
	`
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, `SELECT EXISTS (SELECT 1 FROM question_sections WHERE id = ?)`, q.SectionID)
		if err != nil {
			return fmt.Errorf("lookup section: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: section %d", domain.ErrNotFound, q.SectionID)
		}
		id, err := upsertWithID(ctx, tx, query, q.ID, q.Text, q.Tips, nullString(q.Category), q.Order, q.Required, q.SectionID, q.ShowIfAnswerID)
		if err != nil {
			return fmt.Errorf("upsert question: %w", err)
		}
		q.ID = id
		return nil
	})
	if err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

// DeleteQuestion removes a question and its answers. Responses referencing it become stale.
func (r *CatalogRepository) DeleteQuestion(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "questions", id)
}

func (r *CatalogRepository) GetAnswer(ctx context.Context, id int64) (domain.Answer, error) {
	var a domain.Answer
	err := r.db.QueryRowContext(ctx, `SELECT id, text, sort_order, question_id FROM answers WHERE id = ?`, id).
		Scan(&a.ID, &a.Text, &a.Order, &a.QuestionID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Answer{}, fmt.Errorf("%w: answer %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.Answer{}, fmt.Errorf("query GetAnswer: %w", err)
	}
	return a, nil
}

// UpsertAnswer inserts or replaces an answer. The owning question must exist.
func (r *CatalogRepository) UpsertAnswer(ctx context.Context, a domain.Answer) (domain.Answer, error) {
	const query = `
		INSERT INTO answers (id, text, sort_order, question_id) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			text = excluded.text,
			sort_order = excluded.sort_order,
			question_id = excluded.question_id
	`
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, `SELECT EXISTS (SELECT 1 FROM questions WHERE id = ?)`, a.QuestionID)
		if err != nil {
			return fmt.Errorf("lookup question: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: question %d", domain.ErrNotFound, a.QuestionID)
		}
		id, err := upsertWithID(ctx, tx, query, a.ID, a.Text, a.Order, a.QuestionID)
		if err != nil {
			return fmt.Errorf("upsert answer: %w", err)
		}
		a.ID = id
		return nil
	})
	if err != nil {
		return domain.Answer{}, err
	}
	return a, nil
}

// DeleteAnswer removes an answer and its scores. Responses referencing it become stale.
func (r *CatalogRepository) DeleteAnswer(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "answers", id)
}

func (r *CatalogRepository) listAnswers(ctx context.Context, query string, args ...any) ([]domain.Answer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	answers := make([]domain.Answer, 0)
	for rows.Next() {
		var a domain.Answer
		if err := rows.Scan(&a.ID, &a.Text, &a.Order, &a.QuestionID); err != nil {
			return nil, fmt.Errorf("scan answer row: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return answers, nil
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listPrograms(ctx context.Context, q queryer) ([]domain.Program, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, description FROM programs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query ListPrograms: %w", err)
	}
	defer rows.Close()

	programs := make([]domain.Program, 0)
	for rows.Next() {
		var p domain.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, fmt.Errorf("scan program row: %w", err)
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate programs: %w", err)
	}
	return programs, nil
}

// upsertWithID executes an insert-or-update keyed on id. A zero id lets SQLite assign one.
func upsertWithID(ctx context.Context, q queryer, query string, id int64, args ...any) (int64, error) {
	var idArg any
	if id != 0 {
		idArg = id
	}
	res, err := q.ExecContext(ctx, query, append([]any{idArg}, args...)...)
	if err != nil {
		return 0, err
	}
	if id != 0 {
		return id, nil
	}
	return res.LastInsertId()
}

func deleteByID(ctx context.Context, q queryer, table string, id int64) error {
	res, err := q.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", domain.ErrNotFound, table, id)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
