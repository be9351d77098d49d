package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/godilite/program-recommender/internal/domain"
)

const upsertAnswerScoreQuery = `
	INSERT INTO answer_scores (answer_id, program_id, points, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (answer_id, program_id)
	DO UPDATE SET points = excluded.points, updated_at = excluded.updated_at
`

type AnswerScoreRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewAnswerScoreRepository(db *sql.DB) *AnswerScoreRepository {
	return &AnswerScoreRepository{db: db, now: time.Now}
}

// GetAll returns the full weight table.
func (r *AnswerScoreRepository) GetAll(ctx context.Context) ([]domain.AnswerScore, error) {
	const query = `
		SELECT answer_id, program_id, points
		FROM answer_scores
		ORDER BY answer_id, program_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query GetAll answer scores: %w", err)
	}
	defer rows.Close()

	scores := make([]domain.AnswerScore, 0)
	for rows.Next() {
		var s domain.AnswerScore
		if err := rows.Scan(&s.AnswerID, &s.ProgramID, &s.Points); err != nil {
			return nil, fmt.Errorf("scan answer score row: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer scores: %w", err)
	}
	return scores, nil
}

// Upsert replaces the points of an existing (answer, program) row or inserts a new one.
func (r *AnswerScoreRepository) Upsert(ctx context.Context, score domain.AnswerScore) (domain.AnswerScore, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, `SELECT EXISTS (SELECT 1 FROM answers WHERE id = ?)`, score.AnswerID)
		if err != nil {
			return fmt.Errorf("lookup answer: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: answer %d", domain.ErrNotFound, score.AnswerID)
		}

		ok, err = rowExists(ctx, tx, `SELECT EXISTS (SELECT 1 FROM programs WHERE id = ?)`, score.ProgramID)
		if err != nil {
			return fmt.Errorf("lookup program: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: program %d", domain.ErrNotFound, score.ProgramID)
		}

		if _, err := tx.ExecContext(ctx, upsertAnswerScoreQuery, score.AnswerID, score.ProgramID, score.Points, r.now().UTC()); err != nil {
			return fmt.Errorf("upsert answer score: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.AnswerScore{}, err
	}
	return score, nil
}

// BatchUpsert applies every entry in one transaction. Any failure rolls back the whole batch.
func (r *AnswerScoreRepository) BatchUpsert(ctx context.Context, scores []domain.AnswerScore) (int, error) {
	if len(scores) == 0 {
		return 0, nil
	}

	now := r.now().UTC()
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertAnswerScoreQuery)
		if err != nil {
			return fmt.Errorf("%w: prepare: %w", domain.ErrBatchWrite, err)
		}
		defer stmt.Close()

		for i, s := range scores {
			if _, err := stmt.ExecContext(ctx, s.AnswerID, s.ProgramID, s.Points, now); err != nil {
				return fmt.Errorf("%w: entry %d (answer %d, program %d): %w", domain.ErrBatchWrite, i, s.AnswerID, s.ProgramID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(scores), nil
}
