package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/repository/models"
)

type SurveyRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSurveyRepository(db *sql.DB) *SurveyRepository {
	return &SurveyRepository{db: db, now: time.Now}
}

// Create inserts a new open survey.
func (r *SurveyRepository) Create(ctx context.Context, userName string, createdAt time.Time) (domain.Survey, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO surveys (user_name, created_at) VALUES (?, ?)`, userName, createdAt.UTC())
	if err != nil {
		return domain.Survey{}, fmt.Errorf("insert survey: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Survey{}, fmt.Errorf("insert survey: %w", err)
	}
	return domain.Survey{
		ID:        id,
		UserName:  userName,
		CreatedAt: createdAt.UTC(),
	}, nil
}

// Get returns a survey with its responses joined to whatever catalog entries still exist.
func (r *SurveyRepository) Get(ctx context.Context, id int64) (domain.Survey, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_name, completed, completed_at, results, created_at
		FROM surveys WHERE id = ?
	`, id)
	survey, err := scanSurvey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Survey{}, fmt.Errorf("%w: survey %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.Survey{}, err
	}

	rows, err := loadResponseRows(ctx, r.db, id)
	if err != nil {
		return domain.Survey{}, err
	}
	survey.Responses = make([]domain.Response, 0, len(rows))
	for _, rr := range rows {
		survey.Responses = append(survey.Responses, domain.Response{
			ID:         rr.ResponseID,
			SurveyID:   id,
			QuestionID: rr.QuestionID,
			AnswerID:   rr.AnswerID,
			Question:   rr.Question,
			Answer:     rr.Answer,
		})
	}
	return survey, nil
}

// List returns all surveys without responses, newest first.
func (r *SurveyRepository) List(ctx context.Context) ([]domain.Survey, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_name, completed, completed_at, results, created_at
		FROM surveys
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query ListSurveys: %w", err)
	}
	defer rows.Close()

	surveys := make([]domain.Survey, 0)
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		surveys = append(surveys, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate surveys: %w", err)
	}
	return surveys, nil
}

// UpsertResponse records the answer for (survey, question), replacing any earlier choice.
// The survey's status is read in the same transaction as the write, so a survey
// completed concurrently cannot take a response unless allowCompleted is set.
// The returned status is the one the write was checked against.
func (r *SurveyRepository) UpsertResponse(ctx context.Context, resp domain.Response, allowCompleted bool) (domain.Response, domain.SurveyStatus, error) {
	const query = `
		INSERT INTO responses (survey_id, question_id, answer_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (survey_id, question_id)
		DO UPDATE SET answer_id = excluded.answer_id, updated_at = excluded.updated_at
		RETURNING id
	`
	status := domain.SurveyOpen
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var completed bool
		err := tx.QueryRowContext(ctx, `SELECT completed FROM surveys WHERE id = ?`, resp.SurveyID).Scan(&completed)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: survey %d", domain.ErrNotFound, resp.SurveyID)
		}
		if err != nil {
			return fmt.Errorf("query survey status: %w", err)
		}
		if completed {
			status = domain.SurveyCompleted
			if !allowCompleted {
				return fmt.Errorf("%w: survey %d", domain.ErrSurveyCompleted, resp.SurveyID)
			}
		}

		if err := tx.QueryRowContext(ctx, query, resp.SurveyID, resp.QuestionID, resp.AnswerID, r.now().UTC()).Scan(&resp.ID); err != nil {
			return fmt.Errorf("upsert response: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Response{}, "", err
	}
	return resp, status, nil
}

// LoadScoringSnapshot reads responses, their weight rows and the program catalog in one transaction.
func (r *SurveyRepository) LoadScoringSnapshot(ctx context.Context, surveyID int64) (models.ScoringSnapshot, error) {
	snap := models.ScoringSnapshot{SurveyID: surveyID}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, `SELECT EXISTS (SELECT 1 FROM surveys WHERE id = ?)`, surveyID)
		if err != nil {
			return fmt.Errorf("lookup survey: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: survey %d", domain.ErrNotFound, surveyID)
		}

		if snap.Responses, err = loadResponseRows(ctx, tx, surveyID); err != nil {
			return err
		}
		if snap.Weights, err = loadWeights(ctx, tx, surveyID); err != nil {
			return err
		}
		if snap.Programs, err = listPrograms(ctx, tx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return models.ScoringSnapshot{}, err
	}
	return snap, nil
}

// SaveResults marks the survey completed and stores the aggregation output.
func (r *SurveyRepository) SaveResults(ctx context.Context, surveyID int64, results domain.Results, completedAt time.Time) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE surveys SET completed = 1, completed_at = ?, results = ?
		WHERE id = ?
	`, completedAt.UTC(), string(payload), surveyID)
	if err != nil {
		return fmt.Errorf("update survey results: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update survey results: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: survey %d", domain.ErrNotFound, surveyID)
	}
	return nil
}

func loadResponseRows(ctx context.Context, q queryer, surveyID int64) ([]models.ResponseRow, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT r.id, r.question_id, r.answer_id,
		       q.id, q.text, q.tips, q.category, q.sort_order, q.required, q.section_id,
		       a.id, a.text, a.sort_order, a.question_id
		FROM responses AS r
		LEFT JOIN questions AS q ON q.id = r.question_id
		LEFT JOIN answers AS a ON a.id = r.answer_id
		WHERE r.survey_id = ?
		ORDER BY r.id
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	out := make([]models.ResponseRow, 0)
	for rows.Next() {
		rr, err := scanResponseRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return out, nil
}

func loadWeights(ctx context.Context, tx *sql.Tx, surveyID int64) ([]domain.AnswerScore, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT s.answer_id, s.program_id, s.points
		FROM answer_scores AS s
		WHERE s.answer_id IN (SELECT answer_id FROM responses WHERE survey_id = ?)
		ORDER BY s.answer_id, s.program_id
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("query snapshot weights: %w", err)
	}
	defer rows.Close()

	out := make([]domain.AnswerScore, 0)
	for rows.Next() {
		var s domain.AnswerScore
		if err := rows.Scan(&s.AnswerID, &s.ProgramID, &s.Points); err != nil {
			return nil, fmt.Errorf("scan snapshot weight: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot weights: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSurvey(row rowScanner) (domain.Survey, error) {
	var s domain.Survey
	var completedAt sql.NullTime
	var results sql.NullString
	if err := row.Scan(&s.ID, &s.UserName, &s.Completed, &completedAt, &results, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Survey{}, err
		}
		return domain.Survey{}, fmt.Errorf("scan survey row: %w", err)
	}
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		s.CompletedAt = &t
	}
	s.CreatedAt = s.CreatedAt.UTC()
	if results.Valid && results.String != "" {
		var res domain.Results
		if err := json.Unmarshal([]byte(results.String), &res); err != nil {
			return domain.Survey{}, fmt.Errorf("decode survey %d results: %w", s.ID, err)
		}
		s.Results = &res
	}
	return s, nil
}

func scanResponseRow(row rowScanner) (models.ResponseRow, error) {
	var rr models.ResponseRow
	var (
		qID, qOrder, qSection sql.NullInt64
		qText, qTips, qCat    sql.NullString
		qRequired             sql.NullBool
		aID, aOrder, aQuestID sql.NullInt64
		aText                 sql.NullString
	)
	if err := row.Scan(&rr.ResponseID, &rr.QuestionID, &rr.AnswerID,
		&qID, &qText, &qTips, &qCat, &qOrder, &qRequired, &qSection,
		&aID, &aText, &aOrder, &aQuestID); err != nil {
		return models.ResponseRow{}, fmt.Errorf("scan response row: %w", err)
	}
	if qID.Valid {
		rr.Question = &domain.Question{
			ID:        qID.Int64,
			Text:      qText.String,
			Tips:      qTips.String,
			Category:  qCat.String,
			Order:     int(qOrder.Int64),
			Required:  qRequired.Bool,
			SectionID: qSection.Int64,
		}
	}
	if aID.Valid {
		rr.Answer = &domain.Answer{
			ID:         aID.Int64,
			Text:       aText.String,
			Order:      int(aOrder.Int64),
			QuestionID: aQuestID.Int64,
		}
	}
	return rr, nil
}
