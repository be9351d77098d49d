// Package testsupport builds migrated SQLite databases and a small catalog for tests.
package testsupport

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/godilite/program-recommender/internal/repository/migrations"
	dbbuilder "github.com/godilite/program-recommender/pkg/database"
	_ "github.com/mattn/go-sqlite3"
)

// NewDB returns a migrated in-memory SQLite pool that is closed when the test ends.
// A single connection keeps every query on the same in-memory database.
func NewDB(tb testing.TB) *sql.DB {
	tb.Helper()

	db, err := dbbuilder.New(
		dbbuilder.WithDriver("sqlite3"),
		dbbuilder.WithDataSource(":memory:"),
		dbbuilder.WithMaxOpenConns(1),
		dbbuilder.WithMaxIdleConns(1),
		dbbuilder.WithConnMaxLifetime(time.Hour),
		dbbuilder.WithConnMaxIdleTime(time.Hour),
		dbbuilder.WithRetry(1, time.Millisecond),
	)
	if err != nil {
		tb.Fatalf("failed to create db pool via builder: %v", err)
	}
	tb.Cleanup(func() { db.Close() })

	if _, err := migrations.Run(context.Background(), db); err != nil {
		tb.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

// NewFileDB returns a migrated SQLite pool on a temporary file with the builder's
// default pool size and connection parameters, so several connections contend for locks.
func NewFileDB(tb testing.TB) *sql.DB {
	tb.Helper()

	db, err := dbbuilder.New(
		dbbuilder.WithDriver("sqlite3"),
		dbbuilder.WithDataSource(filepath.Join(tb.TempDir(), "test.db")),
		dbbuilder.WithRetry(1, time.Millisecond),
	)
	if err != nil {
		tb.Fatalf("failed to create file db pool via builder: %v", err)
	}
	tb.Cleanup(func() { db.Close() })

	if _, err := migrations.Run(context.Background(), db); err != nil {
		tb.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

// Catalog ids seeded by SeedCatalog.
const (
	ProgramScience   int64 = 1
	ProgramTech      int64 = 2
	ProgramEconomics int64 = 3

	SectionInterests int64 = 1

	QuestionLab     int64 = 1 // category "Intressen"
	QuestionNumbers int64 = 2 // no category
	QuestionTeam    int64 = 3 // category "Arbetssätt"

	AnswerLabYes     int64 = 1
	AnswerLabNo      int64 = 2
	AnswerNumbersYes int64 = 3
	AnswerNumbersNo  int64 = 4
	AnswerTeamYes    int64 = 5
	AnswerTeamNo     int64 = 6
)

// SeedCatalog inserts three programs, one section, three questions with two answers each,
// and a weight table:
//
//	lab yes      -> science +8, tech +3
//	numbers yes  -> science +3, economics +6
//	numbers no   -> economics -5
//	team yes     -> tech +7, economics +2
func SeedCatalog(tb testing.TB, db *sql.DB) {
	tb.Helper()

	_, err := db.Exec(`
		INSERT INTO programs (id, name, description) VALUES
			(1, 'Naturvetenskap', 'Science track'),
			(2, 'Teknik', 'Technology track'),
			(3, 'Ekonomi', 'Economics track');

		INSERT INTO question_sections (id, title, description, sort_order) VALUES
			(1, 'Intressen', '', 1);

		INSERT INTO questions (id, text, tips, category, sort_order, required, section_id) VALUES
			(1, 'Gillar du laborationer?', '', 'Intressen', 1, 1, 1),
			(2, 'Gillar du siffror?', '', NULL, 2, 0, 1),
			(3, 'Jobbar du gärna i grupp?', '', 'Arbetssätt', 3, 0, 1);

		INSERT INTO answers (id, text, sort_order, question_id) VALUES
			(1, 'Ja', 1, 1), (2, 'Nej', 2, 1),
			(3, 'Ja', 1, 2), (4, 'Nej', 2, 2),
			(5, 'Ja', 1, 3), (6, 'Nej', 2, 3);

		INSERT INTO answer_scores (answer_id, program_id, points, updated_at) VALUES
			(1, 1, '8', '2025-01-01 00:00:00'),
			(1, 2, '3', '2025-01-01 00:00:00'),
			(3, 1, '3', '2025-01-01 00:00:00'),
			(3, 3, '6', '2025-01-01 00:00:00'),
			(4, 3, '-5', '2025-01-01 00:00:00'),
			(5, 2, '7', '2025-01-01 00:00:00'),
			(5, 3, '2', '2025-01-01 00:00:00');
	`)
	if err != nil {
		tb.Fatalf("failed to seed catalog: %v", err)
	}
}
