package database

import (
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("in-memory sqlite with foreign keys", func(t *testing.T) {
		db, err := New(WithMaxOpenConns(1), WithRetry(1, time.Millisecond))
		require.NoError(t, err)
		defer db.Close()

		var enabled int
		require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&enabled))
		assert.Equal(t, 1, enabled)
	})

	t.Run("file sqlite uses wal with a busy timeout", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.db")
		db, err := New(WithDataSource(path), WithBusyTimeout(250*time.Millisecond), WithRetry(1, time.Millisecond))
		require.NoError(t, err)
		defer db.Close()

		var mode string
		require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
		assert.Equal(t, "wal", strings.ToLower(mode))

		var timeout int
		require.NoError(t, db.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout))
		assert.Equal(t, 250, timeout)
	})

	t.Run("foreign keys can be disabled", func(t *testing.T) {
		db, err := New(WithMaxOpenConns(1), WithForeignKeys(false), WithRetry(1, time.Millisecond))
		require.NoError(t, err)
		defer db.Close()

		var enabled int
		require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&enabled))
		assert.Equal(t, 0, enabled)
	})

	t.Run("empty driver rejected", func(t *testing.T) {
		_, err := New(WithDriver(""))
		assert.Error(t, err)
	})

	t.Run("empty data source rejected", func(t *testing.T) {
		_, err := New(WithDataSource(""))
		assert.Error(t, err)
	})

	t.Run("unknown driver fails after retries", func(t *testing.T) {
		_, err := New(WithDriver("nope"), WithRetry(2, time.Millisecond))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after 2 attempts")
	})
}

func TestWithSQLiteParams(t *testing.T) {
	t.Run("appends missing params", func(t *testing.T) {
		dsn := withSQLiteParams("./data/app.db", url.Values{"_foreign_keys": {"on"}})
		assert.Equal(t, "./data/app.db?_foreign_keys=on", dsn)
	})

	t.Run("defaults take the write lock at begin", func(t *testing.T) {
		dsn := withSQLiteParams("./data/app.db", DefaultSQLiteParams())
		parsed, err := url.ParseQuery(strings.SplitN(dsn, "?", 2)[1])
		require.NoError(t, err)
		assert.Equal(t, "immediate", parsed.Get("_txlock"))
		assert.Equal(t, "WAL", parsed.Get("_journal_mode"))
		assert.Equal(t, "5000", parsed.Get("_busy_timeout"))
		assert.Equal(t, "on", parsed.Get("_foreign_keys"))
	})

	t.Run("keeps explicit params", func(t *testing.T) {
		dsn := withSQLiteParams("file:app.db?_foreign_keys=off", url.Values{"_foreign_keys": {"on"}, "_busy_timeout": {"500"}})
		assert.Equal(t, "file:app.db?_busy_timeout=500&_foreign_keys=off", dsn)
	})
}
