package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Options struct {
	Driver          string
	DataSource      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	RetryAttempts   int
	RetryDelay      time.Duration
	SQLiteParams    url.Values
}

type Option func(*Options)

func WithDriver(driver string) Option {
	return func(o *Options) { o.Driver = driver }
}

func WithDataSource(dsn string) Option {
	return func(o *Options) { o.DataSource = dsn }
}

func WithMaxOpenConns(count int) Option {
	return func(o *Options) { o.MaxOpenConns = count }
}

func WithMaxIdleConns(count int) Option {
	return func(o *Options) { o.MaxIdleConns = count }
}

func WithConnMaxLifetime(duration time.Duration) Option {
	return func(o *Options) { o.ConnMaxLifetime = duration }
}

func WithConnMaxIdleTime(duration time.Duration) Option {
	return func(o *Options) { o.ConnMaxIdleTime = duration }
}

func WithRetry(attempts int, delay time.Duration) Option {
	return func(o *Options) {
		o.RetryAttempts = attempts
		o.RetryDelay = delay
	}
}

// WithForeignKeys toggles SQLite foreign key enforcement for every pooled connection.
func WithForeignKeys(enabled bool) Option {
	return func(o *Options) {
		if enabled {
			o.SQLiteParams.Set("_foreign_keys", "on")
		} else {
			o.SQLiteParams.Set("_foreign_keys", "off")
		}
	}
}

// WithBusyTimeout sets how long SQLite waits on a locked database before failing.
func WithBusyTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.SQLiteParams.Set("_busy_timeout", fmt.Sprintf("%d", timeout.Milliseconds()))
	}
}

// WithJournalMode sets the SQLite journal mode, e.g. "WAL" or "DELETE".
// In-memory databases keep the "memory" mode regardless.
func WithJournalMode(mode string) Option {
	return func(o *Options) { o.SQLiteParams.Set("_journal_mode", mode) }
}

// WithTxLock sets the lock SQLite takes at BEGIN: "deferred", "immediate" or "exclusive".
func WithTxLock(mode string) Option {
	return func(o *Options) { o.SQLiteParams.Set("_txlock", mode) }
}

// DefaultSQLiteParams returns the parameters applied to every SQLite DSN unless overridden.
// Transactions take the write lock at BEGIN so a read-then-write transaction
// waits on the busy timeout instead of failing a lock upgrade.
func DefaultSQLiteParams() url.Values {
	return url.Values{
		"_foreign_keys": {"on"},
		"_busy_timeout": {"5000"},
		"_journal_mode": {"WAL"},
		"_txlock":       {"immediate"},
	}
}

// New creates a new database connection pool using the provided options.
func New(opts ...Option) (*sql.DB, error) {
	options := &Options{
		Driver:          "sqlite3",
		DataSource:      ":memory:",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 2 * time.Minute,
		RetryAttempts:   3,
		RetryDelay:      time.Second,
		SQLiteParams:    DefaultSQLiteParams(),
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.Driver == "" {
		return nil, fmt.Errorf("database driver cannot be empty")
	}
	if options.DataSource == "" {
		return nil, fmt.Errorf("database data source cannot be empty")
	}
	if options.RetryAttempts < 1 {
		options.RetryAttempts = 1
	}

	dsn := options.DataSource
	if options.Driver == "sqlite3" {
		dsn = withSQLiteParams(dsn, options.SQLiteParams)
	}

	var db *sql.DB
	var err error

	for i := 0; i < options.RetryAttempts; i++ {
		db, err = sql.Open(options.Driver, dsn)
		if err == nil {
			db.SetMaxOpenConns(options.MaxOpenConns)
			db.SetMaxIdleConns(options.MaxIdleConns)
			db.SetConnMaxLifetime(options.ConnMaxLifetime)
			db.SetConnMaxIdleTime(options.ConnMaxIdleTime)

			if err = db.Ping(); err == nil {
				return db, nil
			}

			db.Close()
		}

		if i < options.RetryAttempts-1 {
			time.Sleep(time.Duration(i+1) * options.RetryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", options.RetryAttempts, err)
}

// withSQLiteParams appends driver parameters that the DSN does not already set.
func withSQLiteParams(dsn string, params url.Values) string {
	if len(params) == 0 {
		return dsn
	}
	base, rawQuery, _ := strings.Cut(dsn, "?")
	existing, err := url.ParseQuery(rawQuery)
	if err != nil {
		existing = url.Values{}
	}
	for key, values := range params {
		if existing.Has(key) || len(values) == 0 {
			continue
		}
		existing.Set(key, values[0])
	}
	return base + "?" + existing.Encode()
}
