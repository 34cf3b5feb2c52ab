package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tallylists/tally/internal/validate"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a list or entry id matches nothing.
var ErrNotFound = errors.New("store: not found")

// RejectedError carries the validation failures that blocked a write.
// The caller renders Result.Failures; nothing was persisted.
type RejectedError struct {
	Result validate.Result
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("store: entry rejected with %d validation failure(s)", len(e.Result.Failures))
}

// IsRejected extracts the validation result from err when err is (or
// wraps) a RejectedError.
func IsRejected(err error) (validate.Result, bool) {
	var re *RejectedError
	if errors.As(err, &re) {
		return re.Result, true
	}
	return validate.Result{}, false
}

// Store provides durable storage for lists and entries.
type Store struct {
	db *sql.DB

	// Policy applied to entry writes. Defaults to validate.DefaultPolicy.
	Policy validate.Policy

	now func() time.Time
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement (entries cascade with their list)
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db, Policy: validate.DefaultPolicy, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
