// Package storage persists the engine's records in SQLite. It exposes
// keyed reads and writes only; all scheduling and scoring decisions live
// in the pure packages above it.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tempora-app/tempora/internal/dayclock"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// nullable converts an optional timestamp to its SQL representation.
func nullable(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// timePtr converts a scanned SQL timestamp back to an optional value.
func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// scanDate parses a stored YYYY-MM-DD column.
func scanDate(s string) (dayclock.Date, error) {
	d, err := dayclock.ParseDate(s)
	if err != nil {
		return dayclock.Date{}, fmt.Errorf("failed to scan date column: %w", err)
	}
	return d, nil
}
