// Package journal records one audit row per tool invocation in a SQLite
// database and can export the accumulated rows to a Parquet file for
// analysis. The journal is observability only: no tool result ever depends
// on it, and credentials are never written to it.
package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

const schema = `
CREATE TABLE IF NOT EXISTS tool_calls (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	at          INTEGER NOT NULL,
	tool        TEXT    NOT NULL,
	symbol      TEXT    NOT NULL DEFAULT '',
	paper       INTEGER NOT NULL,
	outcome     TEXT    NOT NULL,
	duration_ms INTEGER NOT NULL
)`

// Entry is one recorded tool invocation.
type Entry struct {
	At       time.Time
	Tool     string
	Symbol   string // empty for tools that take no symbol
	Paper    bool
	Outcome  string // "ok" or "error"
	Duration time.Duration
}

// Store is a SQLite-backed journal.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the journal database at dbPath and ensures the
// schema exists.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one entry to the journal.
func (s *Store) Record(ctx context.Context, e Entry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	paper := 0
	if e.Paper {
		paper = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tool_calls (at, tool, symbol, paper, outcome, duration_ms) VALUES (?, ?, ?, ?, ?, ?)`,
		at.UnixMilli(), e.Tool, e.Symbol, paper, e.Outcome, e.Duration.Milliseconds(),
	)
	return err
}

// List returns all entries in insertion order.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT at, tool, symbol, paper, outcome, duration_ms FROM tool_calls ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			at, durationMS int64
			paper          int64
			e              Entry
		)
		if err := rows.Scan(&at, &e.Tool, &e.Symbol, &paper, &e.Outcome, &durationMS); err != nil {
			return nil, err
		}
		e.At = time.UnixMilli(at)
		e.Paper = paper != 0
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ---------------------------------------------------------------------------
// Parquet export
// ---------------------------------------------------------------------------

// callRecord is the Parquet schema for exported journal rows.
type callRecord struct {
	At         int64  `parquet:"at,timestamp(millisecond)"`
	Tool       string `parquet:"tool"`
	Symbol     string `parquet:"symbol"`
	Paper      bool   `parquet:"paper"`
	Outcome    string `parquet:"outcome"`
	DurationMS int64  `parquet:"duration_ms"`
}

// ExportParquet writes every journal entry to a Parquet file at path and
// returns the number of rows written.
func (s *Store) ExportParquet(ctx context.Context, path string) (int, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	records := make([]callRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, callRecord{
			At:         e.At.UnixMilli(),
			Tool:       e.Tool,
			Symbol:     e.Symbol,
			Paper:      e.Paper,
			Outcome:    e.Outcome,
			DurationMS: e.Duration.Milliseconds(),
		})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	if err := parquet.WriteFile(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
