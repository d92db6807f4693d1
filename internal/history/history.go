// Package history persists coordinator lifecycle events to SQLite so suite
// load/unload/eviction activity can be inspected after the fact.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"suited/internal/coordinator"
)

// Store is an append-only lifecycle event log backed by SQLite. It
// implements coordinator.EventPublisher.
type Store struct {
	db *sql.DB
}

const createEventsTable = `
CREATE TABLE IF NOT EXISTS suite_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	event TEXT NOT NULL,
	suite TEXT NOT NULL,
	fields TEXT,
	at DATETIME NOT NULL
);
`

const createEventsIndex = `CREATE INDEX IF NOT EXISTS idx_suite_events_suite ON suite_events(suite);`

// Open creates or opens the event log at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	for _, stmt := range []string{createEventsTable, createEventsIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate history db: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Publish appends one event. Errors are swallowed: the history log must
// never fail a lifecycle operation.
func (s *Store) Publish(e coordinator.Event) {
	var fields []byte
	if len(e.Fields) > 0 {
		fields, _ = json.Marshal(e.Fields)
	}
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	_, _ = s.db.Exec(
		`INSERT INTO suite_events (event, suite, fields, at) VALUES (?, ?, ?, ?)`,
		e.Name, e.Suite, string(fields), at.UTC(),
	)
}

// Entry is one persisted lifecycle event.
type Entry struct {
	ID     int64          `json:"id"`
	Event  string         `json:"event"`
	Suite  string         `json:"suite"`
	Fields map[string]any `json:"fields,omitempty"`
	At     time.Time      `json:"at"`
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, event, suite, fields, at FROM suite_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history query: %w", err)
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var fields sql.NullString
		if err := rows.Scan(&e.ID, &e.Event, &e.Suite, &fields, &e.At); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		if fields.Valid && fields.String != "" {
			_ = json.Unmarshal([]byte(fields.String), &e.Fields)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountByEvent returns how many events of each name have been recorded.
func (s *Store) CountByEvent() (map[string]int64, error) {
	rows, err := s.db.Query(`SELECT event, COUNT(*) FROM suite_events GROUP BY event`)
	if err != nil {
		return nil, fmt.Errorf("history count: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var event string
		var n int64
		if err := rows.Scan(&event, &n); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		out[event] = n
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
