// Package history stores wgctl lifecycle events in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"github.com/yllada/wgctl/common"
)

// DefaultLimit is the number of events returned by Recent when no limit is given.
const DefaultLimit = 20

const schema = `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		at INTEGER NOT NULL,
		action TEXT NOT NULL,
		interface TEXT,
		exit_code INTEGER NOT NULL,
		detail TEXT
	)
`

// Store is a common.EventRecorder backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

var _ common.EventRecorder = (*Store)(nil)

// Open opens or creates the history database at path. ":memory:" gives a
// private in-memory store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, common.MarkError(common.ErrHistory, fmt.Errorf("failed to create history directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.MarkError(common.ErrHistory, fmt.Errorf("failed to open database: %w", err))
	}
	// One writer per process; also keeps ":memory:" on a single connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return common.MarkError(common.ErrHistory, fmt.Errorf("failed to set busy timeout: %w", err))
	}
	if _, err := s.db.Exec(schema); err != nil {
		return common.MarkError(common.ErrHistory, fmt.Errorf("failed to create events table: %w", err))
	}
	if _, err := s.db.Exec("CREATE INDEX IF NOT EXISTS idx_events_at ON events(at)"); err != nil {
		return common.MarkError(common.ErrHistory, fmt.Errorf("failed to create index: %w", err))
	}
	return nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Record stores a single event.
func (s *Store) Record(ctx context.Context, event common.LifecycleEvent) error {
	at := event.Time
	if at.IsZero() {
		at = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (run_id, at, action, interface, exit_code, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		event.RunID,
		at.UnixNano(),
		event.Action,
		nullString(event.Interface),
		event.ExitCode,
		nullString(event.Detail),
	)
	if err != nil {
		return common.MarkError(common.ErrHistory, fmt.Errorf("failed to insert event: %w", err))
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]common.LifecycleEvent, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, at, action, interface, exit_code, detail
		FROM events
		ORDER BY at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, common.MarkError(common.ErrHistory, fmt.Errorf("failed to query events: %w", err))
	}
	defer rows.Close()

	var events []common.LifecycleEvent
	for rows.Next() {
		var (
			e      common.LifecycleEvent
			at     int64
			iface  sql.NullString
			detail sql.NullString
		)
		if err := rows.Scan(&e.RunID, &at, &e.Action, &iface, &e.ExitCode, &detail); err != nil {
			return nil, common.MarkError(common.ErrHistory, fmt.Errorf("failed to scan event: %w", err))
		}
		e.Time = time.Unix(0, at).UTC()
		e.Interface = iface.String
		e.Detail = detail.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, common.MarkError(common.ErrHistory, fmt.Errorf("failed to read events: %w", err))
	}

	return events, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
