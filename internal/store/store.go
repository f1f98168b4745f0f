// Package store persists interview sessions to SQLite. Every write is a
// full-snapshot overwrite keyed by session id, which keeps persistence
// idempotent under rapid resubmission: a stale write that lands after a
// newer one is simply superseded on the next save.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/foundry/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Store manages the SQLite database holding session snapshots.
type Store struct {
	db     *sql.DB
	dbPath string
}

// SessionSummary is the listing row for one persisted session.
type SessionSummary struct {
	ID         string
	AgentName  string
	IsComplete bool
	StartedAt  time.Time
	UpdatedAt  time.Time
}

// NewStore opens (creating if needed) the session database at dbPath and
// initializes the schema. Use ":memory:" for an ephemeral database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks instead of
	// failing when another process is initializing the same file.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a statement with exponential backoff on
// "database is locked" errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Save upserts the full session snapshot. Last write wins.
func (s *Store) Save(ctx context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("save session: session is nil")
	}
	snapshot, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, agent_name, is_complete, snapshot, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			agent_name  = excluded.agent_name,
			is_complete = excluded.is_complete,
			snapshot    = excluded.snapshot,
			updated_at  = excluded.updated_at`,
		session.ID,
		session.Requirements.Name,
		session.IsComplete,
		string(snapshot),
		session.StartedAt.UTC(),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

// Load returns the session with the given id, or (nil, nil) when absent.
func (s *Store) Load(ctx context.Context, id string) (*models.Session, error) {
	var snapshot string
	err := s.db.QueryRowContext(ctx,
		"SELECT snapshot FROM sessions WHERE id = ?", id).Scan(&snapshot)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(snapshot), &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// LoadLatest returns the most recently updated session, or (nil, nil) when
// the store is empty.
func (s *Store) LoadLatest(ctx context.Context) (*models.Session, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM sessions ORDER BY updated_at DESC LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load latest session: %w", err)
	}
	return s.Load(ctx, id)
}

// List returns summaries of all persisted sessions, most recent first.
func (s *Store) List(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, agent_name, is_complete, started_at, updated_at
		FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var summaries []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		if err := rows.Scan(&sum.ID, &sum.AgentName, &sum.IsComplete, &sum.StartedAt, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session rows: %w", err)
	}
	return summaries, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
