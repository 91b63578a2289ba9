package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/deeds/pkg/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT    NOT NULL DEFAULT '',
	user_id    INTEGER NOT NULL,
	question   TEXT    NOT NULL,
	created_at TEXT    NOT NULL
);`

// QuestionStore implements ports.QuestionStore on a SQLite database file.
type QuestionStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*QuestionStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	// One writer keeps AUTOINCREMENT ids in commit order.
	db.SetMaxOpenConns(1)

	for _, p := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate questions table: %w", err)
	}

	return &QuestionStore{db: db}, nil
}

// Save inserts q and returns the row id.
func (s *QuestionStore) Save(ctx context.Context, q domain.Question) (int64, error) {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO questions (session_id, user_id, question, created_at) VALUES (?, ?, ?, ?)",
		q.SessionID, q.UserID, q.Text, q.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read question id: %w", err)
	}
	return id, nil
}

// List returns every question ordered by id.
func (s *QuestionStore) List(ctx context.Context) ([]domain.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, session_id, user_id, question, created_at FROM questions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q       domain.Question
			created string
		)
		if err := rows.Scan(&q.ID, &q.SessionID, &q.UserID, &q.Text, &created); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if q.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("question %d has bad created_at %q: %w", q.ID, created, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}
	return questions, nil
}

// Count returns the number of rows.
func (s *QuestionStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *QuestionStore) Close() error {
	return s.db.Close()
}
