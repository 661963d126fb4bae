// Package storage provides SQLite persistence for session transcripts and
// completion results.
//
// Information Hiding:
// - SQLite connection management hidden behind RunStore
// - Schema and migration details encapsulated
// - Thread-safe via sql.DB's built-in connection pooling
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/richinex/hanoibench/llm"
	"github.com/richinex/hanoibench/solver"
)

// RunStore persists one row per session plus its transcript and result.
type RunStore struct {
	db *sql.DB
}

// StoredResult is a completion result with its session identity.
type StoredResult struct {
	SessionID  string
	PuzzleType string
	CreatedAt  string
	Result     solver.CompletionResult
}

// Open opens or creates a SQLite database at the given path.
// Creates parent directories if they don't exist.
func Open(path string) (*RunStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store := &RunStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// NewInMemory creates an in-memory database (useful for testing).
func NewInMemory() (*RunStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}

	store := &RunStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}

func (s *RunStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			puzzle_type TEXT NOT NULL,
			puzzle_size INTEGER NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			message_index INTEGER NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE,
			UNIQUE(session_id, message_index)
		);

		CREATE INDEX IF NOT EXISTS idx_messages_session
		ON messages(session_id, message_index);

		CREATE TABLE IF NOT EXISTS results (
			session_id TEXT PRIMARY KEY,
			solved INTEGER NOT NULL,
			termination_reason TEXT NOT NULL,
			turns_taken INTEGER NOT NULL,
			total_moves_attempted INTEGER NOT NULL,
			invalid_turns INTEGER NOT NULL,
			successful_moves INTEGER NOT NULL,
			puzzle_size INTEGER NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// CreateSession registers a session before its transcript or result exist.
func (s *RunStore) CreateSession(ctx context.Context, sessionID, puzzleType string, puzzleSize int) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO sessions (session_id, puzzle_type, puzzle_size) VALUES (?, ?, ?)",
		sessionID, puzzleType, puzzleSize,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// SaveTranscript replaces the stored transcript for a session.
func (s *RunStore) SaveTranscript(ctx context.Context, sessionID string, messages []llm.ChatMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM messages WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}

	for i, msg := range messages {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO messages (session_id, message_index, role, content) VALUES (?, ?, ?, ?)",
			sessionID, i, msg.Role, msg.Content,
		); err != nil {
			return fmt.Errorf("failed to insert message %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transcript: %w", err)
	}
	return nil
}

// LoadTranscript returns the stored transcript for a session, oldest first.
// An unknown session yields an empty transcript, not an error.
func (s *RunStore) LoadTranscript(ctx context.Context, sessionID string) ([]llm.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT role, content FROM messages WHERE session_id = ? ORDER BY message_index",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer rows.Close()

	var messages []llm.ChatMessage
	for rows.Next() {
		var msg llm.ChatMessage
		if err := rows.Scan(&msg.Role, &msg.Content); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return messages, nil
}

// SaveResult stores the completion result for a session, replacing any
// previous record.
func (s *RunStore) SaveResult(ctx context.Context, sessionID string, result solver.CompletionResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO results
		 (session_id, solved, termination_reason, turns_taken, total_moves_attempted, invalid_turns, successful_moves, puzzle_size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID,
		result.Solved,
		result.TerminationReason,
		result.TurnsTaken,
		result.TotalMovesAttempted,
		result.InvalidTurns,
		result.SuccessfulMoves,
		result.PuzzleSize,
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// ListResults returns every stored result, most recent session first.
func (s *RunStore) ListResults(ctx context.Context) ([]StoredResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.session_id, s.puzzle_type, s.created_at,
		        r.solved, r.termination_reason, r.turns_taken,
		        r.total_moves_attempted, r.invalid_turns, r.successful_moves, r.puzzle_size
		 FROM results r
		 JOIN sessions s ON s.session_id = r.session_id
		 ORDER BY s.created_at DESC, r.session_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []StoredResult
	for rows.Next() {
		var stored StoredResult
		if err := rows.Scan(
			&stored.SessionID,
			&stored.PuzzleType,
			&stored.CreatedAt,
			&stored.Result.Solved,
			&stored.Result.TerminationReason,
			&stored.Result.TurnsTaken,
			&stored.Result.TotalMovesAttempted,
			&stored.Result.InvalidTurns,
			&stored.Result.SuccessfulMoves,
			&stored.Result.PuzzleSize,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	return results, nil
}
