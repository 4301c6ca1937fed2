// Package storage provides SQLite-based persistence for finished matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// Goal is one goal of a recorded match.
type Goal struct {
	Seq    int    // Order within the match, from 1
	Player string // "left" or "right"
	Score  int    // Scorer's total after this goal
}

// MatchRecord is a finished match (one front-end session).
type MatchRecord struct {
	ID         string
	Preset     string
	Player     string // Session user, empty for local play
	LeftScore  int
	RightScore int
	Rallies    int
	StartedAt  time.Time
	EndedAt    time.Time
	Goals      []Goal // Only filled by MatchByID
}

// Duration returns how long the match lasted.
func (m MatchRecord) Duration() time.Duration {
	return m.EndedAt.Sub(m.StartedAt)
}

// Totals aggregates the whole history.
type Totals struct {
	Matches    int
	LeftGoals  int
	RightGoals int
	Rallies    int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match and its goals in one transaction.
// A record without an ID gets a fresh UUID. Returns the ID.
func (s *Store) SaveMatch(rec MatchRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO matches (id, preset, player, left_score, right_score, rallies, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Preset, rec.Player, rec.LeftScore, rec.RightScore, rec.Rallies,
		rec.StartedAt.UnixMilli(), rec.EndedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}

	for _, g := range rec.Goals {
		_, err = tx.Exec(
			"INSERT INTO goals (match_id, seq, player, score) VALUES (?, ?, ?, ?)",
			rec.ID, g.Seq, g.Player, g.Score,
		)
		if err != nil {
			return "", fmt.Errorf("storage: cannot save goal: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return rec.ID, nil
}

// RecentMatches retrieves the most recently finished matches, newest first.
// Goals are not loaded.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, preset, player, left_score, right_score, rallies, started_at, ended_at
		 FROM matches
		 ORDER BY ended_at DESC, id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// MatchByID retrieves a match with its goals. Returns nil if not found.
func (s *Store) MatchByID(id string) (*MatchRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, preset, player, left_score, right_score, rallies, started_at, ended_at
		 FROM matches
		 WHERE id = ?`,
		id,
	)
	rec, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT seq, player, score FROM goals WHERE match_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query goals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.Seq, &g.Player, &g.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan goal: %w", err)
		}
		rec.Goals = append(rec.Goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &rec, nil
}

// Totals aggregates all recorded matches.
func (s *Store) Totals() (Totals, error) {
	var t Totals
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(left_score), 0), COALESCE(SUM(right_score), 0), COALESCE(SUM(rallies), 0)
		 FROM matches`,
	).Scan(&t.Matches, &t.LeftGoals, &t.RightGoals, &t.Rallies)
	if err != nil {
		return Totals{}, fmt.Errorf("storage: cannot query totals: %w", err)
	}
	return t, nil
}

// DeleteMatch removes a match and its goals.
func (s *Store) DeleteMatch(id string) error {
	_, err := s.db.Exec("DELETE FROM matches WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete match: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var rec MatchRecord
	var started, ended int64
	err := row.Scan(
		&rec.ID, &rec.Preset, &rec.Player,
		&rec.LeftScore, &rec.RightScore, &rec.Rallies,
		&started, &ended,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot scan match: %w", err)
	}
	rec.StartedAt = time.UnixMilli(started)
	rec.EndedAt = time.UnixMilli(ended)
	return rec, nil
}
