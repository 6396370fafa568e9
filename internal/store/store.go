// Package store handles SQLite persistence of solve history.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"rotsolve/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for solve history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY,
			solved_at INTEGER NOT NULL,
			preview TEXT NOT NULL,
			letters INTEGER NOT NULL,
			shift INTEGER NOT NULL,
			score REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_solves_solved_at ON solves(solved_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSolve stores one completed solve run.
func (s *Store) InsertSolve(ctx context.Context, rec model.SolveRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO solves (solved_at, preview, letters, shift, score)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.SolvedAt.UnixNano(),
		rec.Preview,
		rec.Letters,
		rec.Shift,
		rec.Score,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSolves returns solve runs in chronological order, optionally
// limited to the most recent N.
func (s *Store) ListSolves(ctx context.Context, q model.HistoryQuery) ([]model.SolveRecord, error) {
	query := `SELECT id, solved_at, preview, letters, shift, score FROM solves ORDER BY solved_at ASC, id ASC`
	args := []any{}
	if q.Last > 0 {
		query = `SELECT id, solved_at, preview, letters, shift, score FROM (
			SELECT id, solved_at, preview, letters, shift, score FROM solves
			ORDER BY solved_at DESC, id DESC
			LIMIT ?
		) ORDER BY solved_at ASC, id ASC`
		args = append(args, q.Last)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SolveRecord
	for rows.Next() {
		var rec model.SolveRecord
		var solvedAt int64
		if err := rows.Scan(&rec.ID, &solvedAt, &rec.Preview, &rec.Letters, &rec.Shift, &rec.Score); err != nil {
			return nil, err
		}
		rec.SolvedAt = time.Unix(0, solvedAt).UTC()
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SolveCount returns the total number of recorded solves.
func (s *Store) SolveCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM solves`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
