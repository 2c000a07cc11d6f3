package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveChampion(ctx context.Context, runID string, c Champion) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(c.Weights)
	if err != nil {
		return fmt.Errorf("encode champion weights: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO champions (run_id, generation, fitness, weights)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			fitness = excluded.fitness,
			weights = excluded.weights
	`, runID, c.Generation, c.Fitness, payload)
	return err
}

func (s *SQLiteStore) Champions(ctx context.Context, runID string) ([]Champion, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT generation, fitness, weights FROM champions
		WHERE run_id = ?
		ORDER BY generation
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Champion
	for rows.Next() {
		var (
			c       Champion
			payload []byte
		)
		if err := rows.Scan(&c.Generation, &c.Fitness, &payload); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &c.Weights); err != nil {
			return nil, fmt.Errorf("decode champion weights for generation %d: %w", c.Generation, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS champions (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			fitness REAL NOT NULL,
			weights BLOB NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
	`)
	return err
}
