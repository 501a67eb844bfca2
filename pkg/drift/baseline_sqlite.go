package drift

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists baselines in SQLite for single-node deployments.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the store and its schema on the given database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS drift_baselines (
		shape_key  TEXT PRIMARY KEY,
		digest     TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	_, err := s.db.ExecContext(context.Background(), query)
	return err
}

// Get returns the stored digest for key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var digest string
	err := s.db.QueryRowContext(ctx,
		`SELECT digest FROM drift_baselines WHERE shape_key = ?`, key).Scan(&digest)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoBaseline
	}
	if err != nil {
		return "", err
	}
	return digest, nil
}

// Put records the digest for key, replacing any prior baseline.
func (s *SQLiteStore) Put(ctx context.Context, key, digest string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drift_baselines (shape_key, digest, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(shape_key) DO UPDATE SET
			digest = excluded.digest,
			updated_at = excluded.updated_at`,
		key, digest, time.Now().UTC())
	return err
}
