package ledger

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/lib/pq"
)

// PostgresBackend persists ledger entries in PostgreSQL for multi-node
// deployments.
type PostgresBackend struct {
	db *sql.DB
}

// NewPostgresBackend creates the backend and its schema.
func NewPostgresBackend(db *sql.DB) (*PostgresBackend, error) {
	b := &PostgresBackend{db: db}
	if err := b.migrate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *PostgresBackend) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS ledger_entries (
		sequence     BIGINT PRIMARY KEY,
		entry_type   TEXT NOT NULL,
		artifact_id  TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		prev_hash    TEXT NOT NULL,
		timestamp    TIMESTAMPTZ NOT NULL,
		data         JSONB
	)`
	_, err := b.db.ExecContext(context.Background(), query)
	return err
}

// Append inserts one entry.
func (b *PostgresBackend) Append(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}
	_, err = b.db.ExecContext(ctx, `
		INSERT INTO ledger_entries
			(sequence, entry_type, artifact_id, content_hash, prev_hash, timestamp, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.Sequence, string(e.Type), e.ArtifactID, e.ContentHash, e.PrevHash, e.Timestamp.UTC(), data)
	return err
}

// Open connects to Postgres with the given DSN.
func Open(dsn string) (*sql.DB, error) {
	return sql.Open("postgres", dsn)
}
