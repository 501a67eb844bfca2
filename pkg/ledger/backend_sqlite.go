package ledger

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite"
)

// SQLiteBackend persists ledger entries in SQLite.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend creates the backend and its schema.
func NewSQLiteBackend(db *sql.DB) (*SQLiteBackend, error) {
	b := &SQLiteBackend{db: db}
	if err := b.migrate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *SQLiteBackend) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS ledger_entries (
		sequence     INTEGER PRIMARY KEY,
		entry_type   TEXT NOT NULL,
		artifact_id  TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		prev_hash    TEXT NOT NULL,
		timestamp    DATETIME NOT NULL,
		data         JSON
	);`
	_, err := b.db.ExecContext(context.Background(), query)
	return err
}

// Append inserts one entry. Sequence is the primary key, so replaying an
// existing sequence fails rather than rewriting history.
func (b *SQLiteBackend) Append(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}
	_, err = b.db.ExecContext(ctx, `
		INSERT INTO ledger_entries
			(sequence, entry_type, artifact_id, content_hash, prev_hash, timestamp, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Sequence, string(e.Type), e.ArtifactID, e.ContentHash, e.PrevHash, e.Timestamp.UTC(), string(data))
	return err
}
