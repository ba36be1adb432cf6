package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/awantoch/procmap/utils"
)

// PostgresStorage implements Storage on PostgreSQL, for shared deployments
// of the serve mode.
type PostgresStorage struct {
	db *sql.DB
}

var _ Storage = (*PostgresStorage)(nil)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS builds (
	id TEXT PRIMARY KEY,
	process_name TEXT,
	process_id TEXT,
	input_hash TEXT,
	dot TEXT,
	node_count INTEGER,
	edge_count INTEGER,
	warnings JSONB,
	created_at BIGINT
);
CREATE INDEX IF NOT EXISTS builds_process_name ON builds(process_name);
`

func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	if dsn == "" {
		return nil, utils.Errorf("postgres storage requires a dsn")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		return nil, err
	}
	return &PostgresStorage{db: db}, nil
}

func (s *PostgresStorage) SaveBuild(ctx context.Context, b *Build) error {
	warnings, err := json.Marshal(b.Warnings)
	if err != nil {
		return utils.Errorf("failed to marshal build warnings: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO builds (id, process_name, process_id, input_hash, dot, node_count, edge_count, warnings, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT(id) DO UPDATE SET process_name=excluded.process_name, process_id=excluded.process_id,
	input_hash=excluded.input_hash, dot=excluded.dot, node_count=excluded.node_count,
	edge_count=excluded.edge_count, warnings=excluded.warnings, created_at=excluded.created_at
`, b.ID.String(), b.ProcessName, b.ProcessID, b.InputHash, b.DOT, b.NodeCount, b.EdgeCount, warnings, b.CreatedAt.Unix())
	return err
}

func (s *PostgresStorage) GetBuild(ctx context.Context, id uuid.UUID) (*Build, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, process_name, process_id, input_hash, dot, node_count, edge_count, warnings, created_at
FROM builds WHERE id=$1`, id.String())
	return scanBuild(row)
}

func (s *PostgresStorage) ListBuilds(ctx context.Context, processName string) ([]*Build, error) {
	query := `
SELECT id, process_name, process_id, input_hash, dot, node_count, edge_count, warnings, created_at
FROM builds`
	var args []any
	if processName != "" {
		query += ` WHERE process_name=$1`
		args = append(args, processName)
	}
	query += ` ORDER BY created_at DESC, id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) Close() error { return s.db.Close() }
