package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/awantoch/procmap/utils"
)

// SqliteStorage implements Storage using SQLite as the backend.
type SqliteStorage struct {
	db *sql.DB
}

var _ Storage = (*SqliteStorage)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS builds (
	id TEXT PRIMARY KEY,
	process_name TEXT,
	process_id TEXT,
	input_hash TEXT,
	dot TEXT,
	node_count INTEGER,
	edge_count INTEGER,
	warnings JSON,
	created_at INTEGER
);
CREATE INDEX IF NOT EXISTS builds_process_name ON builds(process_name);
`

func NewSqliteStorage(dsn string) (*SqliteStorage, error) {
	// Only create parent directories for real file DSNs.
	if dsn != ":memory:" && dsn != "" {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, utils.Errorf("failed to create db directory %q: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, err
	}
	return &SqliteStorage{db: db}, nil
}

func (s *SqliteStorage) SaveBuild(ctx context.Context, b *Build) error {
	warnings, err := json.Marshal(b.Warnings)
	if err != nil {
		return utils.Errorf("failed to marshal build warnings: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO builds (id, process_name, process_id, input_hash, dot, node_count, edge_count, warnings, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET process_name=excluded.process_name, process_id=excluded.process_id,
	input_hash=excluded.input_hash, dot=excluded.dot, node_count=excluded.node_count,
	edge_count=excluded.edge_count, warnings=excluded.warnings, created_at=excluded.created_at
`, b.ID.String(), b.ProcessName, b.ProcessID, b.InputHash, b.DOT, b.NodeCount, b.EdgeCount, warnings, b.CreatedAt.Unix())
	return err
}

func (s *SqliteStorage) GetBuild(ctx context.Context, id uuid.UUID) (*Build, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, process_name, process_id, input_hash, dot, node_count, edge_count, warnings, created_at
FROM builds WHERE id=?`, id.String())
	return scanBuild(row)
}

func (s *SqliteStorage) ListBuilds(ctx context.Context, processName string) ([]*Build, error) {
	query := `
SELECT id, process_name, process_id, input_hash, dot, node_count, edge_count, warnings, created_at
FROM builds`
	var args []any
	if processName != "" {
		query += ` WHERE process_name=?`
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

func (s *SqliteStorage) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuild(row rowScanner) (*Build, error) {
	var b Build
	var id string
	var warnings []byte
	var createdAt int64
	if err := row.Scan(&id, &b.ProcessName, &b.ProcessID, &b.InputHash, &b.DOT,
		&b.NodeCount, &b.EdgeCount, &warnings, &createdAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	b.ID = parsed
	if len(warnings) > 0 {
		if err := json.Unmarshal(warnings, &b.Warnings); err != nil {
			return nil, err
		}
	}
	b.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &b, nil
}
