// Package storage persists build history: one record per compiled diagram,
// so earlier DOT output stays retrievable and re-runs are diffable.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/awantoch/procmap/constants"
	"github.com/awantoch/procmap/utils"
)

// Build is one persisted compilation result.
type Build struct {
	ID          uuid.UUID `json:"id"`
	ProcessName string    `json:"process_name"`
	ProcessID   string    `json:"process_id"`
	// InputHash fingerprints the selected process rows; identical input
	// must reproduce identical DOT.
	InputHash string    `json:"input_hash"`
	DOT       string    `json:"dot"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	Warnings  []string  `json:"warnings,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Storage is the build-history backend.
type Storage interface {
	SaveBuild(ctx context.Context, b *Build) error
	GetBuild(ctx context.Context, id uuid.UUID) (*Build, error)
	// ListBuilds returns builds newest first; processName filters when
	// non-empty.
	ListBuilds(ctx context.Context, processName string) ([]*Build, error)
	Close() error
}

// Config selects and configures a storage driver.
type Config struct {
	Driver string
	DSN    string
}

// New constructs a Storage from config. An empty driver means memory.
func New(cfg *Config) (Storage, error) {
	if cfg == nil || cfg.Driver == "" || cfg.Driver == constants.StorageDriverMemory {
		return NewMemoryStorage(), nil
	}
	switch cfg.Driver {
	case constants.StorageDriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = constants.DefaultSQLiteDSN
		}
		return NewSqliteStorage(dsn)
	case constants.StorageDriverPostgres:
		return NewPostgresStorage(cfg.DSN)
	default:
		return nil, utils.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
