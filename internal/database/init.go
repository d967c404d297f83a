package database

import (
	"context"
	"fmt"

	"github.com/yourusername/bacbo-predictor/internal/config"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS rounds (
		id UUID PRIMARY KEY,
		session_id UUID NOT NULL,
		sequence INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		predicted TEXT,
		confidence DOUBLE PRECISION,
		hit BOOLEAN,
		recorded_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds (session_id, sequence)`,
	`CREATE TABLE IF NOT EXISTS stats_snapshots (
		id UUID PRIMARY KEY,
		session_id UUID NOT NULL,
		wins INTEGER NOT NULL,
		total INTEGER NOT NULL,
		win_rate DOUBLE PRECISION NOT NULL,
		taken_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stats_snapshots_session ON stats_snapshots (session_id, taken_at)`,
}

// Initialize creates a database connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	db, err := NewDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return db, nil
}
