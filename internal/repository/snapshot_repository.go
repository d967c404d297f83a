package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/bacbo-predictor/internal/database"
	"github.com/yourusername/bacbo-predictor/internal/models"
)

// PostgresStatsSnapshotRepository implements StatsSnapshotRepository for PostgreSQL
type PostgresStatsSnapshotRepository struct {
	db *database.DB
}

// NewPostgresStatsSnapshotRepository creates a new stats snapshot repository
func NewPostgresStatsSnapshotRepository(db *database.DB) StatsSnapshotRepository {
	return &PostgresStatsSnapshotRepository{db: db}
}

// Create inserts a new stats snapshot
func (s *PostgresStatsSnapshotRepository) Create(ctx context.Context, snapshot *models.StatsSnapshot) error {
	query := `
		INSERT INTO stats_snapshots (id, session_id, wins, total, win_rate, taken_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.GetPool().Exec(ctx, query,
		snapshot.ID, snapshot.SessionID, snapshot.Wins, snapshot.Total,
		snapshot.WinRate, snapshot.TakenAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create stats snapshot: %w", err)
	}

	return nil
}

// GetLatestBySession retrieves the most recent snapshot for a session
func (s *PostgresStatsSnapshotRepository) GetLatestBySession(ctx context.Context, sessionID uuid.UUID) (*models.StatsSnapshot, error) {
	query := `
		SELECT id, session_id, wins, total, win_rate, taken_at
		FROM stats_snapshots
		WHERE session_id = $1
		ORDER BY taken_at DESC
		LIMIT 1
	`

	snapshot := &models.StatsSnapshot{}
	err := s.db.GetPool().QueryRow(ctx, query, sessionID).Scan(
		&snapshot.ID, &snapshot.SessionID, &snapshot.Wins, &snapshot.Total,
		&snapshot.WinRate, &snapshot.TakenAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats snapshot: %w", err)
	}

	return snapshot, nil
}

// ListBySession retrieves snapshots for a session, newest first
func (s *PostgresStatsSnapshotRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*models.StatsSnapshot, error) {
	query := `
		SELECT id, session_id, wins, total, win_rate, taken_at
		FROM stats_snapshots
		WHERE session_id = $1
		ORDER BY taken_at DESC
		LIMIT $2
	`

	rows, err := s.db.GetPool().Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.StatsSnapshot
	for rows.Next() {
		snapshot := &models.StatsSnapshot{}
		err := rows.Scan(
			&snapshot.ID, &snapshot.SessionID, &snapshot.Wins, &snapshot.Total,
			&snapshot.WinRate, &snapshot.TakenAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stats snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}
