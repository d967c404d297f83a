package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/bacbo-predictor/internal/database"
	"github.com/yourusername/bacbo-predictor/internal/models"
)

// PostgresRoundRepository implements RoundRepository for PostgreSQL
type PostgresRoundRepository struct {
	db *database.DB
}

// NewPostgresRoundRepository creates a new round repository
func NewPostgresRoundRepository(db *database.DB) RoundRepository {
	return &PostgresRoundRepository{db: db}
}

// Create inserts a new recorded round
func (r *PostgresRoundRepository) Create(ctx context.Context, round *models.Round) error {
	query := `
		INSERT INTO rounds (id, session_id, sequence, outcome, predicted, confidence, hit, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		round.ID, round.SessionID, round.Sequence, round.Outcome,
		round.Predicted, round.Confidence, round.Hit, round.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create round: %w", err)
	}

	return nil
}

// GetByID retrieves a round by ID
func (r *PostgresRoundRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Round, error) {
	query := `
		SELECT id, session_id, sequence, outcome, predicted, confidence, hit, recorded_at
		FROM rounds WHERE id = $1
	`

	round := &models.Round{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&round.ID, &round.SessionID, &round.Sequence, &round.Outcome,
		&round.Predicted, &round.Confidence, &round.Hit, &round.RecordedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	return round, nil
}

// ListBySession retrieves the most recent rounds for a session, newest first
func (r *PostgresRoundRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*models.Round, error) {
	query := `
		SELECT id, session_id, sequence, outcome, predicted, confidence, hit, recorded_at
		FROM rounds
		WHERE session_id = $1
		ORDER BY sequence DESC
		LIMIT $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []*models.Round
	for rows.Next() {
		round := &models.Round{}
		err := rows.Scan(
			&round.ID, &round.SessionID, &round.Sequence, &round.Outcome,
			&round.Predicted, &round.Confidence, &round.Hit, &round.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		rounds = append(rounds, round)
	}

	return rounds, rows.Err()
}

// CountBySession returns the number of rounds recorded for a session
func (r *PostgresRoundRepository) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM rounds WHERE session_id = $1`

	var count int
	if err := r.db.GetPool().QueryRow(ctx, query, sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rounds: %w", err)
	}

	return count, nil
}

// DeleteBySession removes all rounds for a session
func (r *PostgresRoundRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	query := `DELETE FROM rounds WHERE session_id = $1`

	if _, err := r.db.GetPool().Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete rounds: %w", err)
	}

	return nil
}
