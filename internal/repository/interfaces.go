package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/bacbo-predictor/internal/models"
)

// RoundRepository defines the interface for round data access
type RoundRepository interface {
	Create(ctx context.Context, round *models.Round) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Round, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*models.Round, error)
	CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error)
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}

// StatsSnapshotRepository defines the interface for stats snapshot data access
type StatsSnapshotRepository interface {
	Create(ctx context.Context, snapshot *models.StatsSnapshot) error
	GetLatestBySession(ctx context.Context, sessionID uuid.UUID) (*models.StatsSnapshot, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*models.StatsSnapshot, error)
}
