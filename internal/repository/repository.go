package repository

import (
	"fmt"

	"github.com/yourusername/bacbo-predictor/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Round         RoundRepository
	StatsSnapshot StatsSnapshotRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Round:         NewPostgresRoundRepository(db),
		StatsSnapshot: NewPostgresStatsSnapshotRepository(db),
	}, nil
}
