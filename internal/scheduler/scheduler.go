// Package scheduler runs the periodic stats snapshot job.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/bacbo-predictor/internal/metrics"
	"github.com/yourusername/bacbo-predictor/internal/models"
	"github.com/yourusername/bacbo-predictor/internal/repository"
	"github.com/yourusername/bacbo-predictor/internal/session"
)

const snapshotJobTimeout = 30 * time.Second

// Scheduler captures periodic accuracy snapshots for every live session.
type Scheduler struct {
	cron      *cron.Cron
	sessions  *session.Manager
	snapshots repository.StatsSnapshotRepository
	logger    *logrus.Logger
	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a snapshot scheduler.
func NewScheduler(sessions *session.Manager, snapshots repository.StatsSnapshotRepository, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		sessions:  sessions,
		snapshots: snapshots,
		logger:    logger,
	}
}

// ScheduleSnapshots registers the snapshot job on the given cron expression.
func (s *Scheduler) ScheduleSnapshots(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	if _, err := s.cron.AddFunc(cronExpression, s.runSnapshotJob); err != nil {
		return fmt.Errorf("failed to add snapshot job: %w", err)
	}

	s.logger.WithField("schedule", cronExpression).Info("Scheduled stats snapshots")
	return nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true
	s.logger.Info("Scheduler started")
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// runSnapshotJob persists a stats snapshot for every session that has scored
// at least one prediction, and refreshes the win-rate gauge.
func (s *Scheduler) runSnapshotJob() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotJobTimeout)
	defer cancel()

	taken := 0
	for _, sess := range s.sessions.All() {
		stats := sess.Engine.Stats()
		if stats.Total == 0 {
			continue
		}

		metrics.UpdateSessionWinRate(sess.ID.String(), stats.WinRate)

		snapshot := &models.StatsSnapshot{
			ID:        uuid.New(),
			SessionID: sess.ID,
			Wins:      stats.Wins,
			Total:     stats.Total,
			WinRate:   stats.WinRate,
			TakenAt:   time.Now().UTC(),
		}
		if err := s.snapshots.Create(ctx, snapshot); err != nil {
			s.logger.WithError(err).WithField("session_id", sess.ID.String()).Warn("Failed to persist stats snapshot")
			continue
		}
		taken++
	}

	if taken > 0 {
		s.logger.WithField("snapshots", taken).Debug("Stats snapshot job completed")
	}
}
