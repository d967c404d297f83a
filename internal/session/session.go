// Package session manages the lifetime of prediction sessions. Each session
// owns one engine instance; sessions are kept in an expiring in-memory store
// so abandoned tables clean themselves up.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/bacbo-predictor/internal/config"
	"github.com/yourusername/bacbo-predictor/internal/engine"
	"github.com/yourusername/bacbo-predictor/internal/logger"
	"github.com/yourusername/bacbo-predictor/internal/metrics"
	"github.com/yourusername/bacbo-predictor/internal/models"
	"github.com/yourusername/bacbo-predictor/internal/repository"
)

// ErrSessionLimit is returned by Create when the configured maximum number of
// concurrent sessions is reached.
var ErrSessionLimit = errors.New("session limit reached")

// Session pairs a prediction engine with its identity.
type Session struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Engine *engine.Engine `json:"-"`
}

// Manager creates, looks up and expires sessions.
type Manager struct {
	cfg       config.SessionConfig
	engineCfg engine.Config
	store     *cache.Cache
	log       *logrus.Logger
	rounds    repository.RoundRepository
}

// NewManager creates a session manager. rounds may be nil when persistence is
// disabled.
func NewManager(cfg config.SessionConfig, engineCfg engine.Config, log *logrus.Logger, rounds repository.RoundRepository) *Manager {
	store := cache.New(cfg.TTL(), cfg.CleanupInterval())

	m := &Manager{
		cfg:       cfg,
		engineCfg: engineCfg,
		store:     store,
		log:       log,
		rounds:    rounds,
	}

	store.OnEvicted(func(key string, _ interface{}) {
		m.log.WithField("session_id", key).Info("Session expired")
		metrics.DropSessionWinRate(key)
		metrics.UpdateActiveSessions(float64(m.store.ItemCount()))
	})

	return m
}

// Create registers a new session with a fresh engine.
func (m *Manager) Create() (*Session, error) {
	if m.cfg.MaxSessions > 0 && m.store.ItemCount() >= m.cfg.MaxSessions {
		return nil, ErrSessionLimit
	}

	sess := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Engine:    engine.New(m.engineCfg),
	}

	m.store.SetDefault(sess.ID.String(), sess)
	metrics.UpdateActiveSessions(float64(m.store.ItemCount()))
	logger.WithSession(m.log, sess.ID).Info("Session created")

	return sess, nil
}

// Get looks up a session by its identifier.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	item, found := m.store.Get(id.String())
	if !found {
		return nil, models.ErrSessionNotFound
	}
	return item.(*Session), nil
}

// Remove deletes a session immediately.
func (m *Manager) Remove(id uuid.UUID) error {
	key := id.String()
	if _, found := m.store.Get(key); !found {
		return models.ErrSessionNotFound
	}

	m.store.Delete(key)
	metrics.DropSessionWinRate(key)
	metrics.UpdateActiveSessions(float64(m.store.ItemCount()))
	logger.WithSession(m.log, id).Info("Session removed")

	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	return m.store.ItemCount()
}

// All returns a snapshot of the live sessions.
func (m *Manager) All() []*Session {
	items := m.store.Items()
	sessions := make([]*Session, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, item.Object.(*Session))
	}
	return sessions
}

// RecordOutcome feeds one outcome into a session's engine and returns the
// fresh prediction for the following round. Recording also refreshes the
// session's expiry.
func (m *Manager) RecordOutcome(ctx context.Context, sess *Session, raw string) (models.RoundResult, models.Prediction, error) {
	result, err := sess.Engine.Record(raw)
	if err != nil {
		return models.RoundResult{}, models.Prediction{}, err
	}

	metrics.RecordOutcome(string(result.Outcome))
	if result.Scored != nil {
		metrics.RecordScored(result.Scored.Hit())
		stats := sess.Engine.Stats()
		metrics.UpdateSessionWinRate(sess.ID.String(), stats.WinRate)
	}

	pred := sess.Engine.Predict()
	if pred.Prediction != nil {
		metrics.RecordPrediction(pred.Confidence)
	}

	m.store.SetDefault(sess.ID.String(), sess)
	m.persistRound(ctx, sess, result)

	return result, pred, nil
}

// persistRound writes the round to storage when a repository is configured.
// Persistence failures are logged, not surfaced: the in-memory engine is the
// source of truth.
func (m *Manager) persistRound(ctx context.Context, sess *Session, result models.RoundResult) {
	if m.rounds == nil {
		return
	}

	round := &models.Round{
		ID:         uuid.New(),
		SessionID:  sess.ID,
		Sequence:   sess.Engine.Rounds(),
		Outcome:    result.Outcome,
		RecordedAt: time.Now().UTC(),
	}
	if result.Scored != nil {
		predicted := result.Scored.Predicted
		confidence := result.Scored.Confidence
		hit := result.Scored.Hit()
		round.Predicted = &predicted
		round.Confidence = &confidence
		round.Hit = &hit
	}

	if err := m.rounds.Create(ctx, round); err != nil {
		logger.WithSession(m.log, sess.ID).WithError(err).Warn("Failed to persist round")
	}
}
