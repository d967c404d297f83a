package session

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bacbo-predictor/internal/config"
	"github.com/yourusername/bacbo-predictor/internal/engine"
	"github.com/yourusername/bacbo-predictor/internal/models"
)

func newTestManager(t *testing.T, maxSessions int) *Manager {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := config.SessionConfig{
		TTLMinutes:             60,
		CleanupIntervalMinutes: 60,
		MaxSessions:            maxSessions,
	}
	return NewManager(cfg, engine.DefaultConfig(), log, nil)
}

func TestManagerCreateAndGet(t *testing.T) {
	m := newTestManager(t, 10)

	sess, err := m.Create()
	require.NoError(t, err)
	require.NotNil(t, sess.Engine)
	assert.NotEqual(t, uuid.Nil, sess.ID)

	got, err := m.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, m.Count())
}

func TestManagerGetUnknownSession(t *testing.T) {
	m := newTestManager(t, 10)

	_, err := m.Get(uuid.New())
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestManagerRemove(t *testing.T) {
	m := newTestManager(t, 10)

	sess, err := m.Create()
	require.NoError(t, err)

	require.NoError(t, m.Remove(sess.ID))
	assert.Equal(t, 0, m.Count())

	_, err = m.Get(sess.ID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	assert.ErrorIs(t, m.Remove(sess.ID), models.ErrSessionNotFound)
}

func TestManagerSessionLimit(t *testing.T) {
	m := newTestManager(t, 2)

	_, err := m.Create()
	require.NoError(t, err)
	_, err = m.Create()
	require.NoError(t, err)

	_, err = m.Create()
	assert.ErrorIs(t, err, ErrSessionLimit)
}

func TestRecordOutcomeReturnsPrediction(t *testing.T) {
	m := newTestManager(t, 10)
	sess, err := m.Create()
	require.NoError(t, err)

	ctx := context.Background()

	// Below the minimum history the prediction abstains with a reason.
	result, pred, err := m.RecordOutcome(ctx, sess, "PLAYER")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomePlayer, result.Outcome)
	assert.Nil(t, pred.Prediction)
	assert.Contains(t, pred.Reason, "insufficient history")

	for i := 0; i < 4; i++ {
		_, pred, err = m.RecordOutcome(ctx, sess, "PLAYER")
		require.NoError(t, err)
	}
	require.NotNil(t, pred.Prediction)
	assert.Greater(t, pred.Confidence, 0.0)
}

func TestRecordOutcomeInvalidInput(t *testing.T) {
	m := newTestManager(t, 10)
	sess, err := m.Create()
	require.NoError(t, err)

	_, _, err = m.RecordOutcome(context.Background(), sess, "DRAGON")
	assert.ErrorIs(t, err, models.ErrInvalidOutcome)
	assert.Equal(t, 0, sess.Engine.Rounds())
}

// recordingRoundRepository captures persisted rounds in memory.
type recordingRoundRepository struct {
	mu     sync.Mutex
	rounds []*models.Round
}

func (r *recordingRoundRepository) Create(_ context.Context, round *models.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds = append(r.rounds, round)
	return nil
}

func (r *recordingRoundRepository) GetByID(context.Context, uuid.UUID) (*models.Round, error) {
	return nil, models.ErrNotFound
}

func (r *recordingRoundRepository) ListBySession(context.Context, uuid.UUID, int) ([]*models.Round, error) {
	return nil, nil
}

func (r *recordingRoundRepository) CountBySession(context.Context, uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rounds), nil
}

func (r *recordingRoundRepository) DeleteBySession(context.Context, uuid.UUID) error {
	return nil
}

func TestRecordOutcomePersistsRounds(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := &recordingRoundRepository{}
	cfg := config.SessionConfig{TTLMinutes: 60, CleanupIntervalMinutes: 60, MaxSessions: 10}
	m := NewManager(cfg, engine.DefaultConfig(), log, repo)

	sess, err := m.Create()
	require.NoError(t, err)

	ctx := context.Background()
	for _, raw := range []string{"PLAYER", "BANKER", "PLAYER"} {
		_, _, err := m.RecordOutcome(ctx, sess, raw)
		require.NoError(t, err)
	}

	require.Len(t, repo.rounds, 3)
	assert.Equal(t, sess.ID, repo.rounds[0].SessionID)
	assert.Equal(t, 1, repo.rounds[0].Sequence)
	assert.Equal(t, 3, repo.rounds[2].Sequence)
	assert.Equal(t, models.OutcomeBanker, repo.rounds[1].Outcome)
}

func TestRecordOutcomeScoresPendingPrediction(t *testing.T) {
	m := newTestManager(t, 10)
	sess, err := m.Create()
	require.NoError(t, err)

	ctx := context.Background()
	var pred models.Prediction
	for i := 0; i < 5; i++ {
		_, pred, err = m.RecordOutcome(ctx, sess, "PLAYER")
		require.NoError(t, err)
	}
	require.NotNil(t, pred.Prediction)

	// The next outcome scores the pending prediction from the previous round.
	result, _, err := m.RecordOutcome(ctx, sess, string(*pred.Prediction))
	require.NoError(t, err)
	require.NotNil(t, result.Scored)
	assert.True(t, result.Scored.Hit())

	stats := sess.Engine.Stats()
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Wins)
}
